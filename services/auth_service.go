package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rahulsm/goblog/models"
	"github.com/rahulsm/goblog/repository"
	"github.com/rahulsm/goblog/token"
	"github.com/rahulsm/goblog/utils"
)

var (
	ErrValidation         = errors.New("name, email and password are required")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("refresh token required")
	// ErrInvalidToken covers bad signature, expiry and revocation alike;
	// the caller cannot tell which.
	ErrInvalidToken = errors.New("invalid refresh token")
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService orchestrates registration, login, token refresh and logout.
type AuthService struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewAuthService(users repository.UserRepository, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register hashes the password and stores a new user with no active session.
// Field presence is enforced upstream by request binding; the empty-field
// check here is defensive only.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RefreshToken: nil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. The stored
// refresh token is overwritten, which invalidates any previous session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := utils.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The token
// must both match the stored value (server-side revocation) and carry a good
// signature and expiry (tamper and staleness detection). It is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingToken
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if _, err := s.tokens.VerifyRefresh(refreshToken); err != nil {
		return "", ErrInvalidToken
	}

	return s.tokens.IssueAccess(user.ID.Hex())
}

// Logout clears the stored refresh token. Logging out an unknown or already
// cleared token succeeds: the end state is the same.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.users.SetRefreshToken(ctx, user.ID, nil)
}
