package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers bad signatures, expiry and malformed tokens alike.
// Callers must not be able to tell which one it was.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service signs and verifies the two token kinds. Access and refresh tokens
// use distinct secrets, so a leaked access token can never forge a refresh.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) IssueAccess(userID string) (string, error) {
	return s.sign(userID, s.accessTTL, s.accessSecret)
}

func (s *Service) IssueRefresh(userID string) (string, error) {
	return s.sign(userID, s.refreshTTL, s.refreshSecret)
}

func (s *Service) VerifyAccess(tokenStr string) (string, error) {
	return s.verify(tokenStr, s.accessSecret)
}

func (s *Service) VerifyRefresh(tokenStr string) (string, error) {
	return s.verify(tokenStr, s.refreshSecret)
}

func (s *Service) sign(userID string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
			// jti keeps two tokens minted within the same second distinct
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *Service) verify(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
