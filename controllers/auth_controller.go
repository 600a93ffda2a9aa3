package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahulsm/goblog/dto"
	"github.com/rahulsm/goblog/middleware"
	"github.com/rahulsm/goblog/services"
	"github.com/rahulsm/goblog/utils"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (ac *AuthController) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := utils.CheckPasswordPolicy(body.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := ac.service.Register(c.Request.Context(), body.Name, body.Email, body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error registering user",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

func (ac *AuthController) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		pair, err := ac.service.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			case errors.Is(err, services.ErrInvalidCredentials):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		})
	}
}

// Refresh is not guarded: the access token is expected to be expired by the
// time this is called, the refresh token in the body is the credential.
func (ac *AuthController) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RefreshDTO
		// an empty or absent body means a missing token, not a bad request
		_ = c.ShouldBindJSON(&body)

		accessToken, err := ac.service.Refresh(c.Request.Context(), body.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrMissingToken):
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token required"})
			case errors.Is(err, services.ErrInvalidToken):
				c.JSON(http.StatusForbidden, gin.H{"message": "Invalid refresh token"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

func (ac *AuthController) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LogoutDTO
		_ = c.ShouldBindJSON(&body)

		if err := ac.service.Logout(c.Request.Context(), body.RefreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// Profile echoes the identity the guard resolved from the access token.
func (ac *AuthController) Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(middleware.ContextUserID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user":    gin.H{"id": userID},
		})
	}
}
