package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rahulsm/goblog/token"
)

// ContextUserID is the gin context key the guard stores the caller's id under.
const ContextUserID = "userID"

// AuthMiddleware verifies the bearer access token and injects the caller's
// identity into the request context. It trusts the signature alone and never
// hits the store, which is why access tokens are short-lived.
func AuthMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.VerifyAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
