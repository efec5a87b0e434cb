package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"soundwave/internal/utils"
)

const (
	UserIDContextKey = "user_id"
	EmailContextKey  = "email"

	// TokenCookieName is the cookie login sets alongside the JSON token.
	TokenCookieName = "token"
)

// AuthMiddleware verifies the bearer token and stores the caller's id and
// email in the context. Only the Authorization header is read; the login
// cookie is never accepted as a credential.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
			return
		}

		claims, err := tokens.ValidateToken(bearerToken(header))
		if err != nil {
			if errors.Is(err, utils.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		c.Set(UserIDContextKey, claims.UserID)
		c.Set(EmailContextKey, claims.Email)
		c.Next()
	}
}

// bearerToken strips the Bearer scheme. Any other scheme yields an empty
// token, which fails validation.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(UserIDContextKey)
}
