package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"visionflow/internal/auth"
)

const UserIDKey = "userID"

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the caller's uuid.UUID under UserIDKey.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	tokens := auth.NewTokenManager(jwtSecret, 0)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" && c.Query("access_token") != "" {
			// Browsers cannot set headers on a WebSocket handshake.
			header = "Bearer " + c.Query("access_token")
		}
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userID, err := tokens.ParseToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidUserID) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user set by JWTAuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
