package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/hasker/backend/internal/auth"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// OptionalAuth sets user_id when the request carries a valid bearer token
// and otherwise lets the request through anonymously.
func OptionalAuth(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, iss); ok {
			c.Set(UserIDKey, claims.UserID)
		}
		c.Next()
	}
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, iss)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerClaims(c *gin.Context, iss *auth.Issuer) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	claims, err := iss.Parse(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
