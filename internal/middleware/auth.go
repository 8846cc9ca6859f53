package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

const bearerPrefix = "Bearer "

// TokenValidator verifies an access token and returns its claims.
// Implemented by the auth service; stubs stand in for it in tests.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// RequireAuth rejects requests that do not carry a valid bearer token and
// stores the caller's identity under the "user_id" and "username" context
// keys for downstream handlers.
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. The
// scheme must be exactly "Bearer" and the token a single non-empty word.
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}
