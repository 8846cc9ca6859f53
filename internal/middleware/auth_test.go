package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func setupAuthTest(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(validator), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID.(uuid.UUID).String()})
	})
	return r
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	r := setupAuthTest(&stubValidator{claims: &types.TokenClaims{UserID: userID, Username: "alice"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := setupAuthTest(&stubValidator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "bearer token required")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	r := setupAuthTest(&stubValidator{})

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc123", "Bearer a b", "bearer lowercase"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := setupAuthTest(&stubValidator{err: errors.New("token is expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestRateLimiter_NilIsNoop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var rl *RateLimiter
	r.GET("/x", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
