package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jmo7728/5-final-daynight-jam/internal/middleware"
	"github.com/jmo7728/5-final-daynight-jam/internal/models"
	"github.com/jmo7728/5-final-daynight-jam/internal/service"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// stubRecommender returns canned results for handler tests.
type stubRecommender struct {
	recipe *types.ParsedRecipe
	err    error
}

func (s *stubRecommender) GetRecommendation(context.Context, types.RecommendationRequest) (*types.ParsedRecipe, error) {
	return s.recipe, s.err
}

func (s *stubRecommender) ReplaceIngredient(context.Context, types.ParsedRecipe, string, string) (*types.ParsedRecipe, error) {
	return s.recipe, s.err
}

// testEnv bundles the pieces handler tests need.
type testEnv struct {
	DB          *gorm.DB
	AuthService *service.AuthService
	Router      *gin.Engine
}

// setupTestEnv wires a full router over an in-memory database, with the
// given recommender standing in for the generation flow.
func setupTestEnv(t *testing.T, recommender service.Recommender) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SavedRecipe{}))

	authService := service.NewAuthService(db, "test-secret")
	authHandler := NewAuthHandler(authService)
	recommendHandler := NewRecommendHandler(recommender)
	recipeHandler := NewRecipeHandler(service.NewRecipeService(db))

	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(authService))
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/recommend", recommendHandler.Recommend)
	protected.POST("/replace", recommendHandler.Replace)
	protected.POST("/recipes", recipeHandler.SaveRecipe)
	protected.GET("/recipes", recipeHandler.ListRecipes)
	protected.GET("/recipes/:id", recipeHandler.GetRecipe)

	return &testEnv{DB: db, AuthService: authService, Router: router}
}

// createTestUserAndToken registers a user and returns their ID and token.
func createTestUserAndToken(t *testing.T, env *testEnv, username string) (uuid.UUID, string) {
	t.Helper()

	token, err := env.AuthService.Register(context.Background(), username, "testpassword123")
	require.NoError(t, err)

	claims, err := env.AuthService.ValidateToken(token)
	require.NoError(t, err)

	return claims.UserID, token
}

// performRequest sends a JSON request through the router, attaching the
// token when given.
func performRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
