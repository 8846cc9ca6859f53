package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmo7728/5-final-daynight-jam/internal/service"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

func sampleRecipe() *types.ParsedRecipe {
	return &types.ParsedRecipe{
		RecipeID:      "3",
		Name:          "Garlic Chicken",
		Ingredients:   []string{"chicken", "garlic"},
		Tools:         []string{"pan"},
		Steps:         []string{"cook it"},
		Substitutions: []string{"tofu for chicken"},
	}
}

func TestRecommend(t *testing.T) {
	env := setupTestEnv(t, &stubRecommender{recipe: sampleRecipe()})
	_, token := createTestUserAndToken(t, env, "alice")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recommend", token, types.RecommendationRequest{
		Include: []string{"chicken"},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe types.ParsedRecipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Garlic Chicken", resp.Recipe.Name)
}

func TestRecommend_EmptyConstraints(t *testing.T) {
	env := setupTestEnv(t, &stubRecommender{recipe: sampleRecipe()})
	_, token := createTestUserAndToken(t, env, "alice")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recommend", token, map[string]any{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecommend_RequiresAuth(t *testing.T) {
	env := setupTestEnv(t, &stubRecommender{recipe: sampleRecipe()})

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recommend", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecommend_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrNoCandidates, http.StatusNotFound},
		{service.ErrQuotaExceeded, http.StatusTooManyRequests},
		{service.ErrEmptyResponse, http.StatusBadGateway},
		{service.ErrNoJSONFound, http.StatusBadGateway},
		{service.ErrUnparseableResponse, http.StatusBadGateway},
		{service.ErrSchemaValidation, http.StatusBadGateway},
		{service.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			env := setupTestEnv(t, &stubRecommender{err: tc.err})
			_, token := createTestUserAndToken(t, env, "alice")

			w := performRequest(env.Router, http.MethodPost, "/api/v1/recommend", token, map[string]any{})
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRecommend_WrappedErrorMapping(t *testing.T) {
	wrapped := fmt.Errorf("calling gateway: %w", service.ErrServiceUnavailable)
	env := setupTestEnv(t, &stubRecommender{err: wrapped})
	_, token := createTestUserAndToken(t, env, "alice")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/recommend", token, map[string]any{})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReplace(t *testing.T) {
	env := setupTestEnv(t, &stubRecommender{recipe: sampleRecipe()})
	_, token := createTestUserAndToken(t, env, "alice")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/replace", token, ReplaceRequest{
		Recipe:   *sampleRecipe(),
		FromName: "garlic",
		ToName:   "shallot",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Garlic Chicken")
}

func TestReplace_MissingFields(t *testing.T) {
	env := setupTestEnv(t, &stubRecommender{recipe: sampleRecipe()})
	_, token := createTestUserAndToken(t, env, "alice")

	w := performRequest(env.Router, http.MethodPost, "/api/v1/replace", token, map[string]any{
		"recipe": sampleRecipe(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
