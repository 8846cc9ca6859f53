package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

func sampleParsedRecipe() types.ParsedRecipe {
	return types.ParsedRecipe{
		RecipeID:      "3",
		Name:          "Garlic Chicken",
		Ingredients:   []string{"chicken", "garlic"},
		Tools:         []string{"pan"},
		Steps:         []string{"cook it"},
		Substitutions: []string{"tofu for chicken"},
	}
}

func TestSaveRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	userID := uuid.New()

	saved, err := svc.SaveRecipe(context.Background(), userID, sampleParsedRecipe())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, "Garlic Chicken", saved.Name)
	assert.Equal(t, []string{"chicken", "garlic"}, []string(saved.Ingredients))
}

func TestGetRecipe_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	userID := uuid.New()

	saved, err := svc.SaveRecipe(context.Background(), userID, sampleParsedRecipe())
	require.NoError(t, err)

	got, err := svc.GetRecipe(context.Background(), userID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, []string{"pan"}, []string(got.Tools))
	assert.Equal(t, []string{"cook it"}, []string(got.Steps))
	assert.Equal(t, []string{"tofu for chicken"}, []string(got.Substitutions))
}

func TestGetRecipe_OwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	saved, err := svc.SaveRecipe(context.Background(), uuid.New(), sampleParsedRecipe())
	require.NoError(t, err)

	_, err = svc.GetRecipe(context.Background(), uuid.New(), saved.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListRecipes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	userID := uuid.New()
	otherID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.SaveRecipe(context.Background(), userID, sampleParsedRecipe())
		require.NoError(t, err)
	}
	_, err := svc.SaveRecipe(context.Background(), otherID, sampleParsedRecipe())
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	for _, r := range recipes {
		assert.Equal(t, userID, r.UserID)
	}
}

func TestListRecipes_Empty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)

	recipes, err := svc.ListRecipes(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
