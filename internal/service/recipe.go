package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmo7728/5-final-daynight-jam/internal/models"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// RecipeService stores and retrieves recipes a user chose to keep.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe persists a parsed recipe for the given user.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.ParsedRecipe) (*models.SavedRecipe, error) {
	saved := models.SavedRecipe{
		UserID:        userID,
		RecipeID:      recipe.RecipeID,
		Name:          recipe.Name,
		Ingredients:   models.StringArray(recipe.Ingredients),
		Tools:         models.StringArray(recipe.Tools),
		Steps:         models.StringArray(recipe.Steps),
		Substitutions: models.StringArray(recipe.Substitutions),
	}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetRecipe fetches one saved recipe, scoped to its owner.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns all recipes saved by the user, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error) {
	var recipes []models.SavedRecipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*models.SavedRecipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}
