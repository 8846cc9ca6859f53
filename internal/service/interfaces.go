package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmo7728/5-final-daynight-jam/internal/models"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// Generator is the boundary to the external text-generation service.
// Implemented by LLMService; test doubles stand in for it in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (content string, tokensUsed int, err error)
}

// Recommender is the consumer-facing surface of the recommendation core.
type Recommender interface {
	GetRecommendation(ctx context.Context, req types.RecommendationRequest) (*types.ParsedRecipe, error)
	ReplaceIngredient(ctx context.Context, recipe types.ParsedRecipe, fromName, toName string) (*types.ParsedRecipe, error)
}

// IAuthService defines the interface for authentication operations.
type IAuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IRecipeService defines the interface for saved-recipe operations.
type IRecipeService interface {
	SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.ParsedRecipe) (*models.SavedRecipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error)
}
