package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
	"github.com/jmo7728/5-final-daynight-jam/internal/service"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// RecipeHandler handles saved-recipe requests.
type RecipeHandler struct {
	recipeService service.IRecipeService
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// SaveRecipe stores a recipe for the authenticated user.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var recipe types.ParsedRecipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if recipe.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe name is required"})
		return
	}

	saved, err := h.recipeService.SaveRecipe(c.Request.Context(), userID, recipe)
	if err != nil {
		logger.Error("failed to save recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListRecipes returns the authenticated user's saved recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one saved recipe. Recipes belonging to other users are
// indistinguishable from unknown ones.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		logger.Error("failed to fetch recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}
