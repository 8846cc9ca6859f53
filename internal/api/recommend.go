package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
	"github.com/jmo7728/5-final-daynight-jam/internal/service"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// RecommendHandler exposes the recommendation and substitution flows.
type RecommendHandler struct {
	recommender service.Recommender
}

// NewRecommendHandler creates a new RecommendHandler instance.
func NewRecommendHandler(recommender service.Recommender) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// Recommend runs the full recommendation flow for the authenticated user.
// Every constraint field is optional; an empty body is a valid request.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req types.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recommender.GetRecommendation(c.Request.Context(), req)
	if err != nil {
		h.writeRecommendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Replace swaps one named ingredient in a caller-supplied recipe.
func (h *RecommendHandler) Replace(c *gin.Context) {
	var req ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe, from_name and to_name are required"})
		return
	}

	recipe, err := h.recommender.ReplaceIngredient(c.Request.Context(), req.Recipe, req.FromName, req.ToName)
	if err != nil {
		h.writeRecommendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// writeRecommendError maps service errors onto HTTP statuses.
func (h *RecommendHandler) writeRecommendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoCandidates):
		c.JSON(http.StatusNotFound, gin.H{"error": "no recipes match the given filters"})
	case errors.Is(err, service.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily usage limit reached, try again tomorrow"})
	case errors.Is(err, service.ErrEmptyResponse),
		errors.Is(err, service.ErrNoJSONFound),
		errors.Is(err, service.ErrUnparseableResponse),
		errors.Is(err, service.ErrSchemaValidation):
		logger.Error("unusable model output", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "recommendation service returned an unusable response"})
	case errors.Is(err, service.ErrServiceUnavailable):
		logger.Error("generation service unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation service is unavailable"})
	default:
		logger.Error("recommendation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
