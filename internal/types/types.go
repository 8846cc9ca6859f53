package types

import "github.com/google/uuid"

// TokenClaims represents the claims carried by an access token.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// RecommendationRequest carries the user constraints for a recommendation.
// All fields are optional; lists default to empty and scalars to the
// placeholders applied by the prompt builder.
type RecommendationRequest struct {
	Include   []string `json:"include"`
	Exclude   []string `json:"exclude"`
	DontHave  []string `json:"dont_have"`
	ToolsHave []string `json:"tools_have"`
	Cuisine   string   `json:"cuisine"`
	Taste     string   `json:"taste"`
	Diet      string   `json:"diet"`
}

// ParsedRecipe is the structured recipe extracted from a model response.
// It is produced only by the response parser and is never partial.
type ParsedRecipe struct {
	RecipeID      string   `json:"recipe_id"`
	Name          string   `json:"name"`
	Ingredients   []string `json:"ingredients"`
	Tools         []string `json:"tools"`
	Steps         []string `json:"steps"`
	Substitutions []string `json:"substitutions"`
}
