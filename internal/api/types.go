package api

import "github.com/jmo7728/5-final-daynight-jam/internal/types"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ReplaceRequest asks for one ingredient in a recipe to be swapped out.
type ReplaceRequest struct {
	Recipe   types.ParsedRecipe `json:"recipe" binding:"required"`
	FromName string             `json:"from_name" binding:"required"`
	ToName   string             `json:"to_name" binding:"required"`
}

// UsageResponse reports today's consumption against the daily ceilings.
type UsageResponse struct {
	RequestsToday int `json:"requests_today"`
	TokensToday   int `json:"tokens_today"`
}
