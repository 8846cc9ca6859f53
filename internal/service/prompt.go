package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmo7728/5-final-daynight-jam/internal/catalog"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// Prompt construction is deliberately deterministic: identical inputs
// produce identical text, so the builders are directly testable.

const recommendationHeader = `You are a recipe selector and parser.
You will be given a small set of candidate recipes from a CSV dataset.
Each recipe has fields: recipe_id, recipe_title, category, subcategory,
description, ingredients_text, directions_text, num_ingredients, num_steps.

Your job:
1. Choose the single best recipe that fits the user constraints.
2. Convert that ONE recipe into a JSON object.
3. Use ONLY information that is present in the chosen recipe; do not invent new recipes.

Return ONLY valid JSON (no prose, no markdown, no code fences) with fields:
- recipe_id (string)
- name (string)
- ingredients (array of strings) parsed from ingredients_text
- tools (array of strings) you infer from directions_text (e.g., pan, pot, oven)
- steps (array of strings) parsed from directions_text into ordered steps
- substitutions (array of strings) with simple substitution ideas
`

// BuildRecommendationPrompt renders the instruction document for a
// recommendation call: task description, output schema, user constraints
// with explicit placeholders, then one delimited block per candidate.
func BuildRecommendationPrompt(req types.RecommendationRequest, candidates []catalog.RecipeRecord) string {
	var b strings.Builder
	b.WriteString(recommendationHeader)

	b.WriteString("\nUser constraints:\n")
	fmt.Fprintf(&b, "- Must include ingredients: %s\n", listOr(req.Include, "none specified"))
	fmt.Fprintf(&b, "- Must exclude ingredients: %s\n", listOr(req.Exclude, "none specified"))
	fmt.Fprintf(&b, "- Ingredients not on hand: %s\n", listOr(req.DontHave, "none specified"))
	fmt.Fprintf(&b, "- Available tools: %s\n", listOr(req.ToolsHave, "none specified"))
	fmt.Fprintf(&b, "- Preferred cuisine: %s\n", stringOr(req.Cuisine, "any"))
	fmt.Fprintf(&b, "- Taste profile: %s\n", stringOr(req.Taste, "balanced"))
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", stringOr(req.Diet, "none"))

	b.WriteString("\nCandidate recipes:\n")
	for _, r := range candidates {
		b.WriteString("###\n")
		fmt.Fprintf(&b, "recipe_id: %s\n", r.ID)
		fmt.Fprintf(&b, "recipe_title: %s\n", r.Title)
		fmt.Fprintf(&b, "category: %s\n", r.Category)
		fmt.Fprintf(&b, "subcategory: %s\n", r.Subcategory)
		fmt.Fprintf(&b, "description: %s\n", r.Description)
		fmt.Fprintf(&b, "ingredients_text: %s\n", r.IngredientsText)
		fmt.Fprintf(&b, "directions_text: %s\n", r.DirectionsText)
		fmt.Fprintf(&b, "num_ingredients: %d\n", r.NumIngredients)
		fmt.Fprintf(&b, "num_steps: %d\n\n", r.NumSteps)
	}

	b.WriteString("Now choose the single best candidate and return ONLY the JSON object for that chosen recipe.\n")
	return b.String()
}

// BuildSubstitutionPrompt renders the edit instruction for replacing one
// ingredient in an existing recipe while preserving its structure.
func BuildSubstitutionPrompt(recipe types.ParsedRecipe, fromName, toName string) string {
	// ParsedRecipe marshals cleanly; the error branch is unreachable.
	recipeJSON, _ := json.Marshal(recipe)

	var b strings.Builder
	b.WriteString("You are a recipe editor. You will receive a recipe in JSON and must ")
	b.WriteString("return updated JSON ONLY, no extra text or markdown.\n\n")
	fmt.Fprintf(&b, "Original recipe JSON:\n%s\n\n", recipeJSON)
	fmt.Fprintf(&b, "Task: Replace the ingredient named '%s' with '%s'. ", fromName, toName)
	b.WriteString("Keep the same overall structure and fields.")
	return b.String()
}

func listOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
