package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/internal/catalog"
	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// DefaultMaxCandidates bounds how many catalog records are embedded in a
// recommendation prompt.
const DefaultMaxCandidates = 5

// includeMatchScore is the weight per matched include term. Candidate
// scoring is a deliberately simple substring heuristic, not a ranking
// system.
const includeMatchScore = 3

// RecommendationService picks catalog candidates for a request, asks the
// text-generation service to choose and parse one, and validates the
// result. One instance is constructed at startup and shared.
type RecommendationService struct {
	catalog       *catalog.Catalog
	generator     Generator
	maxCandidates int
}

// NewRecommendationService creates the service over a loaded catalog and a
// generation gateway.
func NewRecommendationService(cat *catalog.Catalog, gen Generator) *RecommendationService {
	return &RecommendationService{
		catalog:       cat,
		generator:     gen,
		maxCandidates: DefaultMaxCandidates,
	}
}

type scoredRecord struct {
	score  int
	record catalog.RecipeRecord
}

// SelectCandidates scores catalog records against the constraints.
// Any excluded term found in a record's ingredients discards the record
// outright. Otherwise the score counts include-term matches; with no
// include terms every surviving record scores 1 so something is always
// eligible. Ties keep catalog order.
func (s *RecommendationService) SelectCandidates(include, exclude []string, maxCandidates int) []catalog.RecipeRecord {
	if maxCandidates <= 0 {
		maxCandidates = s.maxCandidates
	}

	var scored []scoredRecord
	for _, r := range s.catalog.Records() {
		ingredients := strings.ToLower(r.IngredientsText)

		if containsAny(ingredients, exclude) {
			continue
		}

		score := 0
		for _, inc := range include {
			if strings.Contains(ingredients, inc) {
				score += includeMatchScore
			}
		}
		if len(include) == 0 {
			score = 1
		}
		if score > 0 {
			scored = append(scored, scoredRecord{score: score, record: r})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}

	records := make([]catalog.RecipeRecord, len(scored))
	for i, sr := range scored {
		records[i] = sr.record
	}
	return records
}

// GetRecommendation runs the full flow: filter candidates, build the
// prompt, call the generation gateway, parse and validate the response.
func (s *RecommendationService) GetRecommendation(ctx context.Context, req types.RecommendationRequest) (*types.ParsedRecipe, error) {
	normalized := normalizeRequest(req)

	// Exclusion is the union of explicit excludes and "don't have".
	exclusion := append(append([]string{}, normalized.Exclude...), normalized.DontHave...)

	candidates := s.SelectCandidates(normalized.Include, exclusion, s.maxCandidates)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	prompt := BuildRecommendationPrompt(normalized, candidates)

	content, tokensUsed, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	logger.Debug("recommendation generated",
		zap.Int("candidates", len(candidates)),
		zap.Int("tokens_used", tokensUsed),
	)

	return ParseRecipeJSON(content)
}

// ReplaceIngredient asks the model to edit a caller-supplied recipe,
// replacing one named ingredient while preserving structure. The catalog
// and selector are not involved.
func (s *RecommendationService) ReplaceIngredient(ctx context.Context, recipe types.ParsedRecipe, fromName, toName string) (*types.ParsedRecipe, error) {
	prompt := BuildSubstitutionPrompt(recipe, fromName, toName)

	content, _, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseRecipeJSON(content)
}

// normalizeRequest lowercases the constraint terms at the boundary so the
// selector and prompt builder see consistent input.
func normalizeRequest(req types.RecommendationRequest) types.RecommendationRequest {
	return types.RecommendationRequest{
		Include:   lowercaseAll(req.Include),
		Exclude:   lowercaseAll(req.Exclude),
		DontHave:  lowercaseAll(req.DontHave),
		ToolsHave: lowercaseAll(req.ToolsHave),
		Cuisine:   req.Cuisine,
		Taste:     req.Taste,
		Diet:      req.Diet,
	}
}

func lowercaseAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
