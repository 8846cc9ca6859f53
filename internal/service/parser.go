package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmo7728/5-final-daynight-jam/internal/types"
)

// maxExcerptLen bounds how much of an unparseable response ends up in an
// error message.
const maxExcerptLen = 200

// ExtractJSON pulls a single JSON object out of arbitrary model output.
// Two-stage strategy: try the trimmed text directly, then fall back to the
// span between the first '{' and the last '}'. The fallback recovers JSON
// wrapped in prose or markdown code fences, which the service produces
// despite instruction.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}

	if isJSONObject(trimmed) {
		return json.RawMessage(trimmed), nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: response begins: %q", ErrNoJSONFound, excerpt(trimmed))
	}

	candidate := trimmed[start : end+1]
	if !isJSONObject(candidate) {
		return nil, fmt.Errorf("%w: response begins: %q", ErrUnparseableResponse, excerpt(trimmed))
	}
	return json.RawMessage(candidate), nil
}

// ParseRecipeJSON extracts the JSON object from the response text and
// validates that it carries the full recipe field set. Either a complete
// ParsedRecipe is returned or a typed error; never a partial object.
func ParseRecipeJSON(text string) (*types.ParsedRecipe, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}

	required := []string{"recipe_id", "name", "ingredients", "tools", "steps", "substitutions"}
	var missing []string
	for _, f := range required {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(missing, ", "))
	}

	var recipe types.ParsedRecipe
	if err := json.Unmarshal(raw, &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableResponse, err)
	}
	return &recipe, nil
}

func isJSONObject(s string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &obj) == nil
}

func excerpt(s string) string {
	if len(s) > maxExcerptLen {
		return s[:maxExcerptLen]
	}
	return s
}
