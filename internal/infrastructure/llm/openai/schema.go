package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/antonkarev/doc-classifier/internal/core/domain"
)

// classificationSchema checks shape only: the category must be a non-empty
// string and the summary a string. Membership in the taxonomy is checked
// by the caller so label drift can fall back instead of failing the call.
var classificationSchema = jsonschema.MustCompileString("classification.json", `{
	"type": "object",
	"required": ["category", "summary"],
	"properties": {
		"category": {"type": "string", "minLength": 1},
		"summary": {"type": "string"}
	}
}`)

// parseClassification decodes the model's reply into a Classification.
// Chatty models sometimes wrap the object in prose, so when the whole
// reply does not parse the embedded object is salvaged before giving up.
func parseClassification(content string) (domain.Classification, error) {
	raw := []byte(strings.TrimSpace(content))

	if err := validateClassificationJSON(raw); err != nil {
		salvaged, ok := extractJSONObject(string(raw))
		if !ok {
			return domain.Classification{}, err
		}
		raw = []byte(salvaged)
		if err := validateClassificationJSON(raw); err != nil {
			return domain.Classification{}, err
		}
	}

	var cls domain.Classification
	if err := json.Unmarshal(raw, &cls); err != nil {
		return domain.Classification{}, fmt.Errorf("decode classification: %w", err)
	}
	return cls, nil
}

func validateClassificationJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode classification: %w", err)
	}
	if err := classificationSchema.Validate(v); err != nil {
		return fmt.Errorf("classification schema: %w", err)
	}
	return nil
}

// extractJSONObject pulls the outermost {...} span out of a reply that
// surrounds it with prose.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
