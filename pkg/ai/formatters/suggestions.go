package formatters

import (
	"encoding/json"
	"errors"
	"strings"
)

// Field kinds that have suggestion prompts.
const (
	FieldJobTitle              = "jobTitle"
	FieldSummary               = "summary"
	FieldSkills                = "skills"
	FieldExperienceDescription = "experienceDescription"
	FieldProjectDescription    = "projectDescription"
)

// SuggestionCount is how many alternatives each prompt asks for.
const SuggestionCount = 3

// FieldKind maps an editor field name to the kind of text it holds. Indexed
// list fields such as "experience-2" or "project-0" map to their
// description kind. ok is false for fields without a prompt.
func FieldKind(field string) (string, bool) {
	switch {
	case strings.HasPrefix(field, "experience-"):
		return FieldExperienceDescription, true
	case strings.HasPrefix(field, "project-"):
		return FieldProjectDescription, true
	}
	switch field {
	case FieldJobTitle, FieldSummary, FieldSkills, FieldExperienceDescription, FieldProjectDescription:
		return field, true
	}
	return "", false
}

// decodeSuggestions reads a JSON array of strings from the model output.
// Output that is not an array degrades to its first non-blank lines.
func decodeSuggestions(output string) ([]string, error) {
	s := strings.TrimSpace(output)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.TrimSpace(strings.ReplaceAll(s, "```", ""))

	var raw []string
	err := json.Unmarshal([]byte(s), &raw)
	if err != nil {
		start := strings.IndexByte(s, '[')
		end := strings.LastIndexByte(s, ']')
		if start >= 0 && end > start {
			err = json.Unmarshal([]byte(s[start:end+1]), &raw)
		}
	}
	if err == nil {
		out := nonBlank(raw)
		if len(out) > 0 {
			return out, nil
		}
	}

	lines := nonBlank(strings.Split(s, "\n"))
	if len(lines) > SuggestionCount {
		lines = lines[:SuggestionCount]
	}
	if len(lines) == 0 {
		return nil, errors.New("ai-service returned no suggestions")
	}
	return lines, nil
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ctxString returns fctx[key] as a string, or fallback when it is missing
// or blank.
func ctxString(fctx map[string]interface{}, key, fallback string) string {
	if v, ok := fctx[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// ctxList returns the first n entries of the list at fctx[key] as JSON.
func ctxList(fctx map[string]interface{}, key string, n int) string {
	list, _ := fctx[key].([]interface{})
	if len(list) > n {
		list = list[:n]
	}
	if list == nil {
		list = []interface{}{}
	}
	return mustMarshal(list)
}

// mustMarshal is a helper for embedding payloads in prompts.
func mustMarshal(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
