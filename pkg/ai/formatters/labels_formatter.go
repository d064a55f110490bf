package formatters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Chatter sends a prompt to the ai-service and returns its output text.
type Chatter interface {
	Chat(ctx context.Context, input string) (string, error)
}

// LabelsFormatter translates section headings into another language.
type LabelsFormatter struct {
	chat     Chatter
	language string
}

func NewLabelsFormatter(chat Chatter, language string) *LabelsFormatter {
	return &LabelsFormatter{chat: chat, language: language}
}

// Format translates the values of base and returns a map with the same
// keys. Keys the service leaves out or returns empty keep their base value.
func (lf *LabelsFormatter) Format(ctx context.Context, base map[string]string) (map[string]string, error) {
	keys := make([]string, 0, len(base))
	for k := range base {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	example, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		return nil, err
	}

	instr := fmt.Sprintf(`You are a professional resume label translator. Translate section headings to %s.

RULES:
1. Return ONLY valid JSON (no markdown, no code blocks, no explanation)
2. Translate VALUES to %s ONLY - do NOT change the KEY names
3. Each value must be a short professional heading (1-5 words)
4. MUST include ALL %d keys in the output: %s

English headings:
%s`, lf.language, lf.language, len(keys), strings.Join(keys, ", "), example)

	output, err := lf.chat.Chat(ctx, "Translate UI labels to "+lf.language+":\n"+instr)
	if err != nil {
		return nil, err
	}

	var translated map[string]string
	if err := decodeObject(output, &translated); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(base))
	for k, v := range base {
		if t := strings.TrimSpace(translated[k]); t != "" {
			out[k] = t
		} else {
			out[k] = v
		}
	}
	return out, nil
}

// decodeObject parses s as JSON, falling back to the outermost {...} span
// when the model wraps its answer in prose or a code fence.
func decodeObject(s string, v interface{}) error {
	err := json.Unmarshal([]byte(s), v)
	if err == nil {
		return nil
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(s[start:end+1]), v); err2 == nil {
			return nil
		}
	}
	return fmt.Errorf("ai-service returned non-json content: %w", err)
}
