package formatters

import (
	"context"
	"fmt"
)

// ExperienceFormatter suggests achievement-focused descriptions for
// experience and project entries.
type ExperienceFormatter struct {
	chat Chatter
}

func NewExperienceFormatter(chat Chatter) *ExperienceFormatter {
	return &ExperienceFormatter{chat: chat}
}

// Suggest returns alternatives for currentText. kind is
// FieldExperienceDescription or FieldProjectDescription.
func (ef *ExperienceFormatter) Suggest(ctx context.Context, kind, currentText string, fctx map[string]interface{}) ([]string, error) {
	var instr string
	switch kind {
	case FieldExperienceDescription:
		instr = fmt.Sprintf(`Generate %d achievement-focused job descriptions for:
- Title: %s
- Company: %s
- Current description: %s

Requirements:
- 2-3 bullet points starting with "• " (one-pager optimized)
- Start with action verbs and include specific metrics
- Focus on impact and results, not duties
- Complete sentences, no truncation

Return ONLY a JSON array of %d strings (each may hold several bullet lines separated by \n), nothing else.`,
			SuggestionCount, ctxString(fctx, "title", "Position"), ctxString(fctx, "company", "Company"),
			orNotProvided(currentText), SuggestionCount)
	case FieldProjectDescription:
		instr = fmt.Sprintf(`Generate %d impactful project descriptions for:
- Project name: %s
- Technologies: %s
- Current description: %s

Requirements:
- 2-3 concise sentences (one-pager optimized)
- Technical challenges solved, scale and impact metrics
- Complete thoughts with proper endings

Return ONLY a JSON array of %d strings, nothing else.`,
			SuggestionCount, ctxString(fctx, "name", "Project"), ctxString(fctx, "technologies", "Various technologies"),
			orNotProvided(currentText), SuggestionCount)
	default:
		return nil, fmt.Errorf("experience formatter: unsupported field %q", kind)
	}

	output, err := ef.chat.Chat(ctx, "Suggest one-pager "+kind+":\n"+instr)
	if err != nil {
		return nil, err
	}
	return decodeSuggestions(output)
}
