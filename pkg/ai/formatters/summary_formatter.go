package formatters

import (
	"context"
	"fmt"
)

// SummaryFormatter suggests header and summary text: job titles, the
// professional summary and the skills line.
type SummaryFormatter struct {
	chat Chatter
}

func NewSummaryFormatter(chat Chatter) *SummaryFormatter {
	return &SummaryFormatter{chat: chat}
}

// Suggest returns alternatives for currentText. kind is one of
// FieldJobTitle, FieldSummary or FieldSkills.
func (sf *SummaryFormatter) Suggest(ctx context.Context, kind, currentText string, fctx map[string]interface{}) ([]string, error) {
	var instr string
	switch kind {
	case FieldJobTitle:
		instr = fmt.Sprintf(`Generate %d professional job titles/headlines for a resume based on:
- Current title: %s
- Name: %s
- Experience: %s

Requirements:
- Professional and ATS-friendly
- Include seniority level and specialization
- Concise but descriptive (one-pager optimized)

Return ONLY a JSON array of %d strings, nothing else.`,
			SuggestionCount, orNotProvided(currentText), ctxString(fctx, "name", "Professional"),
			ctxList(fctx, "experience", 2), SuggestionCount)
	case FieldSummary:
		instr = fmt.Sprintf(`Generate %d professional resume summaries based on:
- Current summary: %s
- Job Title: %s
- Experience: %s
- Skills: %s

Requirements:
- 3-4 concise sentences (one-pager optimized)
- Focus on achievements with metrics when possible
- Highlight top skills and use action words
- Professional and impactful tone

Return ONLY a JSON array of %d strings, nothing else.`,
			SuggestionCount, orNotProvided(currentText), ctxString(fctx, "jobTitle", "Professional"),
			ctxList(fctx, "experience", 2), ctxList(fctx, "skills", 10), SuggestionCount)
	case FieldSkills:
		instr = fmt.Sprintf(`Generate %d optimized skill lists based on:
- Current skills: %s
- Job Title: %s
- Experience: %s

Requirements:
- 15-20 top skills (one-pager optimized)
- Mix of technical and soft skills, ATS-friendly keywords
- Comma-separated format

Return ONLY a JSON array of %d strings (each a comma-separated skill list), nothing else.`,
			SuggestionCount, orNotProvided(currentText), ctxString(fctx, "jobTitle", "Professional"),
			ctxList(fctx, "experience", 2), SuggestionCount)
	default:
		return nil, fmt.Errorf("summary formatter: unsupported field %q", kind)
	}

	output, err := sf.chat.Chat(ctx, "Suggest one-pager "+kind+":\n"+instr)
	if err != nil {
		return nil, err
	}
	return decodeSuggestions(output)
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
