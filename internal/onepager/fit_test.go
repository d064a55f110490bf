package onepager

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onepager-generator/internal/domain"
)

func TestTrimText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Short.", 10, "Short."},
		{"no limit", "anything at all", 0, "anything at all"},
		{"sentence boundary", "First sentence here. Second one is here. Third sentence is long.", 45, "First sentence here. Second one is here."},
		{"word boundary", "alpha beta gamma delta epsilon", 18, "alpha beta gamma"},
		{"hard cut", "abcdefghijklmnopqrstuvwxyz", 10, "abcdefghij"},
		{"counts characters not bytes", "ééééé ééééé", 5, "ééééé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimText(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			if tt.limit > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.limit)
			}
		})
	}
}

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		positions            int
		desc, summary, skill int
	}{
		{1, 320, 500, 350},
		{3, 280, 500, 350},
		{5, 240, 500, 350},
		{6, 200, 420, 350},
		{7, 200, 420, 300},
		{9, 160, 360, 250},
	}
	for _, tt := range tests {
		l := LimitsFor(tt.positions)
		assert.Equal(t, tt.desc, l.ExperienceDesc, "positions=%d", tt.positions)
		assert.Equal(t, tt.summary, l.Summary, "positions=%d", tt.positions)
		assert.Equal(t, tt.skill, l.Skills, "positions=%d", tt.positions)
	}
}

func overlongDocument() domain.ResumeDocument {
	doc := domain.ResumeDocument{
		Personal: domain.Personal{Name: "Jane Doe", JobTitle: "Engineer"},
		Summary:  strings.Repeat("Delivered results across many teams. ", 20),
	}
	for i := 0; i < 6; i++ {
		doc.Experience = append(doc.Experience, domain.Experience{
			Title:       fmt.Sprintf("Role %d", i),
			Company:     "Acme",
			Description: strings.Repeat("- Shipped a feature used by many customers\n", 10),
		})
	}
	for i := 0; i < 3; i++ {
		doc.Education = append(doc.Education, domain.Education{Degree: fmt.Sprintf("Degree %d", i)})
	}
	for i := 0; i < 25; i++ {
		doc.Skills = append(doc.Skills, fmt.Sprintf("Skill number %d", i))
	}
	return doc
}

func TestFit_CapsAndTrims(t *testing.T) {
	doc := overlongDocument()
	limits := LimitsFor(len(doc.Experience))

	out, warnings := Fit(doc, limits)

	require.Len(t, out.Experience, 4)
	assert.Len(t, out.Education, 2)
	assert.LessOrEqual(t, len(out.Skills), 20)
	assert.LessOrEqual(t, utf8.RuneCountInString(strings.Join(out.Skills, ", ")), limits.Skills)
	assert.LessOrEqual(t, utf8.RuneCountInString(out.Summary), limits.Summary)
	for _, e := range out.Experience {
		assert.LessOrEqual(t, utf8.RuneCountInString(e.Description), limits.ExperienceDesc)
	}
	assert.Contains(t, warnings, "experience: kept 4 of 6 entries")
	assert.Contains(t, warnings, "education: kept 2 of 3 entries")
	assert.Contains(t, warnings, "skills: kept 20 of 25 entries")

	assert.Len(t, doc.Experience, 6, "input must not be modified")
	assert.Len(t, doc.Skills, 25)
}

func TestFit_WithinLimitsIsUnchanged(t *testing.T) {
	doc := domain.ResumeDocument{
		Personal:   domain.Personal{Name: "Jane Doe"},
		Summary:    "Engineer.",
		Experience: []domain.Experience{{Title: "Dev", Company: "Acme", Description: "- Built X"}},
		Skills:     []string{"Go", "SQL"},
	}

	out, warnings := Fit(doc, DefaultLimits())

	assert.Empty(t, warnings)
	assert.Equal(t, doc.Personal, out.Personal)
	assert.Equal(t, doc.Experience, out.Experience)
	assert.Equal(t, doc.Skills, out.Skills)
}

func TestFit_Deterministic(t *testing.T) {
	doc := overlongDocument()
	a, wa := Fit(doc, DefaultLimits())
	b, wb := Fit(doc, DefaultLimits())
	assert.Equal(t, a, b)
	assert.Equal(t, wa, wb)
}
