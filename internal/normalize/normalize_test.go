package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalize_Skills(t *testing.T) {
	raw := map[string]interface{}{
		"skills": []interface{}{
			map[string]interface{}{"value": "React"},
			"Node.js",
			map[string]interface{}{},
			nil,
			"  ",
		},
	}

	res := Normalize(raw)

	assert.Equal(t, []string{"React", "Node.js"}, res.Document.Skills)
}

func TestNormalize_SkillsDropsLeaksAndDuplicates(t *testing.T) {
	raw := map[string]interface{}{
		"skills": []interface{}{"Go", "[object Object]", " Go ", "SQL", "Go"},
	}

	res := Normalize(raw)

	assert.Equal(t, []string{"Go", "SQL"}, res.Document.Skills)
	assert.NotEmpty(t, res.Warnings)
}

func TestNormalize_ListFieldsNeverNil(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{name: "missing", value: nil},
		{name: "string", value: "Go, SQL"},
		{name: "object", value: map[string]interface{}{"a": 1}},
		{name: "number", value: float64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]interface{}{}
			for _, k := range []string{"skills", "experience", "education", "projects", "certifications", "languages", "awards"} {
				if tt.value != nil {
					raw[k] = tt.value
				}
			}
			doc := Normalize(raw).Document

			assert.NotNil(t, doc.Skills)
			assert.Empty(t, doc.Skills)
			assert.Empty(t, doc.Experience)
			assert.Empty(t, doc.Education)
			assert.Empty(t, doc.Projects)
			assert.Empty(t, doc.Certifications)
			assert.Empty(t, doc.Languages)
			assert.Empty(t, doc.Awards)
		})
	}
}

func TestNormalize_NestedNameObject(t *testing.T) {
	raw := decode(t, `{"personal": {"name": {"name": "Jane Doe"}}}`)

	res := Normalize(raw)

	assert.Equal(t, "Jane Doe", res.Document.Personal.Name)
}

func TestNormalize_LegacyKeys(t *testing.T) {
	raw := decode(t, `{
		"name": "Flat Name",
		"title": "Flat Title",
		"address": "Berlin",
		"website": "example.dev",
		"personal": {"email": "a@b.c", "summary": "From personal"},
		"experience": [{"position": "Dev", "employer": "Acme", "startDate": 2020}],
		"education": [{"school": "MIT", "year": 2019, "gpa": 3.9}],
		"projects": [{"title": "P", "tech": ["Go", "Redis"], "url": "github.com/p"}],
		"certifications": [{"title": "CKA", "issuer": "CNCF"}],
		"languages": [{"name": "German", "level": "Native"}],
		"awards": [{"name": "Best Paper", "organization": "ACM"}]
	}`)

	res := Normalize(raw)
	doc := res.Document

	assert.Equal(t, "Flat Name", doc.Personal.Name)
	assert.Equal(t, "Flat Title", doc.Personal.JobTitle)
	assert.Equal(t, "Berlin", doc.Personal.Location)
	assert.Equal(t, "example.dev", doc.Personal.Portfolio)
	assert.Equal(t, "a@b.c", doc.Personal.Email)
	assert.Equal(t, "From personal", doc.Summary)

	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Dev", doc.Experience[0].Title)
	assert.Equal(t, "Acme", doc.Experience[0].Company)
	assert.Equal(t, "2020", doc.Experience[0].StartDate)

	require.Len(t, doc.Education, 1)
	assert.Equal(t, "MIT", doc.Education[0].Institution)
	assert.Equal(t, "2019", doc.Education[0].GraduationDate)
	assert.Equal(t, "3.9", doc.Education[0].GPA)

	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "P", doc.Projects[0].Name)
	assert.Equal(t, "Go, Redis", doc.Projects[0].Technologies)
	assert.Equal(t, "github.com/p", doc.Projects[0].Link)

	require.Len(t, doc.Certifications, 1)
	assert.Equal(t, "CKA", doc.Certifications[0].Name)
	assert.Equal(t, "CNCF", doc.Certifications[0].Organization)

	require.Len(t, doc.Languages, 1)
	assert.Equal(t, "German", doc.Languages[0].Language)
	assert.Equal(t, "Native", doc.Languages[0].Proficiency)

	require.Len(t, doc.Awards, 1)
	assert.Equal(t, "Best Paper", doc.Awards[0].Title)
	assert.Equal(t, "ACM", doc.Awards[0].Issuer)

	assert.Empty(t, res.Warnings)
}

func TestNormalize_CanonicalKeyWins(t *testing.T) {
	raw := decode(t, `{"name": "Flat", "personal": {"name": "Nested"}}`)

	assert.Equal(t, "Nested", Normalize(raw).Document.Personal.Name)
}

func TestNormalize_EmptyCanonicalFallsBack(t *testing.T) {
	raw := decode(t, `{"name": "Flat", "personal": {"name": ""}}`)

	assert.Equal(t, "Flat", Normalize(raw).Document.Personal.Name)
}

func TestNormalize_WarnsOnMalformedInput(t *testing.T) {
	raw := decode(t, `{
		"personal": "not an object",
		"summary": {"unknown": "shape"},
		"experience": ["just a string", {"title": "Kept"}]
	}`)

	res := Normalize(raw)

	require.Len(t, res.Document.Experience, 1)
	assert.Equal(t, "Kept", res.Document.Experience[0].Title)
	assert.Equal(t, "", res.Document.Summary)

	paths := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		paths = append(paths, w.Path)
	}
	assert.Contains(t, paths, "personal")
	assert.Contains(t, paths, "summary")
	assert.Contains(t, paths, "experience[0]")
}

func TestNormalize_NilInput(t *testing.T) {
	assert.NotPanics(t, func() {
		res := Normalize(nil)
		assert.Equal(t, "", res.Document.Personal.Name)
		assert.Empty(t, res.Warnings)
	})
}
