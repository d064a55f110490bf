package onepager

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"onepager-generator/internal/domain"
)

func TestValidColor(t *testing.T) {
	for _, c := range []string{"#fff", "#A1B2C3", "#a1b2c3d4"} {
		assert.True(t, ValidColor(c), c)
	}
	for _, c := range []string{"", "fff", "#ffff", "red", "#12345g", "#fff;background:url(x)"} {
		assert.False(t, ValidColor(c), c)
	}
}

func TestThemeFromColors(t *testing.T) {
	th, rejected := ThemeFromColors(domain.Colors{Primary: "#ABCDEF", Accent: "expression(alert(1))"})

	assert.Equal(t, template.CSS("#abcdef"), th.Primary)
	assert.Empty(t, th.Accent)
	assert.Len(t, rejected, 1)

	th = th.withDefaults(Theme{Primary: "#000000", Accent: "#111111"})
	assert.Equal(t, template.CSS("#abcdef"), th.Primary)
	assert.Equal(t, template.CSS("#111111"), th.Accent)
}

func TestBaseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"pt-BR", "pt", true},
		{"es_MX", "es", true},
		{" FR ", "fr", true},
		{"ja", "ja", true},
		{"", "", false},
		{"not a locale 0 <script>", "", false},
		{strings.Repeat("de-", 40) + "DE", "", false},
	}
	for _, tt := range tests {
		got, ok := BaseLocale(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLabels(t *testing.T) {
	es, ok := BuiltinLabels("es-MX")
	assert.True(t, ok)
	assert.Equal(t, "Habilidades", es.Skills)

	_, ok = BuiltinLabels("ja")
	assert.False(t, ok)

	l := LabelsFromMap(map[string]string{"skills": "スキル", "awards": "  "})
	assert.Equal(t, "スキル", l.Skills)
	assert.Equal(t, DefaultLabels().Awards, l.Awards)
	assert.Equal(t, l, LabelsFromMap(l.Map()))
}
