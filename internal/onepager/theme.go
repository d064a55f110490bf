package onepager

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"onepager-generator/internal/domain"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Theme carries the two colors every template paints with. Values are
// pre-validated so html/template passes them into style attributes as is.
type Theme struct {
	Primary template.CSS
	Accent  template.CSS
}

// ValidColor reports whether s is a #rgb, #rrggbb or #rrggbbaa color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// ThemeFromColors builds a theme from caller supplied overrides. Invalid or
// empty values are left unset so the template default applies; each
// rejected value is reported in the returned slice.
func ThemeFromColors(c domain.Colors) (Theme, []string) {
	var (
		t        Theme
		rejected []string
	)
	if v := strings.TrimSpace(c.Primary); v != "" {
		if ValidColor(v) {
			t.Primary = template.CSS(strings.ToLower(v))
		} else {
			rejected = append(rejected, fmt.Sprintf("primary color %q is not a hex color", v))
		}
	}
	if v := strings.TrimSpace(c.Accent); v != "" {
		if ValidColor(v) {
			t.Accent = template.CSS(strings.ToLower(v))
		} else {
			rejected = append(rejected, fmt.Sprintf("accent color %q is not a hex color", v))
		}
	}
	return t, rejected
}

func (t Theme) withDefaults(d Theme) Theme {
	if t.Primary == "" {
		t.Primary = d.Primary
	}
	if t.Accent == "" {
		t.Accent = d.Accent
	}
	return t
}
