package onepager

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

func funcMap(log *zap.Logger) template.FuncMap {
	return template.FuncMap{
		"bullets":     safeBullets(log),
		"join":        join,
		"dateRange":   dateRange,
		"contactLine": contactLine,
		"level":       level,
		"dots":        dots,
		"initials":    initials,
		"linkLabel":   linkLabel,
		"href":        href,
		"add":         func(a, b int) int { return a + b },
		"upper":       strings.ToUpper,
		"lower":       strings.ToLower,
	}
}

// safeBullets wraps FormatBullets so a formatting fault degrades to the
// escaped original text instead of aborting the whole template.
func safeBullets(log *zap.Logger) func(string) template.HTML {
	return func(text string) (out template.HTML) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn("bullet formatting failed", zap.Any("panic", r))
				out = template.HTML(template.HTMLEscapeString(text))
			}
		}()
		return FormatBullets(text)
	}
}

func join(items []string, sep string) string {
	return strings.Join(items, sep)
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

// contactLine joins the non-empty parts with sep.
func contactLine(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// level maps a free-form language proficiency to a 1..5 scale.
func level(proficiency string) int {
	p := strings.ToLower(strings.TrimSpace(proficiency))
	if n, err := strconv.Atoi(p); err == nil {
		switch {
		case n < 1:
			return 1
		case n > 5:
			return 5
		default:
			return n
		}
	}
	switch {
	case p == "":
		return 3
	case strings.Contains(p, "native"), strings.Contains(p, "bilingual"),
		strings.Contains(p, "mother"), p == "c2":
		return 5
	case strings.Contains(p, "fluent"), strings.Contains(p, "advanced"),
		strings.Contains(p, "proficient"), strings.Contains(p, "professional"), p == "c1":
		return 4
	case strings.Contains(p, "intermediate"), strings.Contains(p, "conversational"),
		p == "b1", p == "b2":
		return 3
	case strings.Contains(p, "elementary"), strings.Contains(p, "basic"), p == "a2":
		return 2
	case strings.Contains(p, "beginner"), p == "a1":
		return 1
	}
	return 3
}

// dots returns five flags, the first n set.
func dots(n int) []bool {
	out := make([]bool, 5)
	for i := 0; i < n && i < len(out); i++ {
		out[i] = true
	}
	return out
}

func initials(name string) string {
	out := make([]rune, 0, 3)
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		if !unicode.IsLetter(r[0]) {
			continue
		}
		out = append(out, unicode.ToUpper(r[0]))
		if len(out) == cap(out) {
			break
		}
	}
	return string(out)
}

func withScheme(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}

// href gives scheme-less links an https scheme so they resolve as absolute
// URLs inside the page.
func href(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		return link
	}
	return withScheme(link)
}

// linkLabel shortens a URL to its registrable domain, e.g.
// "https://www.github.com/x" becomes "github.com".
func linkLabel(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(withScheme(link))
	if err != nil {
		return link
	}
	host := parsed.Hostname()
	if host == "" {
		return link
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}
