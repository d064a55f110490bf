package onepager

import (
	"html/template"
	"regexp"
	"strings"
)

const (
	listOpen  = `<ul style="margin: 0; padding-left: 20px; list-style-type: disc;">`
	listClose = `</ul>`
	itemOpen  = `<li style="margin-bottom: 2px;">`
	itemClose = `</li>`
)

var (
	glyphMarker   = regexp.MustCompile(`^[•\-*‣◦⁃∙]\s*`)
	numericMarker = regexp.MustCompile(`^\d+\.\s*`)
)

// FormatBullets turns free text into list markup. Runs of lines starting
// with a bullet glyph or a "1." style prefix become one <ul>; every other
// non-empty line becomes its own <div>. Line content is HTML-escaped.
func FormatBullets(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var b strings.Builder
	inList := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if content, ok := stripMarker(line); ok {
			if content == "" {
				continue
			}
			if !inList {
				b.WriteString(listOpen)
				inList = true
			}
			b.WriteString(itemOpen)
			b.WriteString(template.HTMLEscapeString(content))
			b.WriteString(itemClose)
			continue
		}

		if inList {
			b.WriteString(listClose)
			inList = false
		}
		b.WriteString("<div>")
		b.WriteString(template.HTMLEscapeString(line))
		b.WriteString("</div>")
	}
	if inList {
		b.WriteString(listClose)
	}
	return template.HTML(b.String())
}

// stripMarker reports whether line is a bullet line and returns its content
// without the marker.
func stripMarker(line string) (string, bool) {
	glyph := glyphMarker.MatchString(line)
	numbered := numericMarker.MatchString(line)
	if !glyph && !numbered {
		return line, false
	}
	content := glyphMarker.ReplaceAllString(line, "")
	content = numericMarker.ReplaceAllString(content, "")
	return strings.TrimSpace(content), true
}
