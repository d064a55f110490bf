package onepager

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed pages/*.html
var pageFS embed.FS

var pages = template.Must(template.ParseFS(pageFS, "pages/*.html"))

// MobileBreakpoint is the viewport width below which previews switch to
// the fluid layout.
const MobileBreakpoint = 768

// DefaultWatermark is painted over previews unless configured otherwise.
const DefaultWatermark = "ExpertResume"

// Layout selects how a preview page is sized.
type Layout string

const (
	LayoutPage  Layout = "page"
	LayoutFluid Layout = "fluid"
)

// LayoutFor picks the fluid layout for mobile clients and narrow viewports.
// A zero width means the viewport is unknown.
func LayoutFor(viewportWidth int, mobile bool) Layout {
	if mobile || (viewportWidth > 0 && viewportWidth < MobileBreakpoint) {
		return LayoutFluid
	}
	return LayoutPage
}

// Paper is a printable page size.
type Paper struct {
	Name         string
	CSSSize      string
	WidthInches  float64
	HeightInches float64
}

var (
	PaperLetter = Paper{Name: "Letter", CSSSize: "8.5in 11in", WidthInches: 8.5, HeightInches: 11}
	PaperA4     = Paper{Name: "A4", CSSSize: "210mm 297mm", WidthInches: 8.27, HeightInches: 11.69}
)

var letterCountries = map[string]bool{"US": true, "CA": true, "MX": true, "PH": true}

// PaperFor returns Letter for the countries that print on it and A4 for
// everyone else, including unknown or empty country codes.
func PaperFor(country string) Paper {
	if letterCountries[strings.ToUpper(strings.TrimSpace(country))] {
		return PaperLetter
	}
	return PaperA4
}

// PreviewOptions controls the on-screen preview page.
type PreviewOptions struct {
	Layout    Layout
	Watermark string
	Title     string
	Lang      string
}

type pageData struct {
	Lang      string
	Title     string
	Content   template.HTML
	Fluid     bool
	Watermark string
	PageSize  template.CSS
}

// PreviewPage wraps a rendered fragment in a standalone HTML document with a
// non-interactive watermark overlay.
func PreviewPage(fragment string, opts PreviewOptions) (string, error) {
	return executePage("preview", pageData{
		Lang:      langOrDefault(opts.Lang),
		Title:     opts.Title,
		Content:   template.HTML(fragment),
		Fluid:     opts.Layout == LayoutFluid,
		Watermark: opts.Watermark,
	})
}

// ExportPage wraps a rendered fragment in a print document sized for paper.
// Export pages never carry a watermark.
func ExportPage(fragment string, paper Paper, title, lang string) (string, error) {
	return executePage("export", pageData{
		Lang:     langOrDefault(lang),
		Title:    title,
		Content:  template.HTML(fragment),
		PageSize: template.CSS(paper.CSSSize),
	})
}

func executePage(name string, data pageData) (string, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s page: %w", name, err)
	}
	return buf.String(), nil
}

func langOrDefault(lang string) string {
	if l, ok := BaseLocale(lang); ok {
		return l
	}
	return DefaultLocale
}
