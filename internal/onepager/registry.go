// Package onepager holds the one-page résumé templates and the pure
// rendering functions around them.
package onepager

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"

	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// NotFoundHTML is returned for template keys the registry does not know.
const NotFoundHTML = `<div style="padding: 20px; text-align: center; color: #666;">Template not found</div>`

// View is the data a template executes against.
type View struct {
	domain.ResumeDocument
	Labels Labels
	Theme  Theme
}

// Descriptor describes one template for catalogue listings.
type Descriptor struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Columns     int    `json:"columns"`
	FontFamily  string `json:"fontFamily"`
	Primary     string `json:"primary"`
	Accent      string `json:"accent"`
}

func (d Descriptor) theme() Theme {
	return Theme{Primary: template.CSS(d.Primary), Accent: template.CSS(d.Accent)}
}

var catalogue = []Descriptor{
	{Key: "classic", Name: "Classic Professional", Description: "Clean single column layout perfect for any profession", Columns: 1, FontFamily: "Arial, sans-serif", Primary: "#2d3748", Accent: "#3182ce"},
	{Key: "modern", Name: "Modern Two-Column", Description: "Elegant sidebar layout with modern styling", Columns: 2, FontFamily: "Inter, sans-serif", Primary: "#2b6cb0", Accent: "#4299e1"},
	{Key: "compact", Name: "Compact Minimal", Description: "Maximizes space for more content", Columns: 1, FontFamily: "Open Sans, sans-serif", Primary: "#1a202c", Accent: "#3182ce"},
	{Key: "executive", Name: "Executive", Description: "Professional accent for leadership roles", Columns: 1, FontFamily: "Georgia, serif", Primary: "#1a202c", Accent: "#d69e2e"},
	{Key: "tech", Name: "Tech-Focused", Description: "Developer style for tech professionals", Columns: 1, FontFamily: "Fira Code, monospace", Primary: "#2d3748", Accent: "#38a169"},
	{Key: "creative", Name: "Creative", Description: "Visual and modern design", Columns: 1, FontFamily: "Poppins, sans-serif", Primary: "#805ad5", Accent: "#9f7aea"},
	{Key: "timeline", Name: "Timeline Journey", Description: "Elegant timeline with visual markers", Columns: 1, FontFamily: "Lato, sans-serif", Primary: "#2c5282", Accent: "#4299e1"},
	{Key: "grid", Name: "Modern Grid", Description: "Card-based box layout", Columns: 2, FontFamily: "Montserrat, sans-serif", Primary: "#276749", Accent: "#48bb78"},
	{Key: "elegant", Name: "Elegant Serif", Description: "Minimalist with white space", Columns: 1, FontFamily: "Lora, serif", Primary: "#4a5568", Accent: "#718096"},
	{Key: "bold", Name: "Bold Impact", Description: "Dramatic asymmetric design", Columns: 1, FontFamily: "Roboto, sans-serif", Primary: "#1a365d", Accent: "#3182ce"},
	{Key: "magazine", Name: "Magazine Editorial", Description: "Multi-column newspaper style", Columns: 2, FontFamily: "Merriweather, serif", Primary: "#000000", Accent: "#e53e3e"},
	{Key: "modern_tech", Name: "Modern Tech", Description: "Tech-focused double column with dark sidebar", Columns: 2, FontFamily: "JetBrains Mono, monospace", Primary: "#0f172a", Accent: "#38bdf8"},
	{Key: "creative_bold", Name: "Creative Bold", Description: "Bold, artistic design with unique typography", Columns: 1, FontFamily: "Oswald, sans-serif", Primary: "#c53030", Accent: "#fc8181"},
	{Key: "professional_serif", Name: "Professional Serif", Description: "Elegant serif fonts for high readability", Columns: 1, FontFamily: "Merriweather, serif", Primary: "#2d3748", Accent: "#2c5282"},
	{Key: "graceful_elegance", Name: "Graceful Elegance", Description: "Highly eye-appealing, graceful and beautiful design", Columns: 1, FontFamily: "Playfair Display, serif", Primary: "#702459", Accent: "#d53f8c"},
}

// Registry maps template keys to parsed templates. It is safe for
// concurrent use once built.
type Registry struct {
	tpl         *template.Template
	descriptors map[string]Descriptor
	log         *zap.Logger
}

// NewRegistry parses the embedded templates and checks every catalogue key
// has a matching definition.
func NewRegistry(log *zap.Logger) (*Registry, error) {
	log = logger.OrNop(log)
	tpl, err := template.New("onepager").Funcs(funcMap(log)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := &Registry{tpl: tpl, descriptors: make(map[string]Descriptor, len(catalogue)), log: log}
	for _, d := range catalogue {
		if tpl.Lookup(d.Key) == nil {
			return nil, fmt.Errorf("template %q has no definition", d.Key)
		}
		r.descriptors[d.Key] = d
	}
	return r, nil
}

// MustRegistry is NewRegistry for callers that cannot continue without
// templates.
func MustRegistry(log *zap.Logger) *Registry {
	r, err := NewRegistry(log)
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether key names a known template.
func (r *Registry) Has(key string) bool {
	_, ok := r.descriptors[key]
	return ok
}

// Descriptor returns the catalogue entry for key.
func (r *Registry) Descriptor(key string) (Descriptor, bool) {
	d, ok := r.descriptors[key]
	return d, ok
}

// List returns all templates sorted by key.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Render executes template key against view. Unknown keys and execution
// failures yield NotFoundHTML; Render never panics.
func (r *Registry) Render(key string, view View) string {
	d, ok := r.descriptors[key]
	if !ok {
		return NotFoundHTML
	}
	view.Theme = view.Theme.withDefaults(d.theme())
	if view.Labels == (Labels{}) {
		view.Labels = DefaultLabels()
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, key, view); err != nil {
		r.log.Error("template execution failed", zap.String("template", key), zap.Error(err))
		return NotFoundHTML
	}
	return buf.String()
}
