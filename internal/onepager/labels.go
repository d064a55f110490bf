package onepager

import (
	"strings"

	"golang.org/x/text/language"
)

// Labels are the section headings and header placeholders a template
// prints. JSON keys match what the labels translator returns.
type Labels struct {
	Summary           string `json:"summary"`
	Experience        string `json:"experience"`
	Education         string `json:"education"`
	Skills            string `json:"skills"`
	Projects          string `json:"projects"`
	Certifications    string `json:"certifications"`
	Languages         string `json:"languages"`
	Awards            string `json:"awards"`
	Contact           string `json:"contact"`
	GPA               string `json:"gpa"`
	YourName          string `json:"your_name"`
	ProfessionalTitle string `json:"professional_title"`
}

// DefaultLocale is used when no locale hint is given or a translation fails.
const DefaultLocale = "en"

var builtinLabels = map[string]Labels{
	"en": {
		Summary:           "Professional Summary",
		Experience:        "Work Experience",
		Education:         "Education",
		Skills:            "Skills",
		Projects:          "Projects",
		Certifications:    "Certifications",
		Languages:         "Languages",
		Awards:            "Awards & Honors",
		Contact:           "Contact",
		GPA:               "GPA",
		YourName:          "Your Name",
		ProfessionalTitle: "Professional Title",
	},
	"es": {
		Summary:           "Resumen Profesional",
		Experience:        "Experiencia Laboral",
		Education:         "Educación",
		Skills:            "Habilidades",
		Projects:          "Proyectos",
		Certifications:    "Certificaciones",
		Languages:         "Idiomas",
		Awards:            "Premios y Reconocimientos",
		Contact:           "Contacto",
		GPA:               "Promedio",
		YourName:          "Tu Nombre",
		ProfessionalTitle: "Título Profesional",
	},
	"fr": {
		Summary:           "Profil Professionnel",
		Experience:        "Expérience Professionnelle",
		Education:         "Formation",
		Skills:            "Compétences",
		Projects:          "Projets",
		Certifications:    "Certifications",
		Languages:         "Langues",
		Awards:            "Prix et Distinctions",
		Contact:           "Contact",
		GPA:               "Moyenne",
		YourName:          "Votre Nom",
		ProfessionalTitle: "Titre Professionnel",
	},
	"de": {
		Summary:           "Berufsprofil",
		Experience:        "Berufserfahrung",
		Education:         "Ausbildung",
		Skills:            "Kenntnisse",
		Projects:          "Projekte",
		Certifications:    "Zertifikate",
		Languages:         "Sprachen",
		Awards:            "Auszeichnungen",
		Contact:           "Kontakt",
		GPA:               "Note",
		YourName:          "Ihr Name",
		ProfessionalTitle: "Berufsbezeichnung",
	},
	"pt": {
		Summary:           "Resumo Profissional",
		Experience:        "Experiência Profissional",
		Education:         "Formação Acadêmica",
		Skills:            "Competências",
		Projects:          "Projetos",
		Certifications:    "Certificações",
		Languages:         "Idiomas",
		Awards:            "Prêmios e Reconhecimentos",
		Contact:           "Contato",
		GPA:               "Média",
		YourName:          "Seu Nome",
		ProfessionalTitle: "Título Profissional",
	},
}

// BaseLocale reduces a BCP 47 tag such as "pt-BR" or "es_MX" to its
// language subtag. ok is false for blank, malformed or unregistered tags.
func BaseLocale(locale string) (string, bool) {
	s := strings.TrimSpace(locale)
	if s == "" || len(s) > maxLocaleLen {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	return base.String(), true
}

// maxLocaleLen bounds the tags handed to the parser.
const maxLocaleLen = 35

// BuiltinLabels returns the compiled-in headings for locale.
func BuiltinLabels(locale string) (Labels, bool) {
	base, ok := BaseLocale(locale)
	if !ok {
		return Labels{}, false
	}
	l, ok := builtinLabels[base]
	return l, ok
}

// DefaultLabels returns the English headings.
func DefaultLabels() Labels {
	return builtinLabels[DefaultLocale]
}

// LabelsFromMap overlays translated values on the English defaults. Keys
// that are missing or blank keep their English heading.
func LabelsFromMap(m map[string]string) Labels {
	l := DefaultLabels()
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(m[key]); v != "" {
			*dst = v
		}
	}
	set(&l.Summary, "summary")
	set(&l.Experience, "experience")
	set(&l.Education, "education")
	set(&l.Skills, "skills")
	set(&l.Projects, "projects")
	set(&l.Certifications, "certifications")
	set(&l.Languages, "languages")
	set(&l.Awards, "awards")
	set(&l.Contact, "contact")
	set(&l.GPA, "gpa")
	set(&l.YourName, "your_name")
	set(&l.ProfessionalTitle, "professional_title")
	return l
}

// Map is the inverse of LabelsFromMap, used when caching translations.
func (l Labels) Map() map[string]string {
	return map[string]string{
		"summary":            l.Summary,
		"experience":         l.Experience,
		"education":          l.Education,
		"skills":             l.Skills,
		"projects":           l.Projects,
		"certifications":     l.Certifications,
		"languages":          l.Languages,
		"awards":             l.Awards,
		"contact":            l.Contact,
		"gpa":                l.GPA,
		"your_name":          l.YourName,
		"professional_title": l.ProfessionalTitle,
	}
}
