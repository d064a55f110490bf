// Package normalize turns untrusted, inconsistently shaped résumé data into
// a domain.ResumeDocument whose leaves are all plain strings.
package normalize

import (
	"fmt"
	"strings"

	"onepager-generator/internal/domain"
)

// Warning describes one degradation applied while normalizing.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Path + ": " + w.Message
}

// Result is the normalized document plus everything that had to be dropped
// or guessed to produce it. The document is usable regardless of warnings.
type Result struct {
	Document domain.ResumeDocument
	Warnings []Warning
}

type normalizer struct {
	warnings []Warning
}

func (n *normalizer) warn(path, format string, args ...interface{}) {
	n.warnings = append(n.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// first returns the first candidate that coerces to non-empty text.
func (n *normalizer) first(path string, candidates ...interface{}) string {
	lost := false
	for _, c := range candidates {
		if s := String(c); s != "" {
			return s
		}
		if unresolvable(c) {
			lost = true
		}
	}
	if lost {
		n.warn(path, "value could not be resolved to text")
	}
	return ""
}

func (n *normalizer) object(path string, v interface{}) map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		n.warn(path, "expected an object, got %T", v)
		return map[string]interface{}{}
	}
	return m
}

// records returns the object elements of a list field. Missing or non-list
// values yield no records; non-object elements are skipped.
func (n *normalizer) records(path string, v interface{}) []map[string]interface{} {
	if v == nil {
		return nil
	}
	list, ok := asList(v)
	if !ok {
		n.warn(path, "expected a list, got %T", v)
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for i, it := range list {
		m, ok := it.(map[string]interface{})
		if !ok {
			n.warn(fmt.Sprintf("%s[%d]", path, i), "expected an object, got %T", it)
			continue
		}
		out = append(out, m)
	}
	return out
}

// Normalize never fails. A nil map produces an empty document.
func Normalize(raw map[string]interface{}) Result {
	n := &normalizer{}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	personal := n.object("personal", raw["personal"])

	doc := domain.ResumeDocument{
		Personal: domain.Personal{
			Name:      n.first("personal.name", personal["name"], raw["name"]),
			JobTitle:  n.first("personal.jobTitle", personal["jobTitle"], raw["jobTitle"], raw["title"]),
			Email:     n.first("personal.email", personal["email"], raw["email"]),
			Phone:     n.first("personal.phone", personal["phone"], raw["phone"]),
			Location:  n.first("personal.location", personal["location"], raw["address"], raw["location"]),
			LinkedIn:  n.first("personal.linkedin", personal["linkedin"], raw["linkedin"]),
			Portfolio: n.first("personal.portfolio", personal["portfolio"], raw["portfolio"], raw["website"]),
		},
		Summary:        n.first("summary", raw["summary"], personal["summary"]),
		Experience:     []domain.Experience{},
		Education:      []domain.Education{},
		Skills:         n.skills(raw["skills"]),
		Projects:       []domain.Project{},
		Certifications: []domain.Certification{},
		Languages:      []domain.Language{},
		Awards:         []domain.Award{},
	}

	for i, e := range n.records("experience", raw["experience"]) {
		p := fmt.Sprintf("experience[%d].", i)
		doc.Experience = append(doc.Experience, domain.Experience{
			Title:       n.first(p+"title", e["title"], e["jobTitle"], e["position"]),
			Company:     n.first(p+"company", e["company"], e["employer"]),
			Location:    n.first(p+"location", e["location"]),
			StartDate:   n.first(p+"startDate", e["startDate"]),
			EndDate:     n.first(p+"endDate", e["endDate"]),
			Description: n.first(p+"description", e["description"]),
		})
	}

	for i, e := range n.records("education", raw["education"]) {
		p := fmt.Sprintf("education[%d].", i)
		doc.Education = append(doc.Education, domain.Education{
			Degree:         n.first(p+"degree", e["degree"]),
			Institution:    n.first(p+"institution", e["institution"], e["school"]),
			Location:       n.first(p+"location", e["location"]),
			GraduationDate: n.first(p+"graduationDate", e["graduationDate"], e["date"], e["year"]),
			Description:    n.first(p+"description", e["description"]),
			GPA:            n.first(p+"gpa", e["gpa"]),
		})
	}

	for i, e := range n.records("projects", raw["projects"]) {
		p := fmt.Sprintf("projects[%d].", i)
		doc.Projects = append(doc.Projects, domain.Project{
			Name:         n.first(p+"name", e["name"], e["title"]),
			Description:  n.first(p+"description", e["description"]),
			Technologies: n.first(p+"technologies", e["technologies"], e["tech"]),
			Link:         n.first(p+"link", e["link"], e["url"]),
		})
	}

	for i, e := range n.records("certifications", raw["certifications"]) {
		p := fmt.Sprintf("certifications[%d].", i)
		doc.Certifications = append(doc.Certifications, domain.Certification{
			Name:         n.first(p+"name", e["name"], e["title"]),
			Organization: n.first(p+"organization", e["organization"], e["issuer"]),
			Date:         n.first(p+"date", e["date"]),
		})
	}

	for i, e := range n.records("languages", raw["languages"]) {
		p := fmt.Sprintf("languages[%d].", i)
		doc.Languages = append(doc.Languages, domain.Language{
			Language:    n.first(p+"language", e["language"], e["name"]),
			Proficiency: n.first(p+"proficiency", e["proficiency"], e["level"]),
		})
	}

	for i, e := range n.records("awards", raw["awards"]) {
		p := fmt.Sprintf("awards[%d].", i)
		doc.Awards = append(doc.Awards, domain.Award{
			Title:       n.first(p+"title", e["title"], e["name"]),
			Issuer:      n.first(p+"issuer", e["issuer"], e["organization"]),
			Date:        n.first(p+"date", e["date"]),
			Description: n.first(p+"description", e["description"]),
		})
	}

	return Result{Document: doc, Warnings: n.warnings}
}

// objectLeak is what a naive stringification of an object produces upstream.
const objectLeak = "[object Object]"

func (n *normalizer) skills(v interface{}) []string {
	out := []string{}
	if v == nil {
		return out
	}
	list, ok := asList(v)
	if !ok {
		n.warn("skills", "expected a list, got %T", v)
		return out
	}
	seen := make(map[string]struct{}, len(list))
	for i, it := range list {
		s := strings.TrimSpace(String(it))
		if s == "" || s == objectLeak {
			if it != nil {
				n.warn(fmt.Sprintf("skills[%d]", i), "dropped empty or unresolvable skill")
			}
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
