package onepager

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"onepager-generator/internal/domain"
)

// Limits are the per-field character budgets and per-section entry caps
// that keep a document on one page.
type Limits struct {
	Name              int
	JobTitle          int
	Email             int
	Phone             int
	Location          int
	LinkedIn          int
	Portfolio         int
	Summary           int
	Skills            int
	ExperienceTitle   int
	ExperienceCompany int
	ExperienceDesc    int
	EducationDegree   int
	EducationSchool   int
	EducationDesc     int
	CertName          int
	CertOrganization  int
	ProjectName       int
	ProjectDesc       int
	AwardTitle        int
	AwardIssuer       int
	AwardDesc         int

	MaxExperience     int
	MaxEducation      int
	MaxSkills         int
	MaxProjects       int
	MaxCertifications int
	MaxLanguages      int
	MaxAwards         int
}

// DefaultLimits are the budgets for a document with three positions.
func DefaultLimits() Limits {
	return Limits{
		Name:              50,
		JobTitle:          70,
		Email:             50,
		Phone:             20,
		Location:          100,
		LinkedIn:          100,
		Portfolio:         100,
		Summary:           500,
		Skills:            350,
		ExperienceTitle:   70,
		ExperienceCompany: 70,
		ExperienceDesc:    280,
		EducationDegree:   100,
		EducationSchool:   100,
		EducationDesc:     150,
		CertName:          100,
		CertOrganization:  80,
		ProjectName:       80,
		ProjectDesc:       200,
		AwardTitle:        100,
		AwardIssuer:       80,
		AwardDesc:         150,

		MaxExperience:     4,
		MaxEducation:      2,
		MaxSkills:         20,
		MaxProjects:       3,
		MaxCertifications: 4,
		MaxLanguages:      5,
		MaxAwards:         3,
	}
}

// LimitsFor scales the summary, skills and description budgets to the
// number of positions: fewer positions get longer descriptions.
func LimitsFor(positions int) Limits {
	l := DefaultLimits()
	switch {
	case positions <= 2:
		l.ExperienceDesc = 320
	case positions <= 3:
		l.ExperienceDesc = 280
	case positions <= 5:
		l.ExperienceDesc = 240
	case positions <= 7:
		l.ExperienceDesc = 200
	default:
		l.ExperienceDesc = 160
	}
	switch {
	case positions > 7:
		l.Summary = 360
	case positions > 5:
		l.Summary = 420
	}
	switch {
	case positions > 8:
		l.Skills = 250
	case positions > 6:
		l.Skills = 300
	}
	return l
}

// Fit trims doc to limits and reports every change it made. It is pure:
// doc is not modified and the same input always yields the same output.
func Fit(doc domain.ResumeDocument, limits Limits) (domain.ResumeDocument, []string) {
	f := fitter{}
	out := doc

	p := &out.Personal
	p.Name = f.trim("personal.name", p.Name, limits.Name)
	p.JobTitle = f.trim("personal.jobTitle", p.JobTitle, limits.JobTitle)
	p.Email = f.trim("personal.email", p.Email, limits.Email)
	p.Phone = f.trim("personal.phone", p.Phone, limits.Phone)
	p.Location = f.trim("personal.location", p.Location, limits.Location)
	p.LinkedIn = f.trim("personal.linkedin", p.LinkedIn, limits.LinkedIn)
	p.Portfolio = f.trim("personal.portfolio", p.Portfolio, limits.Portfolio)
	out.Summary = f.trim("summary", out.Summary, limits.Summary)

	out.Experience = capped(&f, "experience", doc.Experience, limits.MaxExperience)
	for i := range out.Experience {
		e := &out.Experience[i]
		path := fmt.Sprintf("experience[%d]", i)
		e.Title = f.trim(path+".title", e.Title, limits.ExperienceTitle)
		e.Company = f.trim(path+".company", e.Company, limits.ExperienceCompany)
		e.Description = f.trim(path+".description", e.Description, limits.ExperienceDesc)
	}

	out.Education = capped(&f, "education", doc.Education, limits.MaxEducation)
	for i := range out.Education {
		e := &out.Education[i]
		path := fmt.Sprintf("education[%d]", i)
		e.Degree = f.trim(path+".degree", e.Degree, limits.EducationDegree)
		e.Institution = f.trim(path+".institution", e.Institution, limits.EducationSchool)
		e.Description = f.trim(path+".description", e.Description, limits.EducationDesc)
	}

	out.Skills = f.skills(doc.Skills, limits.MaxSkills, limits.Skills)

	out.Projects = capped(&f, "projects", doc.Projects, limits.MaxProjects)
	for i := range out.Projects {
		pr := &out.Projects[i]
		path := fmt.Sprintf("projects[%d]", i)
		pr.Name = f.trim(path+".name", pr.Name, limits.ProjectName)
		pr.Description = f.trim(path+".description", pr.Description, limits.ProjectDesc)
	}

	out.Certifications = capped(&f, "certifications", doc.Certifications, limits.MaxCertifications)
	for i := range out.Certifications {
		c := &out.Certifications[i]
		path := fmt.Sprintf("certifications[%d]", i)
		c.Name = f.trim(path+".name", c.Name, limits.CertName)
		c.Organization = f.trim(path+".organization", c.Organization, limits.CertOrganization)
	}

	out.Languages = capped(&f, "languages", doc.Languages, limits.MaxLanguages)

	out.Awards = capped(&f, "awards", doc.Awards, limits.MaxAwards)
	for i := range out.Awards {
		a := &out.Awards[i]
		path := fmt.Sprintf("awards[%d]", i)
		a.Title = f.trim(path+".title", a.Title, limits.AwardTitle)
		a.Issuer = f.trim(path+".issuer", a.Issuer, limits.AwardIssuer)
		a.Description = f.trim(path+".description", a.Description, limits.AwardDesc)
	}

	return out, f.warnings
}

type fitter struct {
	warnings []string
}

func (f *fitter) trim(path, text string, limit int) string {
	out := TrimText(text, limit)
	if out != text {
		f.warnings = append(f.warnings, fmt.Sprintf("%s: shortened to %d characters", path, utf8.RuneCountInString(out)))
	}
	return out
}

func (f *fitter) skills(skills []string, keep, budget int) []string {
	out := capped(f, "skills", skills, keep)
	if budget <= 0 || utf8.RuneCountInString(strings.Join(out, ", ")) <= budget {
		return out
	}
	n, used := 0, 0
	for _, s := range out {
		c := utf8.RuneCountInString(s) + 2
		if used+c > budget {
			break
		}
		used += c
		n++
	}
	f.warnings = append(f.warnings, fmt.Sprintf("skills: kept %d of %d to fit %d characters", n, len(out), budget))
	return out[:n]
}

// capped returns a copy of at most keep leading entries. A non-positive
// keep retains everything.
func capped[T any](f *fitter, path string, in []T, keep int) []T {
	n := len(in)
	if keep > 0 && n > keep {
		f.warnings = append(f.warnings, fmt.Sprintf("%s: kept %d of %d entries", path, keep, n))
		n = keep
	}
	out := make([]T, n)
	copy(out, in[:n])
	return out
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// TrimText shortens text to at most limit characters. It prefers whole
// sentences when they keep more than 60% of the budget, then a word break
// in the last 20% of the budget, and cuts hard otherwise.
func TrimText(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	var b strings.Builder
	n := 0
	for _, s := range sentenceRe.FindAllString(text, -1) {
		c := utf8.RuneCountInString(s)
		if n+c > limit {
			break
		}
		b.WriteString(s)
		n += c
	}
	if float64(n) > float64(limit)*0.6 {
		return strings.TrimSpace(b.String())
	}

	cut := []rune(text)[:limit]
	if sp := lastSpace(cut); float64(sp) > float64(limit)*0.8 {
		return strings.TrimSpace(string(cut[:sp]))
	}
	return strings.TrimSpace(string(cut))
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}
