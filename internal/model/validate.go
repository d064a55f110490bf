// Package model checks raw résumé input against the canonical JSON schema.
// Violations are advisory: the normalizer still renders the document.
package model

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiled() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
	})
	return schema, schemaErr
}

// Issue is one schema violation.
type Issue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Description
}

// Validate returns the schema violations in m, sorted by field. The error is
// non-nil only when the schema itself cannot be used.
func Validate(m map[string]interface{}) ([]Issue, error) {
	s, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("load resume schema: %w", err)
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return nil, fmt.Errorf("validate resume: %w", err)
	}
	issues := make([]Issue, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		issues = append(issues, Issue{Field: e.Field(), Description: e.Description()})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues, nil
}

// ValidateMap is the strict form of Validate: any violation is an error.
func ValidateMap(m map[string]interface{}) error {
	issues, err := Validate(m)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(issues))
	for _, i := range issues {
		msgs = append(msgs, i.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
