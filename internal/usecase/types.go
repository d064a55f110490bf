package usecase

import (
	"context"

	"github.com/google/uuid"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/onepager"
)

// RenderRequest is one render of caller supplied résumé data. Fit trims
// the normalized document to one-page character budgets before rendering.
type RenderRequest struct {
	UserID   string                 `json:"user_id,omitempty"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
	Hints    domain.Hints           `json:"hints"`
	Fit      bool                   `json:"fit,omitempty"`
}

// RenderResult is an HTML fragment and the warnings raised producing it.
type RenderResult struct {
	HTML     string                `json:"html"`
	Warnings []string              `json:"warnings"`
	Document domain.ResumeDocument `json:"-"`
	Found    bool                  `json:"-"`
}

// PreviewResult is a standalone preview page.
type PreviewResult struct {
	HTML     string          `json:"html"`
	Layout   onepager.Layout `json:"layout"`
	Warnings []string        `json:"warnings"`
}

// ExportResult is a rendered PDF and where it was stored.
type ExportResult struct {
	JobID    uuid.UUID `json:"job_id"`
	PDF      []byte    `json:"-"`
	Filename string    `json:"filename"`
	Paper    string    `json:"paper"`
	Pages    int       `json:"pages"`
	Location string    `json:"location,omitempty"`
	Cached   bool      `json:"cached"`
	Warnings []string  `json:"warnings"`
}

// PDFRenderer prints an HTML document on paper of the given size in inches.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, widthIn, heightIn float64) ([]byte, error)
}

// PageCounter reports how many pages a PDF has.
type PageCounter interface {
	PageCount(pdf []byte) (int, error)
}

// Cache is a byte cache keyed by string. Get reports a miss as ok=false.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// ArtifactStore persists exported files and returns their location. Get
// reports a missing key with an error wrapping fs.ErrNotExist.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// JobsRepo records exports.
type JobsRepo interface {
	Save(ctx context.Context, j *domain.RenderJob) error
}

// HostedSource loads shareable one-pagers. Missing ids return
// domain.ErrHostedNotFound.
type HostedSource interface {
	Get(ctx context.Context, id string) (*domain.HostedOnePager, error)
}

// ContentSuggester proposes alternative text for one editor field.
type ContentSuggester interface {
	Suggest(ctx context.Context, field, currentText string, fieldCtx map[string]interface{}) ([]string, error)
}

// EnhanceRequest asks for suggestions for field, e.g. "summary" or
// "experience-0". Context holds the résumé values the prompt refers to.
type EnhanceRequest struct {
	Field       string                 `json:"field"`
	CurrentText string                 `json:"currentText"`
	Context     map[string]interface{} `json:"context"`
}

// EnhanceResult lists the suggestions for one field.
type EnhanceResult struct {
	Field       string   `json:"field"`
	Suggestions []string `json:"suggestions"`
}
