package domain

import (
	"time"

	"github.com/google/uuid"
)

// Render job statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RenderJob records one PDF export of a one-pager.
type RenderJob struct {
	ID        uuid.UUID              `json:"id"`
	UserID    string                 `json:"user_id"`
	Template  string                 `json:"template"`
	Status    string                 `json:"status"`
	Metadata  map[string]interface{} `json:"metadata"`
	Locale    string                 `json:"locale"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// HostedOnePager is a shareable one-pager stored by the profile editor.
type HostedOnePager struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	Template        string                 `json:"template"`
	Data            map[string]interface{} `json:"data"`
	Hints           Hints                  `json:"hints"`
	DownloadEnabled bool                   `json:"download_enabled"`
	CreatedAt       time.Time              `json:"created_at"`
}

// Colors are optional theme overrides supplied by the caller.
type Colors struct {
	Primary string `json:"primary,omitempty"`
	Accent  string `json:"accent,omitempty"`
}

// Hints are display-only inputs; they never change résumé content.
type Hints struct {
	Colors        Colors `json:"colors,omitempty"`
	Locale        string `json:"locale,omitempty"`
	Country       string `json:"country,omitempty"`
	ViewportWidth int    `json:"viewportWidth,omitempty"`
	Mobile        bool   `json:"mobile,omitempty"`
}
