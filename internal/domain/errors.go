package domain

import "errors"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrHostedNotFound   = errors.New("hosted one-pager not found")
	ErrDownloadDisabled = errors.New("download disabled for this one-pager")
	ErrRenderFailed     = errors.New("pdf render failed")
	ErrArtifactNotFound = errors.New("export not found")

	ErrUnsupportedField   = errors.New("unsupported field")
	ErrSuggestUnavailable = errors.New("suggestions are not configured")
	ErrSuggestFailed      = errors.New("failed to generate suggestions")
)
