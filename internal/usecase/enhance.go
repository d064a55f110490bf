package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/metrics"
	"onepager-generator/internal/onepager"
	"onepager-generator/pkg/ai/formatters"
)

// maxSuggestInput bounds the current text forwarded to the suggester.
const maxSuggestInput = 2000

// Enhance asks the suggester for alternatives to one field of the editor.
// Unknown fields are rejected before any suggester call.
func (p *Processor) Enhance(ctx context.Context, req EnhanceRequest) (*EnhanceResult, error) {
	field := strings.TrimSpace(req.Field)
	if field == "" {
		return nil, fmt.Errorf("%w: field is required", domain.ErrUnsupportedField)
	}
	kind, ok := formatters.FieldKind(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedField, field)
	}
	if p.suggester == nil {
		return nil, domain.ErrSuggestUnavailable
	}

	fieldCtx := req.Context
	if fieldCtx == nil {
		fieldCtx = map[string]interface{}{}
	}
	text := onepager.TrimText(strings.TrimSpace(req.CurrentText), maxSuggestInput)

	suggestions, err := p.suggester.Suggest(ctx, field, text, fieldCtx)
	if err != nil {
		metrics.Suggestions.WithLabelValues(kind, "error").Inc()
		p.log.Warn("suggestions failed", zap.String("field", field), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestFailed, err)
	}
	metrics.Suggestions.WithLabelValues(kind, "ok").Inc()
	return &EnhanceResult{Field: field, Suggestions: suggestions}, nil
}
