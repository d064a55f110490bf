package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"onepager-generator/internal/logger"
	"onepager-generator/internal/onepager"
	ai "onepager-generator/pkg/ai"
)

// LabelTranslator translates English headings into locale.
type LabelTranslator interface {
	Translate(ctx context.Context, locale string, base map[string]string) (map[string]string, error)
}

type aiTranslator struct {
	client *ai.Client
}

// NewAITranslator translates headings through the ai-service.
func NewAITranslator(c *ai.Client) LabelTranslator {
	return aiTranslator{client: c}
}

func (t aiTranslator) Translate(ctx context.Context, locale string, base map[string]string) (map[string]string, error) {
	return t.client.NewLabelsFormatter(locale).Format(ctx, base)
}

// LabelsResolver picks section headings for a locale: compiled-in
// translations first, then the translator (through the cache), then English.
type LabelsResolver struct {
	translator LabelTranslator
	cache      Cache
	log        *zap.Logger
}

// NewLabelsResolver accepts nil translator and cache.
func NewLabelsResolver(translator LabelTranslator, cache Cache, log *zap.Logger) *LabelsResolver {
	return &LabelsResolver{translator: translator, cache: cache, log: logger.OrNop(log)}
}

// Resolve never fails; anything short of a translation falls back to
// English with a warning. Only the language subtag of a well-formed tag
// reaches the translator or the cache.
func (r *LabelsResolver) Resolve(ctx context.Context, locale string) (onepager.Labels, []string) {
	if strings.TrimSpace(locale) == "" {
		return onepager.DefaultLabels(), nil
	}
	base, ok := onepager.BaseLocale(locale)
	if !ok {
		return onepager.DefaultLabels(), []string{fmt.Sprintf("invalid locale %.32q, using English", locale)}
	}
	if l, ok := onepager.BuiltinLabels(base); ok {
		return l, nil
	}
	if r == nil || r.translator == nil {
		return onepager.DefaultLabels(), []string{fmt.Sprintf("no headings for locale %q, using English", base)}
	}

	if r.cache != nil {
		b, ok, err := r.cache.Get(ctx, base)
		if err != nil {
			r.log.Warn("labels cache lookup failed", zap.String("locale", base), zap.Error(err))
		} else if ok {
			var m map[string]string
			if err := json.Unmarshal(b, &m); err == nil {
				return onepager.LabelsFromMap(m), nil
			}
		}
	}

	m, err := r.translator.Translate(ctx, base, onepager.DefaultLabels().Map())
	if err != nil {
		r.log.Warn("labels translation failed", zap.String("locale", base), zap.Error(err))
		return onepager.DefaultLabels(), []string{fmt.Sprintf("headings for locale %q unavailable, using English", base)}
	}
	labels := onepager.LabelsFromMap(m)

	if r.cache != nil {
		if b, err := json.Marshal(labels.Map()); err == nil {
			if err := r.cache.Set(ctx, base, b); err != nil {
				r.log.Warn("labels cache store failed", zap.String("locale", base), zap.Error(err))
			}
		}
	}
	return labels, nil
}
