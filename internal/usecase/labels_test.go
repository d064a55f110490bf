package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLabelsResolver_Builtin(t *testing.T) {
	tr := &fakeTranslator{}
	r := NewLabelsResolver(tr, nil, zaptest.NewLogger(t))

	l, warnings := r.Resolve(context.Background(), "es-MX")
	assert.Empty(t, warnings)
	assert.Equal(t, "Resumen Profesional", l.Summary)
	assert.Zero(t, tr.calls)

	l, warnings = r.Resolve(context.Background(), "")
	assert.Empty(t, warnings)
	assert.Equal(t, "Professional Summary", l.Summary)
}

func TestLabelsResolver_NoTranslator(t *testing.T) {
	r := NewLabelsResolver(nil, nil, nil)

	l, warnings := r.Resolve(context.Background(), "it")
	assert.Equal(t, "Professional Summary", l.Summary)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"it"`)
}

func TestLabelsResolver_TranslatesAndCaches(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"summary": "Sommario"}}
	cache := newMemCache()
	r := NewLabelsResolver(tr, cache, zaptest.NewLogger(t))

	for i := 0; i < 2; i++ {
		l, warnings := r.Resolve(context.Background(), "it_IT")
		assert.Empty(t, warnings)
		assert.Equal(t, "Sommario", l.Summary)
		assert.Equal(t, "Skills", l.Skills)
	}
	assert.Equal(t, 1, tr.calls)
	assert.Contains(t, cache.data, "it")
}

func TestLabelsResolver_TranslatorFailure(t *testing.T) {
	r := NewLabelsResolver(&fakeTranslator{err: errBoom}, newMemCache(), zaptest.NewLogger(t))

	l, warnings := r.Resolve(context.Background(), "it")
	assert.Equal(t, "Professional Summary", l.Summary)
	assert.Len(t, warnings, 1)
}

func TestLabelsResolver_MalformedLocaleNeverTranslated(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"summary": "x"}}
	cache := newMemCache()
	r := NewLabelsResolver(tr, cache, zaptest.NewLogger(t))

	for i := 0; i < 5; i++ {
		l, warnings := r.Resolve(context.Background(), fmt.Sprintf("not a locale %d <script>", i))
		assert.Equal(t, "Professional Summary", l.Summary)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "invalid locale")
	}
	assert.Zero(t, tr.calls)
	assert.Empty(t, cache.data)
}

func TestLabelsResolver_RegionVariantsShareOneTranslation(t *testing.T) {
	tr := &fakeTranslator{out: map[string]string{"summary": "Sommario"}}
	cache := newMemCache()
	r := NewLabelsResolver(tr, cache, zaptest.NewLogger(t))

	for _, loc := range []string{"it", "it-IT", "it_CH", "IT-it"} {
		_, warnings := r.Resolve(context.Background(), loc)
		assert.Empty(t, warnings, loc)
	}
	assert.Equal(t, 1, tr.calls)
	assert.Len(t, cache.data, 1)
}
