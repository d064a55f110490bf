package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"onepager-generator/internal/domain"
	"onepager-generator/internal/onepager"
	"onepager-generator/internal/usecase"
)

type stubPDF struct{ err error }

func (s stubPDF) RenderHTMLToPDF(context.Context, string, float64, float64) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7 stub"), nil
}

type stubHosted map[string]*domain.HostedOnePager

func (s stubHosted) Get(_ context.Context, id string) (*domain.HostedOnePager, error) {
	if h, ok := s[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHostedNotFound
}

type memStore map[string][]byte

func (m memStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m[key] = data
	return "mem://" + key, nil
}

func (m memStore) Get(_ context.Context, key string) ([]byte, error) {
	if b, ok := m[key]; ok {
		return b, nil
	}
	return nil, fs.ErrNotExist
}

type stubSuggester struct{}

func (stubSuggester) Suggest(_ context.Context, field, _ string, _ map[string]interface{}) ([]string, error) {
	return []string{field + " one", field + " two"}, nil
}

const body = `{"template":"classic","data":{"personal":{"name":"Jane Doe","jobTitle":"Engineer"},"experience":[{"company":"Acme","description":"- Built X"}]},"hints":{"country":"US"}}`

func newTestApp(t *testing.T, pdfErr error) *fiber.App {
	t.Helper()
	log := zaptest.NewLogger(t)
	data := map[string]interface{}{"personal": map[string]interface{}{"name": "Jane Doe"}}
	p := usecase.NewProcessor(usecase.Deps{
		Registry:  onepager.MustRegistry(log),
		PDF:       stubPDF{err: pdfErr},
		Store:     memStore{},
		Suggester: stubSuggester{},
		Hosted: stubHosted{
			"open":   {ID: "open", Template: "modern", Data: data, DownloadEnabled: true},
			"closed": {ID: "closed", Template: "modern", Data: data},
		},
		Attempts: 1,
		Backoff:  -1,
		Logger:   log,
	})
	return NewApp(NewHandler(p, log), log)
}

func do(t *testing.T, app *fiber.App, method, path, payload string) (int, string, map[string][]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b), resp.Header
}

func TestHealthAndTemplates(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "GET", "/healthz", "")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"status":"ok"}`, b)

	status, b, _ = do(t, app, "GET", "/templates", "")
	assert.Equal(t, 200, status)
	var out struct {
		Templates []onepager.Descriptor `json:"templates"`
	}
	require.NoError(t, json.Unmarshal([]byte(b), &out))
	assert.Len(t, out.Templates, 15)

	status, b, _ = do(t, app, "GET", "/metrics", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, b, "go_goroutines")
}

func TestRenderEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "POST", "/render", body)
	require.Equal(t, 200, status)
	var out struct {
		HTML     string   `json:"html"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(b), &out))
	assert.Contains(t, out.HTML, "Jane Doe")
	assert.Contains(t, out.HTML, "Built X")
	assert.NotNil(t, out.Warnings)
}

func TestRenderEndpoint_UnknownTemplateIsPlaceholder(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "POST", "/render", `{"template":"nope","data":{}}`)
	require.Equal(t, 200, status)
	assert.Contains(t, b, "Template not found")
}

func TestRenderEndpoint_InvalidPayload(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "POST", "/render", `{"template":`)
	assert.Equal(t, 400, status)
	assert.JSONEq(t, `{"error":"invalid payload"}`, b)
}

func TestPreviewEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, h := do(t, app, "POST", "/preview", body)
	require.Equal(t, 200, status)
	assert.Contains(t, h["Content-Type"][0], "text/html")
	assert.Equal(t, "page", h["X-Onepager-Layout"][0])
	assert.Contains(t, b, "onepager-watermark")
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, h := do(t, app, "POST", "/export", body)
	require.Equal(t, 200, status)
	assert.Equal(t, "application/pdf", h["Content-Type"][0])
	assert.Contains(t, h["Content-Disposition"][0], "Jane_Doe_Resume.pdf")
	assert.True(t, strings.HasPrefix(b, "%PDF"))
}

func TestExportEndpoint_Errors(t *testing.T) {
	app := newTestApp(t, nil)
	status, b, _ := do(t, app, "POST", "/export", `{"template":"nope","data":{}}`)
	assert.Equal(t, 404, status)
	assert.Contains(t, b, "template not found")

	app = newTestApp(t, errors.New("chrome crashed"))
	status, _, _ = do(t, app, "POST", "/export", body)
	assert.Equal(t, 502, status)
}

func TestTemplateEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "GET", "/templates/modern", "")
	require.Equal(t, 200, status)
	var d onepager.Descriptor
	require.NoError(t, json.Unmarshal([]byte(b), &d))
	assert.Equal(t, "modern", d.Key)
	assert.Equal(t, 2, d.Columns)

	status, _, _ = do(t, app, "GET", "/templates/nope", "")
	assert.Equal(t, 404, status)
}

func TestDownloadEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, _, h := do(t, app, "POST", "/export", body)
	require.Equal(t, 200, status)
	id := h["X-Job-Id"][0]

	status, b, h := do(t, app, "GET", "/exports/"+id, "")
	require.Equal(t, 200, status)
	assert.Equal(t, "application/pdf", h["Content-Type"][0])
	assert.True(t, strings.HasPrefix(b, "%PDF"))

	status, _, _ = do(t, app, "GET", "/exports/"+id+"?user_id=someone-else", "")
	assert.Equal(t, 404, status)
	status, _, _ = do(t, app, "GET", "/exports/not-a-job", "")
	assert.Equal(t, 404, status)
}

func TestEnhanceEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, b, _ := do(t, app, "POST", "/enhance", `{"field":"summary","currentText":"Builds things.","context":{"jobTitle":"Engineer"}}`)
	require.Equal(t, 200, status)
	var res usecase.EnhanceResult
	require.NoError(t, json.Unmarshal([]byte(b), &res))
	assert.Equal(t, "summary", res.Field)
	assert.Equal(t, []string{"summary one", "summary two"}, res.Suggestions)

	status, _, _ = do(t, app, "POST", "/enhance", `{"field":"email"}`)
	assert.Equal(t, 400, status)
	status, _, _ = do(t, app, "POST", "/enhance", `{}`)
	assert.Equal(t, 400, status)
	status, _, _ = do(t, app, "POST", "/enhance", `not json`)
	assert.Equal(t, 400, status)
}

func TestHostedEndpoints(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		path   string
		status int
	}{
		{"/hosted/open", 200},
		{"/hosted/closed", 200},
		{"/hosted/missing", 404},
		{"/hosted/open/pdf", 200},
		{"/hosted/closed/pdf", 403},
		{"/hosted/missing/pdf", 404},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, _, _ := do(t, app, "GET", tt.path, "")
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, 404, ErrorStatus(fmt.Errorf("x: %w", domain.ErrTemplateNotFound)))
	assert.Equal(t, 404, ErrorStatus(domain.ErrHostedNotFound))
	assert.Equal(t, 403, ErrorStatus(domain.ErrDownloadDisabled))
	assert.Equal(t, 502, ErrorStatus(fmt.Errorf("%w: boom", domain.ErrRenderFailed)))
	assert.Equal(t, 404, ErrorStatus(domain.ErrArtifactNotFound))
	assert.Equal(t, 400, ErrorStatus(fmt.Errorf("%w: %q", domain.ErrUnsupportedField, "x")))
	assert.Equal(t, 503, ErrorStatus(domain.ErrSuggestUnavailable))
	assert.Equal(t, 502, ErrorStatus(fmt.Errorf("%w: boom", domain.ErrSuggestFailed)))
	assert.Equal(t, 400, ErrorStatus(fiber.NewError(400, "bad")))
	assert.Equal(t, 500, ErrorStatus(errors.New("other")))
}
