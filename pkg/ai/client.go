package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"onepager-generator/internal/logger"
	"onepager-generator/pkg/ai/formatters"
)

// Client talks to the ai-service chat endpoint.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Attempts int
	log      *zap.Logger
}

// NewClient returns a client for baseURL. A zero timeout means 60s.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:  baseURL,
		HTTP:     &http.Client{Timeout: timeout},
		Attempts: 3,
		log:      logger.OrNop(log),
	}
}

// NewLabelsFormatter returns a heading translator for language.
func (c *Client) NewLabelsFormatter(language string) *formatters.LabelsFormatter {
	return formatters.NewLabelsFormatter(c, language)
}

// Suggest returns AI alternatives for the text of an editor field such as
// "summary" or "experience-1". fctx carries the surrounding résumé values
// the prompt refers to.
func (c *Client) Suggest(ctx context.Context, field, currentText string, fctx map[string]interface{}) ([]string, error) {
	kind, ok := formatters.FieldKind(field)
	if !ok {
		return nil, fmt.Errorf("unsupported field %q", field)
	}
	switch kind {
	case formatters.FieldExperienceDescription, formatters.FieldProjectDescription:
		return formatters.NewExperienceFormatter(c).Suggest(ctx, kind, currentText, fctx)
	default:
		return formatters.NewSummaryFormatter(c).Suggest(ctx, kind, currentText, fctx)
	}
}

// Chat sends input to the "auto" agent and returns the raw output text.
func (c *Client) Chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(map[string]interface{}{
		"agent": "auto",
		"input": input,
	})
	if err != nil {
		return "", err
	}

	c.log.Debug("ai chat request", zap.String("url", c.BaseURL+"/v1/chat"), zap.Int("bytes", len(b)))

	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	c.log.Debug("ai chat response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(respBytes)))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", err
	}
	return chatResp.Output, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		c.log.Warn("ai-service request failed", zap.Int("attempt", i+1), zap.Error(err))
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}
