package formatters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	output string
	err    error
	input  string
}

func (s *stubChat) Chat(_ context.Context, input string) (string, error) {
	s.input = input
	return s.output, s.err
}

func TestLabelsFormatter_FillsMissingKeys(t *testing.T) {
	chat := &stubChat{output: "Sure!\n```json\n{\"summary\": \"Riepilogo\", \"skills\": \"  \"}\n```"}
	lf := NewLabelsFormatter(chat, "it")

	out, err := lf.Format(context.Background(), map[string]string{
		"summary": "Summary",
		"skills":  "Skills",
	})
	require.NoError(t, err)
	assert.Equal(t, "Riepilogo", out["summary"])
	assert.Equal(t, "Skills", out["skills"])
	assert.Contains(t, chat.input, "Translate UI labels to it")
	assert.Contains(t, chat.input, "skills, summary")
}

func TestLabelsFormatter_Errors(t *testing.T) {
	_, err := NewLabelsFormatter(&stubChat{output: "no json here"}, "it").
		Format(context.Background(), map[string]string{"summary": "Summary"})
	assert.ErrorContains(t, err, "non-json")

	boom := errors.New("boom")
	_, err = NewLabelsFormatter(&stubChat{err: boom}, "it").
		Format(context.Background(), map[string]string{"summary": "Summary"})
	assert.ErrorIs(t, err, boom)
}
