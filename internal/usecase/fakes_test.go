package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"onepager-generator/internal/domain"
)

type fakeRenderer struct {
	mu      sync.Mutex
	outputs [][]byte
	errs    []error
	calls   int
	html    string
	width   float64
	height  float64
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string, w, h float64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.html, f.width, f.height = html, w, h
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.outputs) {
		return f.outputs[i], nil
	}
	return []byte("%PDF-1.7 fake"), nil
}

type fakePages struct {
	n   int
	err error
}

func (f fakePages) PageCount([]byte) (int, error) { return f.n, f.err }

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

type fakeStore struct {
	keys    []string
	objects map[string][]byte
	err     error
}

func (s *fakeStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.keys = append(s.keys, key)
	s.objects[key] = data
	return "mem://" + key, nil
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", key, fs.ErrNotExist)
	}
	return b, nil
}

type fakeJobs struct {
	saved []domain.RenderJob
}

func (j *fakeJobs) Save(_ context.Context, job *domain.RenderJob) error {
	j.saved = append(j.saved, *job)
	return nil
}

type fakeHosted map[string]*domain.HostedOnePager

func (f fakeHosted) Get(_ context.Context, id string) (*domain.HostedOnePager, error) {
	if h, ok := f[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHostedNotFound
}

type fakeTranslator struct {
	calls int
	out   map[string]string
	err   error
}

func (t *fakeTranslator) Translate(_ context.Context, _ string, base map[string]string) (map[string]string, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	out := map[string]string{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range t.out {
		out[k] = v
	}
	return out, nil
}

var errBoom = errors.New("boom")

type fakeSuggester struct {
	calls int
	field string
	text  string
	out   []string
	err   error
}

func (f *fakeSuggester) Suggest(_ context.Context, field, currentText string, _ map[string]interface{}) ([]string, error) {
	f.calls++
	f.field, f.text = field, currentText
	return f.out, f.err
}
