//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

var (
	_ repositories.TracerRepository = (*SpyTracerRepository)(nil)
	_ repositories.Span             = (*SpySpan)(nil)
)

// SpySpan records the attributes set on it and how often it was finished.
type SpySpan struct {
	Name       string
	Attributes map[string]any
	Finished   int
}

// SetAttribute records the attribute.
func (s *SpySpan) SetAttribute(key string, value any) {
	s.Attributes[key] = value
}

// Finish counts the call.
func (s *SpySpan) Finish() {
	s.Finished++
}

// SpyTracerRepository hands out SpySpans and keeps them for inspection.
type SpyTracerRepository struct {
	mu    sync.Mutex
	Spans []*SpySpan
}

// StartSpan creates and records a new SpySpan.
func (s *SpyTracerRepository) StartSpan(_ context.Context, name string) repositories.Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	span := &SpySpan{Name: name, Attributes: map[string]any{}}
	s.Spans = append(s.Spans, span)
	return span
}
