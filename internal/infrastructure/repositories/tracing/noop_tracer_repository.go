package tracing

import (
	"context"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// NoopTracerRepository discards every span.
type NoopTracerRepository struct{}

var _ repositories.TracerRepository = (*NoopTracerRepository)(nil)

// NewNoopTracerRepository creates a tracer that records nothing.
func NewNoopTracerRepository() *NoopTracerRepository {
	return &NoopTracerRepository{}
}

func (t *NoopTracerRepository) StartSpan(_ context.Context, _ string) repositories.Span {
	return noopSpan{}
}

type noopSpan struct{}

func (noopSpan) SetAttribute(_ string, _ any) {}
func (noopSpan) Finish()                      {}
