package repositories

import "context"

// Span is a unit of traced work. Finish must be called exactly once.
type Span interface {
	SetAttribute(key string, value any)
	Finish()
}

// TracerRepository opens spans for dispatched operations.
type TracerRepository interface {
	StartSpan(ctx context.Context, name string) Span
}
