package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// LogrusTracerRepository writes spans as debug log entries.
type LogrusTracerRepository struct {
	entry *logger.Entry
}

var _ repositories.TracerRepository = (*LogrusTracerRepository)(nil)

// NewLogrusTracerRepository creates a tracer backed by the standard logrus logger.
func NewLogrusTracerRepository() *LogrusTracerRepository {
	return &LogrusTracerRepository{entry: logger.NewEntry(logger.StandardLogger())}
}

// StartSpan opens a span identified by a random id.
func (t *LogrusTracerRepository) StartSpan(_ context.Context, name string) repositories.Span {
	span := &logrusSpan{
		entry:      t.entry,
		id:         uuid.NewString(),
		name:       name,
		start:      time.Now(),
		attributes: logger.Fields{},
	}
	t.entry.WithField("span_id", span.id).Debugf("Started span %s", name)
	return span
}

type logrusSpan struct {
	entry      *logger.Entry
	id         string
	name       string
	start      time.Time
	attributes logger.Fields
	finished   bool
}

func (s *logrusSpan) SetAttribute(key string, value any) {
	s.attributes[key] = value
}

// Finish logs the span once; later calls are ignored.
func (s *logrusSpan) Finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.entry.
		WithFields(s.attributes).
		WithField("span_id", s.id).
		WithField("duration", time.Since(s.start).String()).
		Debugf("Finished span %s", s.name)
}
