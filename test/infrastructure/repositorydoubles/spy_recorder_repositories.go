//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

var (
	_ repositories.ErrorRecorderRepository    = (*SpyErrorRecorderRepository)(nil)
	_ repositories.DispatchRecorderRepository = (*SpyDispatchRecorderRepository)(nil)
)

// SpyErrorRecorderRepository keeps every recorded error event.
// OnRecord, when set, runs inside RecordUpdateJobError.
type SpyErrorRecorderRepository struct {
	mu       sync.Mutex
	Events   []entities.ErrorEvent
	OnRecord func(event entities.ErrorEvent)
}

// RecordUpdateJobError records the event.
func (s *SpyErrorRecorderRepository) RecordUpdateJobError(_ context.Context, event entities.ErrorEvent) {
	s.mu.Lock()
	s.Events = append(s.Events, event)
	s.mu.Unlock()

	if s.OnRecord != nil {
		s.OnRecord(event)
	}
}

// AttemptCall records one ObserveAttempt invocation.
type AttemptCall struct {
	Operation string
	Outcome   string
}

// SpyDispatchRecorderRepository keeps every attempt and retry it is told about.
type SpyDispatchRecorderRepository struct {
	mu       sync.Mutex
	Attempts []AttemptCall
	Retries  []string
}

// ObserveAttempt records the attempt.
func (s *SpyDispatchRecorderRepository) ObserveAttempt(operation, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attempts = append(s.Attempts, AttemptCall{Operation: operation, Outcome: outcome})
}

// IncRetry records the retry.
func (s *SpyDispatchRecorderRepository) IncRetry(operation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Retries = append(s.Retries, operation)
}
