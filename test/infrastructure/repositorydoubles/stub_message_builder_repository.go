//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

var _ repositories.MessageBuilderRepository = (*StubMessageBuilderRepository)(nil)

// StubMessageBuilderRepository returns a fixed message (or error) and counts builds.
type StubMessageBuilderRepository struct {
	Message *entities.GeneratedMessage
	Err     error

	Calls    int
	Requests []entities.MessageRequest
}

// Build records the request and returns the configured message.
func (s *StubMessageBuilderRepository) Build(req entities.MessageRequest) (*entities.GeneratedMessage, error) {
	s.Calls++
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Message, nil
}
