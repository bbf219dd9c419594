//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

var _ repositories.BaseCommitRepository = (*StubBaseCommitRepository)(nil)

// StubBaseCommitRepository returns a fixed sha and records the directories asked for.
type StubBaseCommitRepository struct {
	SHA string
	Err error

	RequestedDirs []string
}

// ResolveBaseCommit returns the configured sha or error.
func (s *StubBaseCommitRepository) ResolveBaseCommit(_ context.Context, repoDir string) (string, error) {
	s.RequestedDirs = append(s.RequestedDirs, repoDir)
	if s.Err != nil {
		return "", s.Err
	}
	return s.SHA, nil
}
