package repositories

import "context"

// BaseCommitRepository resolves the commit an update was computed against.
type BaseCommitRepository interface {
	ResolveBaseCommit(ctx context.Context, repoDir string) (string, error)
}
