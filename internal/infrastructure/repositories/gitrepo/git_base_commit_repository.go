package gitrepo

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// GitBaseCommitRepository reads the base commit from a local checkout.
type GitBaseCommitRepository struct{}

var _ repositories.BaseCommitRepository = (*GitBaseCommitRepository)(nil)

// NewGitBaseCommitRepository creates a GitBaseCommitRepository.
func NewGitBaseCommitRepository() *GitBaseCommitRepository {
	return &GitBaseCommitRepository{}
}

// ResolveBaseCommit returns the sha HEAD points to. Parent directories are
// searched for the .git directory.
func (r *GitBaseCommitRepository) ResolveBaseCommit(_ context.Context, repoDir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %q: %w", repoDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD in %q: %w", repoDir, err)
	}

	return head.Hash().String(), nil
}
