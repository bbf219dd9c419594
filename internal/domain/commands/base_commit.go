package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// resolveBaseCommit returns the explicit sha, or reads it from the checkout in repoDir.
func resolveBaseCommit(
	ctx context.Context,
	resolver repositories.BaseCommitRepository,
	baseCommitSHA, repoDir string,
) (string, error) {
	if baseCommitSHA != "" {
		return baseCommitSHA, nil
	}
	if repoDir == "" {
		return "", errors.New("a base commit sha or a repository directory is required")
	}

	sha, err := resolver.ResolveBaseCommit(ctx, repoDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base commit: %w", err)
	}
	logger.Infof("Resolved base commit %s from %s", sha, repoDir)
	return sha, nil
}
