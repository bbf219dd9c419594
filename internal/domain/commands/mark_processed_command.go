package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// MarkProcessed is the interface for the mark-processed command.
type MarkProcessed interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MarkProcessedOptions) error
}

// MarkProcessedOptions holds the base commit, given explicitly or read from RepoDir.
type MarkProcessedOptions struct {
	BaseCommitSHA string
	RepoDir       string
}

// MarkProcessedCommand marks the job as processed.
type MarkProcessedCommand struct {
	clientFactory infraRepos.APIClientFactory
	baseCommit    repositories.BaseCommitRepository
}

// NewMarkProcessedCommand creates a new MarkProcessedCommand.
func NewMarkProcessedCommand(
	clientFactory infraRepos.APIClientFactory,
	baseCommit repositories.BaseCommitRepository,
) *MarkProcessedCommand {
	return &MarkProcessedCommand{clientFactory: clientFactory, baseCommit: baseCommit}
}

// Execute sends mark_as_processed.
func (it *MarkProcessedCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts MarkProcessedOptions,
) error {
	sha, err := resolveBaseCommit(ctx, it.baseCommit, opts.BaseCommitSHA, opts.RepoDir)
	if err != nil {
		return err
	}

	if markErr := it.clientFactory(settings.Identity()).MarkJobAsProcessed(ctx, sha); markErr != nil {
		return fmt.Errorf("failed to mark job as processed: %w", markErr)
	}
	logger.Infof("Marked job %s as processed at %s", settings.API.JobID, sha)
	return nil
}
