package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// ClosePullRequest is the interface for the close-pr command.
type ClosePullRequest interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ClosePullRequestOptions) error
}

// ClosePullRequestOptions names the pull request to close and why.
type ClosePullRequestOptions struct {
	DependencyNames []string // If empty, the job's tracked dependencies are used
	Reason          string
}

// ClosePullRequestCommand closes the pull request for a set of dependencies.
type ClosePullRequestCommand struct {
	clientFactory infraRepos.APIClientFactory
}

// NewClosePullRequestCommand creates a new ClosePullRequestCommand.
func NewClosePullRequestCommand(clientFactory infraRepos.APIClientFactory) *ClosePullRequestCommand {
	return &ClosePullRequestCommand{clientFactory: clientFactory}
}

// Execute sends close_pull_request. A single name is sent as a string.
func (it *ClosePullRequestCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ClosePullRequestOptions,
) error {
	if opts.Reason == "" {
		return errors.New("a close reason is required")
	}

	names := opts.DependencyNames
	if len(names) == 0 {
		names = settings.Job.Dependencies
	}
	if len(names) == 0 {
		return errors.New("no dependency names to close the pull request for")
	}

	dependencyNames := entities.DependencyNameList(names...)
	if len(names) == 1 {
		dependencyNames = entities.SingleDependencyName(names[0])
	}

	if err := it.clientFactory(settings.Identity()).ClosePullRequest(ctx, dependencyNames, opts.Reason); err != nil {
		return fmt.Errorf("failed to close pull request: %w", err)
	}
	logger.Infof("Closed pull request for %v (%s)", names, opts.Reason)
	return nil
}
