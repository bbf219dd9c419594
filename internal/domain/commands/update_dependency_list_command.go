package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// UpdateDependencyList is the interface for the update-dependency-list command.
type UpdateDependencyList interface {
	Execute(ctx context.Context, settings *entities.Settings, opts UpdateDependencyListOptions) error
}

// UpdateDependencyListOptions holds the dependencies found and the files they were read from.
type UpdateDependencyListOptions struct {
	Dependencies    []entities.Dependency
	DependencyFiles []string
}

// UpdateDependencyListCommand reports the repository's dependency list.
type UpdateDependencyListCommand struct {
	clientFactory infraRepos.APIClientFactory
}

// NewUpdateDependencyListCommand creates a new UpdateDependencyListCommand.
func NewUpdateDependencyListCommand(clientFactory infraRepos.APIClientFactory) *UpdateDependencyListCommand {
	return &UpdateDependencyListCommand{clientFactory: clientFactory}
}

// Execute sends update_dependency_list.
func (it *UpdateDependencyListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts UpdateDependencyListOptions,
) error {
	client := it.clientFactory(settings.Identity())
	if err := client.UpdateDependencyList(ctx, opts.Dependencies, opts.DependencyFiles); err != nil {
		return fmt.Errorf("failed to update dependency list: %w", err)
	}
	logger.Infof(
		"Reported %d dependencies from %d file(s)",
		len(opts.Dependencies), len(opts.DependencyFiles),
	)
	return nil
}
