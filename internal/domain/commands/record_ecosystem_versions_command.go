package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// RecordEcosystemVersions is the interface for the record-ecosystem-versions command.
type RecordEcosystemVersions interface {
	Execute(ctx context.Context, settings *entities.Settings, versions map[string]any) error
}

// RecordEcosystemVersionsCommand reports the package manager and language versions in use.
type RecordEcosystemVersionsCommand struct {
	clientFactory infraRepos.APIClientFactory
}

// NewRecordEcosystemVersionsCommand creates a new RecordEcosystemVersionsCommand.
func NewRecordEcosystemVersionsCommand(clientFactory infraRepos.APIClientFactory) *RecordEcosystemVersionsCommand {
	return &RecordEcosystemVersionsCommand{clientFactory: clientFactory}
}

// Execute sends record_ecosystem_versions with the versions as given.
func (it *RecordEcosystemVersionsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	versions map[string]any,
) error {
	if len(versions) == 0 {
		return errors.New("no ecosystem versions to record")
	}

	if err := it.clientFactory(settings.Identity()).RecordEcosystemVersions(ctx, versions); err != nil {
		return fmt.Errorf("failed to record ecosystem versions: %w", err)
	}
	return nil
}
