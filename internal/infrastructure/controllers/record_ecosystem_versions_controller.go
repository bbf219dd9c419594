package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// RecordEcosystemVersionsController handles the "record-ecosystem-versions" subcommand.
type RecordEcosystemVersionsController struct {
	command commands.RecordEcosystemVersions
}

// NewRecordEcosystemVersionsController creates a new RecordEcosystemVersionsController.
func NewRecordEcosystemVersionsController(
	command commands.RecordEcosystemVersions,
) *RecordEcosystemVersionsController {
	return &RecordEcosystemVersionsController{command: command}
}

// GetBind returns the Cobra command metadata for the record-ecosystem-versions controller.
func (it *RecordEcosystemVersionsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "record-ecosystem-versions",
		Short: "Report the package manager and language versions in use",
	}
}

// Execute records the ecosystem versions.
func (it *RecordEcosystemVersionsController) Execute(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("versions")
	if raw == "" {
		return errors.New("--versions is required")
	}

	var versions map[string]any
	if err := json.Unmarshal([]byte(raw), &versions); err != nil {
		return fmt.Errorf("invalid --versions JSON: %w", err)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if skipForDryRun(cmd, entities.OperationRecordEcosystemVersions) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, versions)
}

// AddFlags adds the record-ecosystem-versions flags to the given Cobra command.
func (it *RecordEcosystemVersionsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("versions", "", `Versions as a JSON object, e.g. {"package_managers":{"npm":"10.2.0"}}`)
}
