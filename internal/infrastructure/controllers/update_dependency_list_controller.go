package controllers

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// UpdateDependencyListController handles the "update-dependency-list" subcommand.
type UpdateDependencyListController struct {
	command commands.UpdateDependencyList
}

// NewUpdateDependencyListController creates a new UpdateDependencyListController.
func NewUpdateDependencyListController(command commands.UpdateDependencyList) *UpdateDependencyListController {
	return &UpdateDependencyListController{command: command}
}

// GetBind returns the Cobra command metadata for the update-dependency-list controller.
func (it *UpdateDependencyListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update-dependency-list",
		Short: "Report the dependencies found in the repository",
	}
}

// Execute reads the dependency list file and reports it.
func (it *UpdateDependencyListController) Execute(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	if inputPath == "" {
		return errors.New("--input is required")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var doc dependencyListDocument
	if readErr := readJSONFile(inputPath, &doc); readErr != nil {
		return readErr
	}

	if skipForDryRun(cmd, entities.OperationUpdateDependencyList) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, commands.UpdateDependencyListOptions{
		Dependencies:    toEntities(doc.Dependencies),
		DependencyFiles: doc.DependencyFiles,
	})
}

// AddFlags adds the update-dependency-list flags to the given Cobra command.
func (it *UpdateDependencyListController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Path to the dependency list JSON file")
}
