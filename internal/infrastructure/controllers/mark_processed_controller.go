package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// MarkProcessedController handles the "mark-processed" subcommand.
type MarkProcessedController struct {
	command commands.MarkProcessed
}

// NewMarkProcessedController creates a new MarkProcessedController.
func NewMarkProcessedController(command commands.MarkProcessed) *MarkProcessedController {
	return &MarkProcessedController{command: command}
}

// GetBind returns the Cobra command metadata for the mark-processed controller.
func (it *MarkProcessedController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "mark-processed",
		Short: "Mark the update job as processed",
	}
}

// Execute marks the job as processed.
func (it *MarkProcessedController) Execute(cmd *cobra.Command, _ []string) error {
	baseCommitSHA, _ := cmd.Flags().GetString("base-commit-sha")
	repoDir, _ := cmd.Flags().GetString("repo-dir")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if skipForDryRun(cmd, entities.OperationMarkAsProcessed) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, commands.MarkProcessedOptions{
		BaseCommitSHA: baseCommitSHA,
		RepoDir:       repoDir,
	})
}

// AddFlags adds the mark-processed flags to the given Cobra command.
func (it *MarkProcessedController) AddFlags(cmd *cobra.Command) {
	addBaseCommitFlags(cmd)
}
