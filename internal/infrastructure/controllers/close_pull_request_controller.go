package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// ClosePullRequestController handles the "close-pr" subcommand.
type ClosePullRequestController struct {
	command commands.ClosePullRequest
}

// NewClosePullRequestController creates a new ClosePullRequestController.
func NewClosePullRequestController(command commands.ClosePullRequest) *ClosePullRequestController {
	return &ClosePullRequestController{command: command}
}

// GetBind returns the Cobra command metadata for the close-pr controller.
func (it *ClosePullRequestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "close-pr",
		Short: "Close the pull request for a set of dependencies",
		Long: fmt.Sprintf(`Close the pull request for a set of dependencies.

Without --dependency, the dependencies tracked by the job are used.
Valid reasons: %s.`, strings.Join([]string{
			entities.CloseReasonDependencyRemoved,
			entities.CloseReasonUpToDate,
			entities.CloseReasonUpdateNoLongerPossible,
			entities.CloseReasonDependenciesChanged,
			entities.CloseReasonDependencyGroupEmpty,
		}, ", ")),
	}
}

// Execute closes the pull request.
func (it *ClosePullRequestController) Execute(cmd *cobra.Command, _ []string) error {
	names, _ := cmd.Flags().GetStringSlice("dependency")
	reason, _ := cmd.Flags().GetString("reason")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if skipForDryRun(cmd, entities.OperationClosePullRequest) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, commands.ClosePullRequestOptions{
		DependencyNames: names,
		Reason:          reason,
	})
}

// AddFlags adds the close-pr flags to the given Cobra command.
func (it *ClosePullRequestController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("dependency", nil, "Dependency name (repeatable)")
	cmd.Flags().String("reason", entities.CloseReasonUpToDate, "Why the pull request is closed")
}
