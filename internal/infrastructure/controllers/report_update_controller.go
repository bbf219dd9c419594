package controllers

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// ReportUpdateController handles the "report-update" subcommand.
type ReportUpdateController struct {
	command commands.ReportUpdate
}

// NewReportUpdateController creates a new ReportUpdateController.
func NewReportUpdateController(command commands.ReportUpdate) *ReportUpdateController {
	return &ReportUpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the report-update controller.
func (it *ReportUpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "report-update",
		Short: "Report a computed dependency change",
		Long: `Report a computed dependency change to the orchestration service.

Creates a new pull request, or, when the job is refreshing an existing one,
updates it in place. If the refreshed change targets a different set of
dependencies, the existing pull request is closed and a new one created.`,
	}
}

// Execute reads the change file and reports it.
func (it *ReportUpdateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	changePath, _ := cmd.Flags().GetString("change")
	if changePath == "" {
		return errors.New("--change is required")
	}
	baseCommitSHA, _ := cmd.Flags().GetString("base-commit-sha")
	repoDir, _ := cmd.Flags().GetString("repo-dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var doc changeDocument
	if readErr := readJSONFile(changePath, &doc); readErr != nil {
		return readErr
	}

	result, err := it.command.Execute(ctx, settings, commands.ReportUpdateOptions{
		Dependencies:  toEntities(doc.Dependencies),
		UpdatedFiles:  doc.UpdatedFiles,
		Group:         doc.Group,
		BaseCommitSHA: baseCommitSHA,
		RepoDir:       repoDir,
		DryRun:        dryRun,
	})
	if err != nil {
		return err
	}

	logger.Infof("Report complete: %v", result.Operations)
	return nil
}

// AddFlags adds the report-update flags to the given Cobra command.
func (it *ReportUpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("change", "", "Path to the change JSON file")
	addBaseCommitFlags(cmd)
}

func addBaseCommitFlags(cmd *cobra.Command) {
	cmd.Flags().String("base-commit-sha", "", "Commit the update was computed against")
	cmd.Flags().String("repo-dir", ".", "Checkout to read the base commit from when --base-commit-sha is empty")
}
