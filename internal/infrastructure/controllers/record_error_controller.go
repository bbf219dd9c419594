package controllers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/jobreporter/internal/domain/commands"
	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// RecordErrorController handles the "record-error" subcommand.
type RecordErrorController struct {
	command commands.RecordError
}

// NewRecordErrorController creates a new RecordErrorController.
func NewRecordErrorController(command commands.RecordError) *RecordErrorController {
	return &RecordErrorController{command: command}
}

// GetBind returns the Cobra command metadata for the record-error controller.
func (it *RecordErrorController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "record-error",
		Short: "Record a job error",
		Long: `Record a job error with the orchestration service.

Known error types are recorded as job errors; anything else, including a
missing --error-type, is recorded as an unknown error.`,
	}
}

// Execute records the error.
func (it *RecordErrorController) Execute(cmd *cobra.Command, _ []string) error {
	opts := commands.RecordErrorOptions{}
	if cmd.Flags().Changed("error-type") {
		errorType, _ := cmd.Flags().GetString("error-type")
		opts.ErrorType = &errorType
	}

	if rawDetails, _ := cmd.Flags().GetString("details"); rawDetails != "" {
		if err := json.Unmarshal([]byte(rawDetails), &opts.ErrorDetails); err != nil {
			return fmt.Errorf("invalid --details JSON: %w", err)
		}
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if skipForDryRun(cmd, recordErrorOperation(opts.ErrorType)) {
		return nil
	}

	return it.command.Execute(context.Background(), settings, opts)
}

// AddFlags adds the record-error flags to the given Cobra command.
func (it *RecordErrorController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("error-type", "", "Error type (omit to record an unknown error)")
	cmd.Flags().String("details", "", "Error details as a JSON object")
}

func recordErrorOperation(errorType *string) string {
	if errorType != nil && entities.IsKnownErrorType(*errorType) {
		return entities.OperationRecordUpdateJobError
	}
	return entities.OperationRecordUpdateJobUnknownError
}
