package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	infraRepos "github.com/rios0rios0/jobreporter/internal/infrastructure/repositories"
)

// RecordError is the interface for the record-error command.
type RecordError interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RecordErrorOptions) error
}

// RecordErrorOptions holds the error to report. A nil ErrorType is reported as "unknown_error".
type RecordErrorOptions struct {
	ErrorType    *string
	ErrorDetails map[string]any
}

// RecordErrorCommand routes known error types to record_update_job_error and
// everything else to record_update_job_unknown_error.
type RecordErrorCommand struct {
	clientFactory infraRepos.APIClientFactory
}

// NewRecordErrorCommand creates a new RecordErrorCommand.
func NewRecordErrorCommand(clientFactory infraRepos.APIClientFactory) *RecordErrorCommand {
	return &RecordErrorCommand{clientFactory: clientFactory}
}

// Execute reports the error.
func (it *RecordErrorCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RecordErrorOptions,
) error {
	client := it.clientFactory(settings.Identity())

	if opts.ErrorType != nil && entities.IsKnownErrorType(*opts.ErrorType) {
		logger.Infof("Recording known error %q", *opts.ErrorType)
		if err := client.RecordUpdateJobError(ctx, *opts.ErrorType, opts.ErrorDetails); err != nil {
			return fmt.Errorf("failed to record job error: %w", err)
		}
		return nil
	}

	logger.Infof("Recording unknown error %q", entities.EffectiveErrorType(opts.ErrorType))
	if err := client.RecordUpdateJobUnknownError(ctx, opts.ErrorType, opts.ErrorDetails); err != nil {
		return fmt.Errorf("failed to record unknown job error: %w", err)
	}
	return nil
}
