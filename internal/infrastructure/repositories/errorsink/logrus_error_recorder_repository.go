package errorsink

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// LogrusErrorRecorderRepository writes every job error to the log.
type LogrusErrorRecorderRepository struct{}

var _ repositories.ErrorRecorderRepository = (*LogrusErrorRecorderRepository)(nil)

// NewLogrusErrorRecorderRepository creates a LogrusErrorRecorderRepository.
func NewLogrusErrorRecorderRepository() *LogrusErrorRecorderRepository {
	return &LogrusErrorRecorderRepository{}
}

func (r *LogrusErrorRecorderRepository) RecordUpdateJobError(_ context.Context, event entities.ErrorEvent) {
	logger.WithFields(logger.Fields{
		"job_id":        event.JobID,
		"error_type":    event.ErrorType,
		"error_details": event.ErrorDetails,
	}).Errorf("Update job %s failed with %s", event.JobID, event.ErrorType)
}
