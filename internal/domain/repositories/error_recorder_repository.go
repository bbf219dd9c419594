package repositories

import "github.com/rios0rios0/jobreporter/internal/domain/entities"

// ErrorRecorderRepository is an alias for the entities' ErrorRecorder port.
// It mirrors job errors to an observability sink.
type ErrorRecorderRepository = entities.ErrorRecorder
