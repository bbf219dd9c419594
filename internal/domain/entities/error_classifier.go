package entities

import "context"

// UnknownErrorType is reported when an error carries no type.
const UnknownErrorType = "unknown_error"

// knownErrorTypes are the error types the orchestration service understands
// as record_update_job_error.
var knownErrorTypes = map[string]struct{}{ //nolint:gochecknoglobals // read-only catalogue
	"all_versions_ignored":                  {},
	"branch_not_found":                      {},
	"dependency_file_not_evaluatable":       {},
	"dependency_file_not_found":             {},
	"dependency_file_not_parseable":         {},
	"dependency_file_not_resolvable":        {},
	"dependency_file_not_supported":         {},
	"git_dependencies_not_reachable":        {},
	"git_dependency_reference_not_found":    {},
	"go_module_path_mismatch":               {},
	"illformed_requirement":                 {},
	"job_repo_not_found":                    {},
	"missing_environment_variable":          {},
	"out_of_disk":                           {},
	"out_of_memory":                         {},
	"path_dependencies_not_reachable":       {},
	"private_source_authentication_failure": {},
	"private_source_bad_response":           {},
	"private_source_certificate_failure":    {},
	"private_source_timed_out":              {},
	"security_update_dependency_not_found":  {},
	"security_update_not_found":             {},
	"security_update_not_needed":            {},
	"security_update_not_possible":          {},
	"server_error":                          {},
	"tool_version_not_supported":            {},
	"transitive_update_not_possible":        {},
	"unsupported_go_version":                {},
	"update_not_possible":                   {},
}

// IsKnownErrorType reports whether the error type belongs to the known catalogue.
func IsKnownErrorType(errorType string) bool {
	_, ok := knownErrorTypes[errorType]
	return ok
}

// EffectiveErrorType returns the given type, or UnknownErrorType when it is absent.
func EffectiveErrorType(errorType *string) string {
	if errorType == nil || *errorType == "" {
		return UnknownErrorType
	}
	return *errorType
}

// ErrorEvent is the observability record mirrored for every reported job error.
type ErrorEvent struct {
	JobID        string
	ErrorType    string
	ErrorDetails map[string]any
}

// ErrorRecorder receives error events independently of the network outcome.
type ErrorRecorder interface {
	RecordUpdateJobError(ctx context.Context, event ErrorEvent)
}

// ErrorClassifier normalizes error types and mirrors every error to an ErrorRecorder.
type ErrorClassifier struct {
	jobID    string
	recorder ErrorRecorder
}

// NewErrorClassifier creates an ErrorClassifier. A nil recorder disables mirroring.
func NewErrorClassifier(jobID string, recorder ErrorRecorder) *ErrorClassifier {
	return &ErrorClassifier{jobID: jobID, recorder: recorder}
}

// Classify resolves the effective error type and records the event before the
// caller dispatches it.
func (c *ErrorClassifier) Classify(
	ctx context.Context,
	errorType *string,
	details map[string]any,
) (string, ErrorEvent) {
	event := ErrorEvent{
		JobID:        c.jobID,
		ErrorType:    EffectiveErrorType(errorType),
		ErrorDetails: details,
	}
	if c.recorder != nil {
		c.recorder.RecordUpdateJobError(ctx, event)
	}
	return event.ErrorType, event
}
