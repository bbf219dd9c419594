package entities

import (
	"encoding/json"
	"net/http"
)

// Operation names, used verbatim as the last segment of the endpoint path.
const (
	OperationCreatePullRequest           = "create_pull_request"
	OperationUpdatePullRequest           = "update_pull_request"
	OperationClosePullRequest            = "close_pull_request"
	OperationRecordUpdateJobError        = "record_update_job_error"
	OperationRecordUpdateJobUnknownError = "record_update_job_unknown_error"
	OperationMarkAsProcessed             = "mark_as_processed"
	OperationUpdateDependencyList        = "update_dependency_list"
	OperationRecordEcosystemVersions     = "record_ecosystem_versions"
	OperationIncrementMetric             = "increment_metric"
)

// Reasons accepted by close_pull_request.
const (
	CloseReasonDependencyRemoved      = "dependency_removed"
	CloseReasonUpToDate               = "up_to_date"
	CloseReasonUpdateNoLongerPossible = "update_no_longer_possible"
	CloseReasonDependenciesChanged    = "dependencies_changed"
	CloseReasonDependencyGroupEmpty   = "dependency_group_empty"
)

// Operation is one job-lifecycle event reported to the orchestration service.
type Operation interface {
	// Name returns the endpoint segment, e.g. "create_pull_request".
	Name() string
	// Method returns the HTTP verb used for the operation.
	Method() string
}

// CreatePullRequest reports a newly created pull request.
type CreatePullRequest struct {
	Change        *ChangeDescriptor
	BaseCommitSHA string
}

// UpdatePullRequest reports that an existing pull request was refreshed.
type UpdatePullRequest struct {
	Change        *ChangeDescriptor
	BaseCommitSHA string
}

// ClosePullRequest asks the service to close the pull request for the given dependencies.
type ClosePullRequest struct {
	DependencyNames DependencyNames
	Reason          string
}

// RecordUpdateJobError records a known job error.
type RecordUpdateJobError struct {
	ErrorType    string
	ErrorDetails map[string]any
}

// RecordUpdateJobUnknownError records an unexpected job error. A nil ErrorType
// is reported as "unknown_error".
type RecordUpdateJobUnknownError struct {
	ErrorType    *string
	ErrorDetails map[string]any
}

// MarkAsProcessed marks the job as processed at the given base commit.
type MarkAsProcessed struct {
	BaseCommitSHA string
}

// UpdateDependencyList reports the dependencies found in the repository.
type UpdateDependencyList struct {
	Dependencies    []Dependency
	DependencyFiles []string
}

// RecordEcosystemVersions reports the package manager and language versions in use.
type RecordEcosystemVersions struct {
	EcosystemVersions map[string]any
}

// IncrementMetric emits a best-effort counter increment.
type IncrementMetric struct {
	Metric string
	Tags   map[string]string
}

func (CreatePullRequest) Name() string           { return OperationCreatePullRequest }
func (UpdatePullRequest) Name() string           { return OperationUpdatePullRequest }
func (ClosePullRequest) Name() string            { return OperationClosePullRequest }
func (RecordUpdateJobError) Name() string        { return OperationRecordUpdateJobError }
func (RecordUpdateJobUnknownError) Name() string { return OperationRecordUpdateJobUnknownError }
func (MarkAsProcessed) Name() string             { return OperationMarkAsProcessed }
func (UpdateDependencyList) Name() string        { return OperationUpdateDependencyList }
func (RecordEcosystemVersions) Name() string     { return OperationRecordEcosystemVersions }
func (IncrementMetric) Name() string             { return OperationIncrementMetric }

func (CreatePullRequest) Method() string           { return http.MethodPost }
func (UpdatePullRequest) Method() string           { return http.MethodPost }
func (ClosePullRequest) Method() string            { return http.MethodPost }
func (RecordUpdateJobError) Method() string        { return http.MethodPost }
func (RecordUpdateJobUnknownError) Method() string { return http.MethodPost }
func (MarkAsProcessed) Method() string             { return http.MethodPatch }
func (UpdateDependencyList) Method() string        { return http.MethodPost }
func (RecordEcosystemVersions) Method() string     { return http.MethodPost }
func (IncrementMetric) Method() string             { return http.MethodPost }

// DependencyNames is either a single dependency name or a list of names.
// A single name is encoded as a JSON string, a list as a JSON array.
type DependencyNames struct {
	names  []string
	single bool
}

// SingleDependencyName wraps one dependency name.
func SingleDependencyName(name string) DependencyNames {
	return DependencyNames{names: []string{name}, single: true}
}

// DependencyNameList wraps a list of dependency names.
func DependencyNameList(names ...string) DependencyNames {
	return DependencyNames{names: append([]string{}, names...)}
}

// Values returns the wrapped names.
func (n DependencyNames) Values() []string {
	return append([]string(nil), n.names...)
}

// MarshalJSON implements json.Marshaler.
func (n DependencyNames) MarshalJSON() ([]byte, error) {
	if n.single && len(n.names) == 1 {
		return json.Marshal(n.names[0])
	}
	if n.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n.names)
}
