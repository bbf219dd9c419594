package entities

import "strings"

// JobIdentity identifies the update job against the orchestration service.
// It is immutable once constructed.
type JobIdentity struct {
	baseURL string
	jobID   string
	token   string
}

// NewJobIdentity creates a JobIdentity. A trailing slash on the base URL is dropped.
func NewJobIdentity(baseURL, jobID, token string) JobIdentity {
	return JobIdentity{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		jobID:   jobID,
		token:   token,
	}
}

// BaseURL returns the orchestration service base URL.
func (j JobIdentity) BaseURL() string { return j.baseURL }

// JobID returns the update job identifier.
func (j JobIdentity) JobID() string { return j.jobID }

// Token returns the job's auth token.
func (j JobIdentity) Token() string { return j.token }

// JobSource describes the repository the job runs against.
type JobSource struct {
	Provider    string `json:"provider"    yaml:"provider"`
	Repo        string `json:"repo"        yaml:"repo"`
	Directory   string `json:"directory"   yaml:"directory"`
	Branch      string `json:"branch"      yaml:"branch"`
	Hostname    string `json:"hostname"    yaml:"hostname"`
	APIEndpoint string `json:"api-endpoint" yaml:"api_endpoint"`
}

// CommitMessageOptions holds the job's commit message configuration.
type CommitMessageOptions struct {
	Prefix            string `json:"prefix"             yaml:"prefix"`
	PrefixDevelopment string `json:"prefix-development" yaml:"prefix_development"`
	IncludeScope      bool   `json:"include-scope"      yaml:"include_scope"`
}

// IgnoreCondition is a user-configured rule that excludes versions from updates.
type IgnoreCondition struct {
	DependencyName     string   `json:"dependency-name"     yaml:"dependency_name"`
	VersionRequirement string   `json:"version-requirement" yaml:"version_requirement"`
	UpdateTypes        []string `json:"update-types"        yaml:"update_types"`
	Source             string   `json:"source"              yaml:"source"`
}

// Credential is an opaque registry/host credential record.
type Credential map[string]any

// Job holds the job metadata consumed by the change descriptor and the
// replacement decision.
type Job struct {
	Source               JobSource
	Credentials          []Credential
	CommitMessageOptions *CommitMessageOptions
	IgnoreConditions     []IgnoreCondition

	// Dependencies lists the dependency names tracked by the open pull request being refreshed.
	Dependencies         []string
	UpdatingAPullRequest bool
}

// ExistingProposal returns the state of the pull request this job may replace.
func (j *Job) ExistingProposal() ExistingProposalState {
	if j == nil {
		return ExistingProposalState{}
	}
	return ExistingProposalState{
		TrackedDependencyNames: j.Dependencies,
		IsUpdateInProgress:     j.UpdatingAPullRequest,
	}
}
