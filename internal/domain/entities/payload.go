package entities

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Data any `json:"data"`
}

type dependencyPayload struct {
	Name                 string        `json:"name"`
	PreviousVersion      *string       `json:"previous-version"`
	Requirements         []Requirement `json:"requirements"`
	PreviousRequirements []Requirement `json:"previous-requirements"`
	Version              string        `json:"version,omitempty"`
	Removed              bool          `json:"removed,omitempty"`
}

type createPullRequestPayload struct {
	Dependencies           []dependencyPayload `json:"dependencies"`
	UpdatedDependencyFiles []DependencyFile    `json:"updated-dependency-files"`
	BaseCommitSHA          string              `json:"base-commit-sha"`
	CommitMessage          *string             `json:"commit-message,omitempty"`
	PRTitle                *string             `json:"pr-title,omitempty"`
	PRBody                 *string             `json:"pr-body,omitempty"`
	DependencyGroup        *DependencyGroup    `json:"dependency-group,omitempty"`
}

type updatePullRequestPayload struct {
	DependencyNames        []string         `json:"dependency-names"`
	UpdatedDependencyFiles []DependencyFile `json:"updated-dependency-files"`
	BaseCommitSHA          string           `json:"base-commit-sha"`
}

type closePullRequestPayload struct {
	DependencyNames DependencyNames `json:"dependency-names"`
	Reason          string          `json:"reason"`
}

type jobErrorPayload struct {
	ErrorType    string         `json:"error-type"`
	ErrorDetails map[string]any `json:"error-details"`
}

type markAsProcessedPayload struct {
	BaseCommitSHA string `json:"base-commit-sha"`
}

type listedDependencyPayload struct {
	Name         string        `json:"name"`
	Version      *string       `json:"version"`
	Requirements []Requirement `json:"requirements"`
}

type updateDependencyListPayload struct {
	Dependencies    []listedDependencyPayload `json:"dependencies"`
	DependencyFiles []string                  `json:"dependency-files"`
}

type ecosystemVersionsPayload struct {
	EcosystemVersions map[string]any `json:"ecosystem-versions"`
}

type incrementMetricPayload struct {
	Metric string            `json:"metric"`
	Tags   map[string]string `json:"tags"`
}

// EncodeOperation serializes an operation into its {"data": {...}} JSON envelope.
func EncodeOperation(op Operation) ([]byte, error) {
	payload, err := operationPayload(op)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(envelope{Data: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", op.Name(), err)
	}
	return body, nil
}

func operationPayload(op Operation) (any, error) {
	switch typed := op.(type) {
	case CreatePullRequest:
		if typed.Change == nil {
			return nil, fmt.Errorf("%s requires a change", typed.Name())
		}
		return createPullRequestData(typed.Change, typed.BaseCommitSHA), nil
	case UpdatePullRequest:
		if typed.Change == nil {
			return nil, fmt.Errorf("%s requires a change", typed.Name())
		}
		return updatePullRequestPayload{
			DependencyNames:        nonNilStrings(typed.Change.UpdatedDependencyNames()),
			UpdatedDependencyFiles: nonNilFiles(typed.Change.UpdatedDependencyFilesHash()),
			BaseCommitSHA:          typed.BaseCommitSHA,
		}, nil
	case ClosePullRequest:
		return closePullRequestPayload{DependencyNames: typed.DependencyNames, Reason: typed.Reason}, nil
	case RecordUpdateJobError:
		return jobErrorPayload{ErrorType: typed.ErrorType, ErrorDetails: typed.ErrorDetails}, nil
	case RecordUpdateJobUnknownError:
		return jobErrorPayload{
			ErrorType:    EffectiveErrorType(typed.ErrorType),
			ErrorDetails: typed.ErrorDetails,
		}, nil
	case MarkAsProcessed:
		return markAsProcessedPayload{BaseCommitSHA: typed.BaseCommitSHA}, nil
	case UpdateDependencyList:
		return updateDependencyListData(typed), nil
	case RecordEcosystemVersions:
		return ecosystemVersionsPayload{EcosystemVersions: typed.EcosystemVersions}, nil
	case IncrementMetric:
		tags := typed.Tags
		if tags == nil {
			tags = map[string]string{}
		}
		return incrementMetricPayload{Metric: typed.Metric, Tags: tags}, nil
	default:
		return nil, fmt.Errorf("unsupported operation %T", op)
	}
}

func createPullRequestData(change *ChangeDescriptor, baseCommitSHA string) createPullRequestPayload {
	deps := change.UpdatedDependencies()
	payload := createPullRequestPayload{
		Dependencies:           make([]dependencyPayload, 0, len(deps)),
		UpdatedDependencyFiles: nonNilFiles(change.UpdatedDependencyFilesHash()),
		BaseCommitSHA:          baseCommitSHA,
	}

	for _, dep := range deps {
		payload.Dependencies = append(payload.Dependencies, encodeDependency(dep))
	}

	if message := change.PRMessage(); message != nil {
		payload.CommitMessage = &message.CommitMessage
		payload.PRTitle = &message.Title
		payload.PRBody = &message.Body
	}

	// only grouped updates carry the group
	if change.GroupedUpdate() {
		payload.DependencyGroup = change.Group()
	}

	return payload
}

// encodeDependency emits version and removed only when they carry information.
func encodeDependency(dep Dependency) dependencyPayload {
	encoded := dependencyPayload{
		Name:                 dep.Name,
		PreviousVersion:      optionalString(dep.PreviousVersion),
		Requirements:         nonNilRequirements(dep.Requirements),
		PreviousRequirements: nonNilRequirements(dep.PreviousRequirements),
		Removed:              dep.Removed,
	}
	if !dep.Removed {
		encoded.Version = dep.Version
	}
	return encoded
}

func updateDependencyListData(op UpdateDependencyList) updateDependencyListPayload {
	payload := updateDependencyListPayload{
		Dependencies:    make([]listedDependencyPayload, 0, len(op.Dependencies)),
		DependencyFiles: nonNilStrings(op.DependencyFiles),
	}
	for _, dep := range op.Dependencies {
		payload.Dependencies = append(payload.Dependencies, listedDependencyPayload{
			Name:         dep.Name,
			Version:      optionalString(dep.Version),
			Requirements: nonNilRequirements(dep.Requirements),
		})
	}
	return payload
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nonNilRequirements(reqs []Requirement) []Requirement {
	if reqs == nil {
		return []Requirement{}
	}
	return reqs
}

func nonNilFiles(files []DependencyFile) []DependencyFile {
	if files == nil {
		return []DependencyFile{}
	}
	return files
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
