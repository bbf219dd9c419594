package repositories

import (
	"context"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
)

// APIClientRepository reports job-lifecycle events to the orchestration service.
// Every method blocks until success, an application error or retry exhaustion,
// except IncrementMetric, which never fails.
type APIClientRepository interface {
	// Send dispatches a single operation.
	Send(ctx context.Context, op entities.Operation) error

	CreatePullRequest(ctx context.Context, change *entities.ChangeDescriptor, baseCommitSHA string) error
	UpdatePullRequest(ctx context.Context, change *entities.ChangeDescriptor, baseCommitSHA string) error
	ClosePullRequest(ctx context.Context, names entities.DependencyNames, reason string) error
	RecordUpdateJobError(ctx context.Context, errorType string, details map[string]any) error
	RecordUpdateJobUnknownError(ctx context.Context, errorType *string, details map[string]any) error
	MarkJobAsProcessed(ctx context.Context, baseCommitSHA string) error
	UpdateDependencyList(ctx context.Context, deps []entities.Dependency, dependencyFiles []string) error
	RecordEcosystemVersions(ctx context.Context, versions map[string]any) error
	IncrementMetric(ctx context.Context, metric string, tags map[string]string)
}
