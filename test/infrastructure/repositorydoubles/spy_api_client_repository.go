//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

var _ repositories.APIClientRepository = (*SpyAPIClientRepository)(nil)

// MetricCall records one IncrementMetric invocation.
type MetricCall struct {
	Metric string
	Tags   map[string]string
}

// SpyAPIClientRepository records every operation it is asked to send.
// SendErrs maps an operation name to the error Send returns for it.
type SpyAPIClientRepository struct {
	mu sync.Mutex

	SendErrs map[string]error

	Sent    []entities.Operation
	Metrics []MetricCall
}

// Send records the operation and returns the configured error for its name.
func (s *SpyAPIClientRepository) Send(_ context.Context, op entities.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Sent = append(s.Sent, op)
	if metric, ok := op.(entities.IncrementMetric); ok {
		s.Metrics = append(s.Metrics, MetricCall{Metric: metric.Metric, Tags: metric.Tags})
		return nil
	}
	return s.SendErrs[op.Name()]
}

// SentNames returns the names of the sent operations in order, metrics excluded.
func (s *SpyAPIClientRepository) SentNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.Sent))
	for _, op := range s.Sent {
		if op.Name() == entities.OperationIncrementMetric {
			continue
		}
		names = append(names, op.Name())
	}
	return names
}

func (s *SpyAPIClientRepository) CreatePullRequest(
	ctx context.Context,
	change *entities.ChangeDescriptor,
	baseCommitSHA string,
) error {
	return s.Send(ctx, entities.CreatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA})
}

func (s *SpyAPIClientRepository) UpdatePullRequest(
	ctx context.Context,
	change *entities.ChangeDescriptor,
	baseCommitSHA string,
) error {
	return s.Send(ctx, entities.UpdatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA})
}

func (s *SpyAPIClientRepository) ClosePullRequest(
	ctx context.Context,
	names entities.DependencyNames,
	reason string,
) error {
	return s.Send(ctx, entities.ClosePullRequest{DependencyNames: names, Reason: reason})
}

func (s *SpyAPIClientRepository) RecordUpdateJobError(
	ctx context.Context,
	errorType string,
	details map[string]any,
) error {
	return s.Send(ctx, entities.RecordUpdateJobError{ErrorType: errorType, ErrorDetails: details})
}

func (s *SpyAPIClientRepository) RecordUpdateJobUnknownError(
	ctx context.Context,
	errorType *string,
	details map[string]any,
) error {
	return s.Send(ctx, entities.RecordUpdateJobUnknownError{ErrorType: errorType, ErrorDetails: details})
}

func (s *SpyAPIClientRepository) MarkJobAsProcessed(ctx context.Context, baseCommitSHA string) error {
	return s.Send(ctx, entities.MarkAsProcessed{BaseCommitSHA: baseCommitSHA})
}

func (s *SpyAPIClientRepository) UpdateDependencyList(
	ctx context.Context,
	deps []entities.Dependency,
	dependencyFiles []string,
) error {
	return s.Send(ctx, entities.UpdateDependencyList{Dependencies: deps, DependencyFiles: dependencyFiles})
}

func (s *SpyAPIClientRepository) RecordEcosystemVersions(ctx context.Context, versions map[string]any) error {
	return s.Send(ctx, entities.RecordEcosystemVersions{EcosystemVersions: versions})
}

func (s *SpyAPIClientRepository) IncrementMetric(ctx context.Context, metric string, tags map[string]string) {
	_ = s.Send(ctx, entities.IncrementMetric{Metric: metric, Tags: tags})
}
