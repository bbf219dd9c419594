package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/tracing"
)

const (
	maxRetries = 3
	minBackoff = 3 * time.Second
	maxBackoff = 10 * time.Second
)

// Outcomes reported to the dispatch recorder.
const (
	OutcomeSuccess        = "success"
	OutcomeAPIError       = "api_error"
	OutcomeTransientError = "transient_error"
)

var _ repositories.APIClientRepository = (*HTTPAPIClientRepository)(nil)

// HTTPAPIClientRepository delivers job-lifecycle operations to the orchestration service.
type HTTPAPIClientRepository struct {
	identity   entities.JobIdentity
	httpClient *http.Client
	tracer     repositories.TracerRepository
	recorder   repositories.DispatchRecorderRepository
	classifier *entities.ErrorClassifier
	sleep      func(time.Duration)
	backoff    func() time.Duration
}

// Option customizes an HTTPAPIClientRepository.
type Option func(*HTTPAPIClientRepository)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(it *HTTPAPIClientRepository) { it.httpClient = client }
}

// WithTracer sets the tracer used to open a span per call.
func WithTracer(tracer repositories.TracerRepository) Option {
	return func(it *HTTPAPIClientRepository) { it.tracer = tracer }
}

// WithDispatchRecorder sets the recorder notified of every attempt.
func WithDispatchRecorder(recorder repositories.DispatchRecorderRepository) Option {
	return func(it *HTTPAPIClientRepository) { it.recorder = recorder }
}

// WithErrorRecorder sets the sink job errors are mirrored to before dispatch.
func WithErrorRecorder(recorder repositories.ErrorRecorderRepository) Option {
	return func(it *HTTPAPIClientRepository) {
		it.classifier = entities.NewErrorClassifier(it.identity.JobID(), recorder)
	}
}

// WithSleeper replaces the blocking sleep used between retries.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(it *HTTPAPIClientRepository) { it.sleep = sleep }
}

// WithBackoff replaces the random delay picked between retries.
func WithBackoff(backoff func() time.Duration) Option {
	return func(it *HTTPAPIClientRepository) { it.backoff = backoff }
}

// NewHTTPAPIClientRepository creates a client for the given job.
func NewHTTPAPIClientRepository(
	identity entities.JobIdentity,
	opts ...Option,
) *HTTPAPIClientRepository {
	it := &HTTPAPIClientRepository{
		identity:   identity,
		httpClient: newHTTPClient(identity.BaseURL()),
		tracer:     tracing.NewNoopTracerRepository(),
		classifier: entities.NewErrorClassifier(identity.JobID(), nil),
		sleep:      time.Sleep,
		backoff:    randomBackoff,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func newHTTPClient(baseURL string) *http.Client {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &http.Client{}
	}
	cloned := transport.Clone()
	cloned.Proxy = ProxyFunc(baseURL)
	return &http.Client{Transport: cloned}
}

// randomBackoff picks a delay uniformly distributed in [3s, 10s).
func randomBackoff() time.Duration {
	return minBackoff + time.Duration(rand.Int64N(int64(maxBackoff-minBackoff))) //nolint:gosec // jitter only
}

// Send dispatches one operation. Transient failures are retried up to three
// times; application errors are returned immediately. increment_metric never fails.
func (it *HTTPAPIClientRepository) Send(ctx context.Context, op entities.Operation) error {
	span := it.tracer.StartSpan(ctx, op.Name())
	defer span.Finish()
	it.tagSpan(span, op)

	body, err := entities.EncodeOperation(op)
	if err != nil {
		return err
	}

	if metric, ok := op.(entities.IncrementMetric); ok {
		if sendErr := it.doRequest(ctx, op, body); sendErr != nil {
			logger.Debugf("Unable to report metric '%s': %v", metric.Metric, sendErr)
		}
		return nil
	}

	return it.sendWithRetry(ctx, op, body)
}

func (it *HTTPAPIClientRepository) sendWithRetry(
	ctx context.Context,
	op entities.Operation,
	body []byte,
) error {
	for attempt := 1; ; attempt++ {
		err := it.doRequest(ctx, op, body)
		if err == nil {
			return nil
		}

		var transientErr *entities.TransientError
		if !errors.As(err, &transientErr) {
			return err
		}
		transientErr.Attempts = attempt

		if attempt > maxRetries {
			return transientErr
		}

		delay := it.backoff()
		logger.Warnf(
			"Transient failure on %s (attempt %d of %d), retrying in %s: %v",
			op.Name(), attempt, maxRetries+1, delay.Round(time.Millisecond), transientErr.Cause,
		)
		if it.recorder != nil {
			it.recorder.IncRetry(op.Name())
		}
		it.sleep(delay)
	}
}

func (it *HTTPAPIClientRepository) doRequest(
	ctx context.Context,
	op entities.Operation,
	body []byte,
) error {
	endpoint := fmt.Sprintf(
		"%s/update_jobs/%s/%s",
		it.identity.BaseURL(), url.PathEscape(it.identity.JobID()), op.Name(),
	)

	req, err := http.NewRequestWithContext(ctx, op.Method(), endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+it.identity.Token())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := it.httpClient.Do(req)
	if err != nil {
		if isTransient(err) {
			it.observe(op, OutcomeTransientError)
			return &entities.TransientError{Operation: op.Name(), Cause: err}
		}
		return fmt.Errorf("request %s failed: %w", op.Name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		it.observe(op, OutcomeAPIError)
		return &entities.ApiError{
			Operation:  op.Name(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	it.observe(op, OutcomeSuccess)
	logger.Debugf("Reported %s for job %s (status %d)", op.Name(), it.identity.JobID(), resp.StatusCode)
	return nil
}

func (it *HTTPAPIClientRepository) observe(op entities.Operation, outcome string) {
	if it.recorder != nil {
		it.recorder.ObserveAttempt(op.Name(), outcome)
	}
}

// tagSpan attaches the job id and the operation-specific attributes.
func (it *HTTPAPIClientRepository) tagSpan(span repositories.Span, op entities.Operation) {
	span.SetAttribute(tracing.AttributeJobID, it.identity.JobID())

	switch typed := op.(type) {
	case entities.CreatePullRequest:
		span.SetAttribute(tracing.AttributeBaseCommitSHA, typed.BaseCommitSHA)
		if typed.Change != nil {
			span.SetAttribute(tracing.AttributeDependencyNames, typed.Change.Humanized())
		}
	case entities.UpdatePullRequest:
		span.SetAttribute(tracing.AttributeBaseCommitSHA, typed.BaseCommitSHA)
		if typed.Change != nil {
			span.SetAttribute(tracing.AttributeDependencyNames, typed.Change.Humanized())
		}
	case entities.ClosePullRequest:
		span.SetAttribute(tracing.AttributeDependencyNames, strings.Join(typed.DependencyNames.Values(), ", "))
		span.SetAttribute(tracing.AttributeCloseReason, typed.Reason)
	case entities.RecordUpdateJobError:
		span.SetAttribute(tracing.AttributeErrorType, typed.ErrorType)
	case entities.RecordUpdateJobUnknownError:
		span.SetAttribute(tracing.AttributeErrorType, entities.EffectiveErrorType(typed.ErrorType))
	case entities.MarkAsProcessed:
		span.SetAttribute(tracing.AttributeBaseCommitSHA, typed.BaseCommitSHA)
	case entities.IncrementMetric:
		span.SetAttribute(tracing.AttributeMetric, typed.Metric)
		keys := make([]string, 0, len(typed.Tags))
		for key := range typed.Tags {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			span.SetAttribute(tracing.AttributeMetricTagPrefix+key, typed.Tags[key])
		}
	}
}

// CreatePullRequest reports a newly created pull request.
func (it *HTTPAPIClientRepository) CreatePullRequest(
	ctx context.Context,
	change *entities.ChangeDescriptor,
	baseCommitSHA string,
) error {
	return it.Send(ctx, entities.CreatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA})
}

// UpdatePullRequest reports a refreshed pull request.
func (it *HTTPAPIClientRepository) UpdatePullRequest(
	ctx context.Context,
	change *entities.ChangeDescriptor,
	baseCommitSHA string,
) error {
	return it.Send(ctx, entities.UpdatePullRequest{Change: change, BaseCommitSHA: baseCommitSHA})
}

// ClosePullRequest asks the service to close the pull request for the given dependencies.
func (it *HTTPAPIClientRepository) ClosePullRequest(
	ctx context.Context,
	names entities.DependencyNames,
	reason string,
) error {
	return it.Send(ctx, entities.ClosePullRequest{DependencyNames: names, Reason: reason})
}

// RecordUpdateJobError mirrors the error to the error recorder, then reports it.
func (it *HTTPAPIClientRepository) RecordUpdateJobError(
	ctx context.Context,
	errorType string,
	details map[string]any,
) error {
	effective, _ := it.classifier.Classify(ctx, &errorType, details)
	return it.Send(ctx, entities.RecordUpdateJobError{ErrorType: effective, ErrorDetails: details})
}

// RecordUpdateJobUnknownError mirrors the error to the error recorder, then
// reports it. A nil error type is reported as "unknown_error".
func (it *HTTPAPIClientRepository) RecordUpdateJobUnknownError(
	ctx context.Context,
	errorType *string,
	details map[string]any,
) error {
	effective, _ := it.classifier.Classify(ctx, errorType, details)
	return it.Send(ctx, entities.RecordUpdateJobUnknownError{ErrorType: &effective, ErrorDetails: details})
}

// MarkJobAsProcessed marks the job as processed at the given base commit.
func (it *HTTPAPIClientRepository) MarkJobAsProcessed(ctx context.Context, baseCommitSHA string) error {
	return it.Send(ctx, entities.MarkAsProcessed{BaseCommitSHA: baseCommitSHA})
}

// UpdateDependencyList reports the dependencies found in the repository.
func (it *HTTPAPIClientRepository) UpdateDependencyList(
	ctx context.Context,
	deps []entities.Dependency,
	dependencyFiles []string,
) error {
	return it.Send(ctx, entities.UpdateDependencyList{Dependencies: deps, DependencyFiles: dependencyFiles})
}

// RecordEcosystemVersions reports the ecosystem versions in use.
func (it *HTTPAPIClientRepository) RecordEcosystemVersions(
	ctx context.Context,
	versions map[string]any,
) error {
	return it.Send(ctx, entities.RecordEcosystemVersions{EcosystemVersions: versions})
}

// IncrementMetric emits a counter increment. Failures are only logged at debug level.
func (it *HTTPAPIClientRepository) IncrementMetric(
	ctx context.Context,
	metric string,
	tags map[string]string,
) {
	_ = it.Send(ctx, entities.IncrementMetric{Metric: metric, Tags: tags})
}
