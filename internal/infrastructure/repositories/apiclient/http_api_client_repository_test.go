//go:build unit

package apiclient_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/apiclient"
	"github.com/rios0rios0/jobreporter/internal/infrastructure/repositories/tracing"
	"github.com/rios0rios0/jobreporter/test/domain/entitybuilders"
	"github.com/rios0rios0/jobreporter/test/infrastructure/fakeapi"
	doubles "github.com/rios0rios0/jobreporter/test/infrastructure/repositorydoubles"
)

type sleepRecorder struct {
	delays []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.delays = append(s.delays, d)
}

func newClient(
	t *testing.T,
	server *fakeapi.Server,
	transport http.RoundTripper,
	opts ...apiclient.Option,
) (*apiclient.HTTPAPIClientRepository, *sleepRecorder) {
	t.Helper()

	if transport == nil {
		transport = server.Client().Transport
	}
	sleeper := &sleepRecorder{}
	base := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{Transport: transport}),
		apiclient.WithSleeper(sleeper.sleep),
		apiclient.WithBackoff(func() time.Duration { return 5 * time.Second }),
	}
	identity := entities.NewJobIdentity(server.URL+"/", "42", "secret")
	return apiclient.NewHTTPAPIClientRepository(identity, append(base, opts...)...), sleeper
}

func TestHTTPAPIClientRepositorySend(t *testing.T) {
	t.Parallel()

	t.Run("should post the encoded operation with auth and request id headers", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		client, _ := newClient(t, server, nil)
		op := entities.ClosePullRequest{
			DependencyNames: entities.SingleDependencyName("lodash"),
			Reason:          entities.CloseReasonUpToDate,
		}

		// when
		err := client.Send(context.Background(), op)

		// then
		require.NoError(t, err)
		requests := server.Requests()
		require.Len(t, requests, 1)
		req := requests[0]
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "42", req.JobID)
		assert.Equal(t, "close_pull_request", req.Operation)
		assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.NotEmpty(t, req.Header.Get("X-Request-Id"))
		assert.JSONEq(t, `{"data":{"dependency-names":"lodash","reason":"up_to_date"}}`, string(req.Body))
	})

	t.Run("should use PATCH for mark_as_processed", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		client, _ := newClient(t, server, nil)

		// when
		err := client.MarkJobAsProcessed(context.Background(), "abc123")

		// then
		require.NoError(t, err)
		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodPatch, requests[0].Method)
		assert.Equal(t, "mark_as_processed", requests[0].Operation)
		assert.Equal(t, "abc123", requests[0].Data()["base-commit-sha"])
	})

	t.Run("should succeed on the third attempt after two transient failures", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		flaky := &fakeapi.FlakyTransport{Failures: 2, Next: server.Client().Transport}
		dispatch := &doubles.SpyDispatchRecorderRepository{}
		client, sleeper := newClient(t, server, flaky, apiclient.WithDispatchRecorder(dispatch))

		// when
		err := client.ClosePullRequest(
			context.Background(),
			entities.DependencyNameList("lodash"),
			entities.CloseReasonDependencyRemoved,
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, flaky.Calls())
		assert.Len(t, server.Requests(), 1)
		assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeper.delays)
		assert.Equal(t, []string{"close_pull_request", "close_pull_request"}, dispatch.Retries)
		assert.Equal(t, []doubles.AttemptCall{
			{Operation: "close_pull_request", Outcome: apiclient.OutcomeTransientError},
			{Operation: "close_pull_request", Outcome: apiclient.OutcomeTransientError},
			{Operation: "close_pull_request", Outcome: apiclient.OutcomeSuccess},
		}, dispatch.Attempts)
	})

	t.Run("should give up with a transient error after four attempts", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		flaky := &fakeapi.FlakyTransport{Failures: 10, Next: server.Client().Transport}
		client, sleeper := newClient(t, server, flaky)

		// when
		err := client.MarkJobAsProcessed(context.Background(), "abc123")

		// then
		require.Error(t, err)
		var transientErr *entities.TransientError
		require.ErrorAs(t, err, &transientErr)
		assert.Equal(t, 4, transientErr.Attempts)
		assert.Equal(t, "mark_as_processed", transientErr.Operation)
		assert.Equal(t, 4, flaky.Calls())
		assert.Len(t, sleeper.delays, 3)
		assert.Empty(t, server.Requests())
	})

	t.Run("should not retry when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		client, sleeper := newClient(t, server, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := client.MarkJobAsProcessed(ctx, "abc123")

		// then
		require.ErrorIs(t, err, context.Canceled)
		var transientErr *entities.TransientError
		assert.NotErrorAs(t, err, &transientErr)
		assert.Empty(t, sleeper.delays)
		assert.Empty(t, server.Requests())
	})

	t.Run("should return an API error with the body verbatim and not retry", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		server.Respond("create_pull_request", fakeapi.Response{
			Status: http.StatusUnprocessableEntity,
			Body:   `{"errors":[{"detail":"bad"}]}`,
		})
		client, sleeper := newClient(t, server, nil)
		change := entitybuilders.NewChangeBuilder().BuildChange()

		// when
		err := client.CreatePullRequest(context.Background(), change, "abc123")

		// then
		require.Error(t, err)
		var apiErr *entities.ApiError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, `{"errors":[{"detail":"bad"}]}`, apiErr.Body)
		assert.Equal(t, "create_pull_request", apiErr.Operation)
		assert.Len(t, server.Requests(), 1)
		assert.Empty(t, sleeper.delays)
	})

	t.Run("should swallow a failed metric after a single attempt", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		server.Respond("increment_metric", fakeapi.Response{Status: http.StatusInternalServerError, Body: "down"})
		client, sleeper := newClient(t, server, nil)

		// when
		err := client.Send(context.Background(), entities.IncrementMetric{
			Metric: "updater.started",
			Tags:   map[string]string{"package_manager": "npm"},
		})

		// then
		require.NoError(t, err)
		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.JSONEq(t,
			`{"data":{"metric":"updater.started","tags":{"package_manager":"npm"}}}`,
			string(requests[0].Body),
		)
		assert.Empty(t, sleeper.delays)
	})

	t.Run("should not retry a metric on a transient failure", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		flaky := &fakeapi.FlakyTransport{Failures: 1, Next: server.Client().Transport}
		client, sleeper := newClient(t, server, flaky)

		// when
		client.IncrementMetric(context.Background(), "updater.started", nil)

		// then
		assert.Equal(t, 1, flaky.Calls())
		assert.Empty(t, sleeper.delays)
	})

	t.Run("should record an unknown error before sending it", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		requestsAtRecord := -1
		recorder := &doubles.SpyErrorRecorderRepository{OnRecord: func(_ entities.ErrorEvent) {
			requestsAtRecord = len(server.Requests())
		}}
		client, _ := newClient(t, server, nil, apiclient.WithErrorRecorder(recorder))
		details := map[string]any{"message": "boom"}

		// when
		err := client.RecordUpdateJobUnknownError(context.Background(), nil, details)

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, requestsAtRecord)
		require.Len(t, recorder.Events, 1)
		assert.Equal(t, entities.ErrorEvent{JobID: "42", ErrorType: "unknown_error", ErrorDetails: details}, recorder.Events[0])
		requests := server.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "record_update_job_unknown_error", requests[0].Operation)
		assert.Equal(t, "unknown_error", requests[0].Data()["error-type"])
	})

	t.Run("should record the error even when sending fails", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		server.Respond("record_update_job_error", fakeapi.Response{Status: http.StatusBadRequest})
		recorder := &doubles.SpyErrorRecorderRepository{}
		client, _ := newClient(t, server, nil, apiclient.WithErrorRecorder(recorder))

		// when
		err := client.RecordUpdateJobError(context.Background(), "out_of_disk", nil)

		// then
		require.Error(t, err)
		require.Len(t, recorder.Events, 1)
		assert.Equal(t, "out_of_disk", recorder.Events[0].ErrorType)
	})

	t.Run("should open and finish one span per call with operation attributes", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		tracer := &doubles.SpyTracerRepository{}
		client, _ := newClient(t, server, nil, apiclient.WithTracer(tracer))

		// when
		err := client.ClosePullRequest(
			context.Background(),
			entities.DependencyNameList("lodash", "react"),
			entities.CloseReasonUpToDate,
		)

		// then
		require.NoError(t, err)
		require.Len(t, tracer.Spans, 1)
		span := tracer.Spans[0]
		assert.Equal(t, "close_pull_request", span.Name)
		assert.Equal(t, 1, span.Finished)
		assert.Equal(t, "42", span.Attributes[tracing.AttributeJobID])
		assert.Equal(t, "lodash, react", span.Attributes[tracing.AttributeDependencyNames])
		assert.Equal(t, "up_to_date", span.Attributes[tracing.AttributeCloseReason])
	})

	t.Run("should finish the span when the call fails", func(t *testing.T) {
		t.Parallel()

		// given
		server := fakeapi.NewServer()
		t.Cleanup(server.Close)
		server.Respond("mark_as_processed", fakeapi.Response{Status: http.StatusNotFound})
		tracer := &doubles.SpyTracerRepository{}
		client, _ := newClient(t, server, nil, apiclient.WithTracer(tracer))

		// when
		err := client.MarkJobAsProcessed(context.Background(), "sha")

		// then
		require.Error(t, err)
		require.Len(t, tracer.Spans, 1)
		assert.Equal(t, 1, tracer.Spans[0].Finished)
		assert.Equal(t, "sha", tracer.Spans[0].Attributes[tracing.AttributeBaseCommitSHA])
	})
}

func closedPortURL(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return "http://" + addr
}

//nolint:paralleltest // uses t.Setenv
func TestHTTPAPIClientRepositoryThroughProxy(t *testing.T) {
	t.Run("should retry when the proxy refuses the connection", func(t *testing.T) {
		// given
		t.Setenv("HTTPS_PROXY", closedPortURL(t))
		sleeper := &sleepRecorder{}
		dispatch := &doubles.SpyDispatchRecorderRepository{}
		identity := entities.NewJobIdentity("http://orchestrator.example", "42", "secret")
		client := apiclient.NewHTTPAPIClientRepository(
			identity,
			apiclient.WithSleeper(sleeper.sleep),
			apiclient.WithBackoff(func() time.Duration { return 5 * time.Second }),
			apiclient.WithDispatchRecorder(dispatch),
		)

		// when
		err := client.MarkJobAsProcessed(context.Background(), "abc123")

		// then
		var transientErr *entities.TransientError
		require.ErrorAs(t, err, &transientErr)
		assert.Equal(t, 4, transientErr.Attempts)
		assert.Len(t, sleeper.delays, 3)
		assert.Equal(t, []string{"mark_as_processed", "mark_as_processed", "mark_as_processed"}, dispatch.Retries)
	})
}

func TestRandomBackoff(t *testing.T) {
	t.Parallel()

	t.Run("should spread delays uniformly between three and ten seconds", func(t *testing.T) {
		t.Parallel()

		// given
		const samples = 10000
		lowest, highest := time.Duration(1<<62), time.Duration(0)

		// when
		for range samples {
			delay := apiclient.RandomBackoff()
			require.GreaterOrEqual(t, delay, 3*time.Second)
			require.Less(t, delay, 10*time.Second)
			lowest = min(lowest, delay)
			highest = max(highest, delay)
		}

		// then
		assert.Less(t, lowest, 3500*time.Millisecond)
		assert.Greater(t, highest, 9500*time.Millisecond)
	})
}
