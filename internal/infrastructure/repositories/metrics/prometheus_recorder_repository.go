// Package metrics provides Prometheus-based recording of dispatch outcomes and job errors.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rios0rios0/jobreporter/internal/domain/entities"
	"github.com/rios0rios0/jobreporter/internal/domain/repositories"
)

// PrometheusRecorderRepository implements the dispatch and error recorders using Prometheus counters.
type PrometheusRecorderRepository struct {
	attemptsTotal  *prometheus.CounterVec
	retriesTotal   *prometheus.CounterVec
	jobErrorsTotal *prometheus.CounterVec
}

var (
	_ repositories.DispatchRecorderRepository = (*PrometheusRecorderRepository)(nil)
	_ repositories.ErrorRecorderRepository    = (*PrometheusRecorderRepository)(nil)
)

// NewPrometheusRecorderRepository creates the counters and registers them on
// the given registerer. A nil registerer leaves them unregistered.
func NewPrometheusRecorderRepository(registerer prometheus.Registerer) *PrometheusRecorderRepository {
	factory := promauto.With(registerer)
	return &PrometheusRecorderRepository{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobreporter_dispatch_attempts_total",
				Help: "Total number of requests sent to the orchestration service by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobreporter_dispatch_retries_total",
				Help: "Total number of retries after transient failures",
			},
			[]string{"operation"},
		),
		jobErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobreporter_job_errors_total",
				Help: "Total number of job errors recorded by error type",
			},
			[]string{"error_type"},
		),
	}
}

// ObserveAttempt records one dispatch attempt.
func (p *PrometheusRecorderRepository) ObserveAttempt(operation, outcome string) {
	p.attemptsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncRetry records a retry after a transient failure.
func (p *PrometheusRecorderRepository) IncRetry(operation string) {
	p.retriesTotal.WithLabelValues(operation).Inc()
}

// RecordUpdateJobError counts a job error by its effective type.
func (p *PrometheusRecorderRepository) RecordUpdateJobError(_ context.Context, event entities.ErrorEvent) {
	p.jobErrorsTotal.WithLabelValues(event.ErrorType).Inc()
}
