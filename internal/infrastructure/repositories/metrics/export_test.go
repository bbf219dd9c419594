package metrics

import "github.com/prometheus/client_golang/prometheus"

// AttemptsTotal exposes the attempts counter for testing.
func (p *PrometheusRecorderRepository) AttemptsTotal() *prometheus.CounterVec { return p.attemptsTotal }

// RetriesTotal exposes the retries counter for testing.
func (p *PrometheusRecorderRepository) RetriesTotal() *prometheus.CounterVec { return p.retriesTotal }

// JobErrorsTotal exposes the job errors counter for testing.
func (p *PrometheusRecorderRepository) JobErrorsTotal() *prometheus.CounterVec {
	return p.jobErrorsTotal
}
