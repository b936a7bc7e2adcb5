package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

var (
	// Pipeline stage outcomes (stage=validate/safe/encode/fees/submit/register)
	PipelineStageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "pipeline_stage_total",
		Help:      "Job creation pipeline stage outcomes",
	}, []string{"stage", "status"})

	// Gas limit choice (strategy=estimated/unbounded)
	GasEstimationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "gas_estimation_total",
		Help:      "Transactions sent per gas strategy",
	}, []string{"strategy"})

	BalanceTopUpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "balance_topups_total",
		Help:      "Automatic gas registry deposits",
	}, []string{"status"})

	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "backend_requests_total",
		Help:      "Requests made to the TriggerX API",
	}, []string{"endpoint", "status"})

	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "backend_request_duration_seconds",
		Help:      "TriggerX API request latency",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	JobsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "triggerx",
		Subsystem: "sdk",
		Name:      "jobs_created_total",
		Help:      "Jobs created end to end, by task definition",
	}, []string{"task_definition"})
)

func StageStatus(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// ObserveBackendRequest records one API call
func ObserveBackendRequest(endpoint string, start time.Time, err error) {
	BackendRequestsTotal.WithLabelValues(endpoint, StageStatus(err)).Inc()
	BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
