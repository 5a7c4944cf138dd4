package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leavemgmt_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leavemgmt_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	leaveDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leavemgmt_leave_decisions_total",
		Help: "Count of leave request decisions by outcome",
	}, []string{"decision"})

	employeesProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leavemgmt_employees_provisioned_total",
		Help: "Count of employee provisioning attempts by result",
	}, []string{"result"})

	reconciliationMarkers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leavemgmt_reconciliation_markers_total",
		Help: "Count of recorded reconciliation markers by action",
	}, []string{"action"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLeaveDecision increments the decision counter for approved/rejected.
func ObserveLeaveDecision(decision string) {
	leaveDecisions.WithLabelValues(decision).Inc()
}

// ObserveEmployeeProvisioned records a provisioning attempt with a result label.
func ObserveEmployeeProvisioned(result string) {
	employeesProvisioned.WithLabelValues(result).Inc()
}

// ObserveReconciliationMarker counts markers written for manual follow-up.
func ObserveReconciliationMarker(action string) {
	reconciliationMarkers.WithLabelValues(action).Inc()
}
