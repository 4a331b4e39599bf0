// Package observability holds the Prometheus instruments for analysis
// runs. All record methods are safe on a nil receiver so callers never
// guard metric calls.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "reposcope"

	labelTask   = "task"
	labelPhase  = "phase"
	labelStatus = "status"
)

// durationBuckets cover sub-second scans through multi-minute runs.
var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}

// RunMetrics instruments orchestrator runs.
type RunMetrics struct {
	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	taskOutcomes  *prometheus.CounterVec
	taskDuration  *prometheus.HistogramVec
	phaseDuration *prometheus.HistogramVec
}

// NewRunMetrics creates and registers the run instruments.
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	rm := &RunMetrics{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Analysis runs started.",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Analysis runs completed, by final status.",
		}, []string{labelStatus}),
		taskOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_outcomes_total",
			Help:      "Settled task results, by task and status.",
		}, []string{labelTask, labelStatus}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Per-task wall time.",
			Buckets:   durationBuckets,
		}, []string{labelTask}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Per-phase wall time.",
			Buckets:   durationBuckets,
		}, []string{labelPhase}),
	}

	reg.MustRegister(
		rm.runsStarted,
		rm.runsCompleted,
		rm.taskOutcomes,
		rm.taskDuration,
		rm.phaseDuration,
	)

	return rm
}

// RunStarted records the start of a run. Nil-safe.
func (rm *RunMetrics) RunStarted() {
	if rm == nil {
		return
	}

	rm.runsStarted.Inc()
}

// RunCompleted records a finished run with its final status. Nil-safe.
func (rm *RunMetrics) RunCompleted(status string) {
	if rm == nil {
		return
	}

	rm.runsCompleted.WithLabelValues(status).Inc()
}

// TaskSettled records one settled task outcome. Nil-safe.
func (rm *RunMetrics) TaskSettled(taskID, status string, elapsed time.Duration) {
	if rm == nil {
		return
	}

	rm.taskOutcomes.WithLabelValues(taskID, status).Inc()
	rm.taskDuration.WithLabelValues(taskID).Observe(elapsed.Seconds())
}

// PhaseFinished records one phase's wall time. Nil-safe.
func (rm *RunMetrics) PhaseFinished(phase string, elapsed time.Duration) {
	if rm == nil {
		return
	}

	rm.phaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
}
