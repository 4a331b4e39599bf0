package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/internal/observability"
)

func TestRunMetrics_NilReceiverIsNoOp(t *testing.T) {
	t.Parallel()

	var rm *observability.RunMetrics

	assert.NotPanics(t, func() {
		rm.RunStarted()
		rm.RunCompleted("ok")
		rm.TaskSettled("technology", "completed", time.Second)
		rm.PhaseFinished("parallel", time.Second)
	})
}

func TestRunMetrics_RecordsInstruments(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rm := observability.NewRunMetrics(reg)

	rm.RunStarted()
	rm.RunCompleted("ok")
	rm.TaskSettled("technology", "completed", 250*time.Millisecond)
	rm.TaskSettled("quality", "failed", 100*time.Millisecond)
	rm.PhaseFinished("parallel", time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}

	assert.True(t, names["reposcope_runs_started_total"])
	assert.True(t, names["reposcope_runs_completed_total"])
	assert.True(t, names["reposcope_task_outcomes_total"])
	assert.True(t, names["reposcope_task_duration_seconds"])
	assert.True(t, names["reposcope_phase_duration_seconds"])
}
