package orchestrator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optqo/reposcope/pkg/orchestrator"
	"github.com/optqo/reposcope/pkg/synthesis"
	"github.com/optqo/reposcope/pkg/task"
)

var errStub = errors.New("stub failure")

type stubTask struct {
	descriptor task.Descriptor
	analyze    func(ctx context.Context) (task.Payload, error)
}

func (s *stubTask) Descriptor() task.Descriptor {
	return s.descriptor
}

func (s *stubTask) Analyze(ctx context.Context, _ string, _ task.Options) (task.Payload, error) {
	return s.analyze(ctx)
}

func okPayload() task.Payload {
	return &task.StructurePayload{TotalFiles: 1}
}

func registration(id string, phase task.Phase, analyze func(ctx context.Context) (task.Payload, error)) task.Registration {
	descriptor := task.Descriptor{ID: id, Description: id, Phase: phase}

	return task.Registration{
		Descriptor: descriptor,
		New: func() task.Task {
			return &stubTask{descriptor: descriptor, analyze: analyze}
		},
	}
}

func succeeding(id string, phase task.Phase) task.Registration {
	return registration(id, phase, func(_ context.Context) (task.Payload, error) {
		return okPayload(), nil
	})
}

func newOrchestrator(t *testing.T, cfg orchestrator.Config, registrations ...task.Registration) *orchestrator.Orchestrator {
	t.Helper()

	registry, err := task.NewRegistry(registrations)
	require.NoError(t, err)

	cfg.Registry = registry
	if cfg.Synthesizer == nil {
		cfg.Synthesizer = synthesis.New(synthesis.DefaultWeights())
	}

	return orchestrator.New(cfg)
}

func TestRun_OneResultPerScheduledTask(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(t, orchestrator.Config{},
		succeeding("alpha", task.PhaseParallel),
		succeeding("beta", task.PhaseParallel),
		succeeding("gamma", task.PhaseSequential),
	)

	result, err := orch.Run(context.Background(), t.TempDir(), []string{"alpha", "beta", "gamma"})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, orch.Store().IDs())
	assert.Equal(t, orchestrator.StateDone, orch.State())
	assert.NotEmpty(t, result.RunID)
	assert.Zero(t, result.Report.FailedTasks)
}

func TestRun_TaskFailureDoesNotAbortTheRun(t *testing.T) {
	t.Parallel()

	failing := registration("broken", task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		return nil, errStub
	})

	orch := newOrchestrator(t, orchestrator.Config{},
		succeeding("alpha", task.PhaseParallel), failing)

	result, err := orch.Run(context.Background(), t.TempDir(), []string{"alpha", "broken"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Report.FailedTasks)

	broken, ok := orch.Store().Get("broken")
	require.True(t, ok)
	require.ErrorIs(t, broken.Err, errStub)
}

func TestRun_InvalidRootFailsBeforeAnyTask(t *testing.T) {
	t.Parallel()

	ran := atomic.Bool{}
	tracker := registration("tracked", task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		ran.Store(true)

		return okPayload(), nil
	})

	orch := newOrchestrator(t, orchestrator.Config{}, tracker)

	_, err := orch.Run(context.Background(), "/definitely/not/a/dir", []string{"tracked"})
	require.ErrorIs(t, err, orchestrator.ErrInvalidRoot)
	assert.Equal(t, orchestrator.StateAborted, orch.State())
	assert.False(t, ran.Load())
}

func TestRun_UnknownTaskFailsBeforeAnyTask(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(t, orchestrator.Config{}, succeeding("alpha", task.PhaseParallel))

	_, err := orch.Run(context.Background(), t.TempDir(), []string{"alpha", "ghost"})
	require.ErrorIs(t, err, task.ErrUnknownTask)
	assert.Equal(t, orchestrator.StateAborted, orch.State())
}

func TestRun_SecondRunIsRejected(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(t, orchestrator.Config{}, succeeding("alpha", task.PhaseParallel))

	_, err := orch.Run(context.Background(), t.TempDir(), []string{"alpha"})
	require.NoError(t, err)

	_, err = orch.Run(context.Background(), t.TempDir(), []string{"alpha"})
	require.ErrorIs(t, err, orchestrator.ErrOrchestratorReused)
}

func TestRun_SequentialTasksSeeParallelAndPriorSequentialResults(t *testing.T) {
	t.Parallel()

	var orch *orchestrator.Orchestrator

	observed := map[string][]string{}

	observer := func(id string) func(context.Context) (task.Payload, error) {
		return func(_ context.Context) (task.Payload, error) {
			observed[id] = orch.Store().IDs()

			return okPayload(), nil
		}
	}

	orch = newOrchestrator(t, orchestrator.Config{},
		succeeding("p1", task.PhaseParallel),
		succeeding("p2", task.PhaseParallel),
		succeeding("p3", task.PhaseParallel),
		registration("s1", task.PhaseSequential, observer("s1")),
		registration("s2", task.PhaseSequential, observer("s2")),
	)

	_, err := orch.Run(context.Background(), t.TempDir(), []string{"p1", "p2", "p3", "s1", "s2"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, observed["s1"])
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "s1"}, observed["s2"])
}

func TestRun_TimeoutSettlesBlockedTasks(t *testing.T) {
	t.Parallel()

	blocked := registration("stuck", task.PhaseParallel, func(ctx context.Context) (task.Payload, error) {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)

		return okPayload(), nil
	})

	orch := newOrchestrator(t, orchestrator.Config{Timeout: 50 * time.Millisecond},
		blocked,
		succeeding("after", task.PhaseSequential),
	)

	result, err := orch.Run(context.Background(), t.TempDir(), []string{"stuck", "after"})
	require.NoError(t, err)

	stuck, ok := orch.Store().Get("stuck")
	require.True(t, ok)
	require.ErrorIs(t, stuck.Err, orchestrator.ErrTaskTimeout)

	after, ok := orch.Store().Get("after")
	require.True(t, ok)
	require.ErrorIs(t, after.Err, orchestrator.ErrTaskTimeout)

	assert.Equal(t, 2, result.Report.FailedTasks)
	assert.Equal(t, orchestrator.StateDone, orch.State())
}

func TestRun_PanicSettlesAsFailure(t *testing.T) {
	t.Parallel()

	panicking := registration("volatile", task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		panic("kaboom")
	})

	orch := newOrchestrator(t, orchestrator.Config{},
		panicking, succeeding("calm", task.PhaseParallel))

	result, err := orch.Run(context.Background(), t.TempDir(), []string{"volatile", "calm"})
	require.NoError(t, err)

	volatile, ok := orch.Store().Get("volatile")
	require.True(t, ok)
	require.Error(t, volatile.Err)
	assert.Contains(t, volatile.Err.Error(), "kaboom")
	assert.Equal(t, 1, result.Report.FailedTasks)
}

func TestRun_RetriesRecoverTransientFailures(t *testing.T) {
	t.Parallel()

	attempts := atomic.Int32{}
	flaky := registration("flaky", task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		if attempts.Add(1) == 1 {
			return nil, errStub
		}

		return okPayload(), nil
	})

	orch := newOrchestrator(t, orchestrator.Config{Retries: 1}, flaky)

	result, err := orch.Run(context.Background(), t.TempDir(), []string{"flaky"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), attempts.Load())
	assert.Zero(t, result.Report.FailedTasks)
}

func TestRun_ReportScalarsIndependentOfScheduleOrder(t *testing.T) {
	t.Parallel()

	quality := registration(task.IDQuality, task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		return &task.QualityPayload{Scores: task.QualityScores{
			Functionality: 80, Organization: 80, Documentation: 80,
			BestPractices: 80, ErrorHandling: 80, Performance: 80,
		}}, nil
	})
	tech := registration(task.IDTechnology, task.PhaseParallel, func(_ context.Context) (task.Payload, error) {
		return &task.TechnologyPayload{PrimaryTechnology: "Python"}, nil
	})

	root := t.TempDir()

	first := newOrchestrator(t, orchestrator.Config{}, quality, tech)
	forward, err := first.Run(context.Background(), root, []string{task.IDQuality, task.IDTechnology})
	require.NoError(t, err)

	second := newOrchestrator(t, orchestrator.Config{}, quality, tech)
	reversed, err := second.Run(context.Background(), root, []string{task.IDTechnology, task.IDQuality})
	require.NoError(t, err)

	assert.Equal(t, forward.Report.OverallQuality, reversed.Report.OverallQuality)
	assert.Equal(t, forward.Report.PrimaryTechnology, reversed.Report.PrimaryTechnology)
	assert.Equal(t, forward.Report.Maintainability, reversed.Report.Maintainability)
}
