// Package orchestrator schedules analyzer tasks over a source tree in
// two phases and hands the settled results to the synthesizer. Phase 1
// runs every parallel task concurrently and joins on all of them;
// Phase 2 runs the sequential tasks one at a time in registry order.
// A task failure never aborts the run: it settles as a failure result
// and synthesis substitutes defaults.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/optqo/reposcope/internal/observability"
	"github.com/optqo/reposcope/pkg/report"
	"github.com/optqo/reposcope/pkg/synthesis"
	"github.com/optqo/reposcope/pkg/task"
)

// ErrInvalidRoot is returned when the analysis root cannot be listed.
var ErrInvalidRoot = errors.New("analysis root is not a readable directory")

// ErrOrchestratorReused is returned when Run is called a second time on
// the same orchestrator. Each run gets a fresh instance.
var ErrOrchestratorReused = errors.New("orchestrator already ran")

// ErrTaskTimeout settles tasks that did not finish before the run
// deadline.
var ErrTaskTimeout = errors.New("task timed out")

// DefaultRetries is the number of extra attempts after a failed one.
const DefaultRetries = 1

// State is the orchestrator lifecycle position.
type State string

// Lifecycle states, in order. Aborted is terminal for runs that never
// reached Phase 1.
const (
	StateIdle          State = "idle"
	StatePhase1Running State = "phase1_running"
	StatePhase2Running State = "phase2_running"
	StateSynthesizing  State = "synthesizing"
	StateDone          State = "done"
	StateAborted       State = "aborted"
)

// Run completion statuses reported to metrics.
const (
	runStatusOK      = "ok"
	runStatusPartial = "partial"
	runStatusAborted = "aborted"
)

// Config wires an orchestrator.
type Config struct {
	Registry    *task.Registry
	Synthesizer *synthesis.Synthesizer

	// Options is forwarded verbatim to every task.
	Options task.Options

	// Timeout bounds the whole run. Zero means no deadline.
	Timeout time.Duration

	// Retries is the number of extra attempts per task after a failure.
	// Negative means DefaultRetries.
	Retries int

	Logger  *slog.Logger
	Metrics *observability.RunMetrics
}

// RunResult is the outcome of one orchestrated run.
type RunResult struct {
	RunID   string
	Report  *report.Data
	TaskIDs []string
	Elapsed time.Duration
}

// Orchestrator executes one run. Single-use.
type Orchestrator struct {
	cfg   Config
	store *task.Store
	state atomic.Value
	used  atomic.Bool
}

// New creates a single-use orchestrator.
func New(cfg Config) *Orchestrator {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.Retries < 0 {
		cfg.Retries = DefaultRetries
	}

	o := &Orchestrator{cfg: cfg, store: task.NewStore()}
	o.state.Store(StateIdle)

	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	return o.state.Load().(State)
}

// Store exposes the result store. Phase 2 tasks observing it are
// guaranteed to see every Phase 1 entry.
func (o *Orchestrator) Store() *task.Store {
	return o.store
}

// Run executes the identified tasks against root and synthesizes the
// report. It fails fast, before any task runs, on an unreadable root or
// an unknown task identifier. Once Phase 1 has started the run always
// reaches synthesis; per-task failures settle into the report instead
// of propagating.
func (o *Orchestrator) Run(ctx context.Context, root string, taskIDs []string) (*RunResult, error) {
	if !o.used.CompareAndSwap(false, true) {
		return nil, ErrOrchestratorReused
	}

	runID := uuid.NewString()
	started := time.Now()
	logger := o.cfg.Logger.With("run_id", runID, "root", root)

	if _, err := os.ReadDir(root); err != nil {
		o.state.Store(StateAborted)
		o.cfg.Metrics.RunCompleted(runStatusAborted)

		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}

	descriptors, err := o.cfg.Registry.Resolve(taskIDs)
	if err != nil {
		o.state.Store(StateAborted)
		o.cfg.Metrics.RunCompleted(runStatusAborted)

		return nil, err
	}

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	o.cfg.Metrics.RunStarted()
	logger.Info("run starting", "tasks", len(descriptors))

	parallel, sequential := splitPhases(descriptors)

	o.state.Store(StatePhase1Running)
	o.runParallel(ctx, root, parallel, logger)

	o.state.Store(StatePhase2Running)
	o.runSequential(ctx, root, sequential, logger)

	o.state.Store(StateSynthesizing)

	meta := synthesis.Meta{
		ProjectName: projectName(root),
		AnalysisID:  runID,
		GeneratedAt: time.Now().UTC(),
		Elapsed:     time.Since(started),
	}

	data := o.cfg.Synthesizer.Synthesize(o.store, taskIDs, meta)

	o.state.Store(StateDone)

	status := runStatusOK
	if data.FailedTasks > 0 {
		status = runStatusPartial
	}

	o.cfg.Metrics.RunCompleted(status)
	logger.Info("run finished", "status", status, "failed_tasks", data.FailedTasks,
		"elapsed", meta.Elapsed)

	return &RunResult{
		RunID:   runID,
		Report:  data,
		TaskIDs: append([]string(nil), taskIDs...),
		Elapsed: meta.Elapsed,
	}, nil
}

// splitPhases partitions descriptors by phase, preserving order within
// each phase.
func splitPhases(descriptors []task.Descriptor) ([]task.Descriptor, []task.Descriptor) {
	parallel := make([]task.Descriptor, 0, len(descriptors))
	sequential := make([]task.Descriptor, 0)

	for _, descriptor := range descriptors {
		if descriptor.Phase == task.PhaseSequential {
			sequential = append(sequential, descriptor)
		} else {
			parallel = append(parallel, descriptor)
		}
	}

	return parallel, sequential
}

// runParallel fans the Phase 1 tasks out and joins on all of them.
// Every task settles exactly one store entry before this returns.
func (o *Orchestrator) runParallel(ctx context.Context, root string, descriptors []task.Descriptor, logger *slog.Logger) {
	phaseStarted := time.Now()

	var group errgroup.Group

	for _, descriptor := range descriptors {
		descriptor := descriptor
		group.Go(func() error {
			o.settle(ctx, root, descriptor, logger)

			return nil
		})
	}

	// Errors settle in the store; Wait only provides the join.
	_ = group.Wait()

	o.cfg.Metrics.PhaseFinished(string(task.PhaseParallel), time.Since(phaseStarted))
}

// runSequential runs the Phase 2 tasks one at a time in declared order.
// Tasks that cannot start before the deadline settle as timeouts.
func (o *Orchestrator) runSequential(ctx context.Context, root string, descriptors []task.Descriptor, logger *slog.Logger) {
	phaseStarted := time.Now()

	for _, descriptor := range descriptors {
		if ctx.Err() != nil {
			o.record(task.Failed(descriptor.ID, ErrTaskTimeout, 0), logger)

			continue
		}

		o.settle(ctx, root, descriptor, logger)
	}

	o.cfg.Metrics.PhaseFinished(string(task.PhaseSequential), time.Since(phaseStarted))
}

// settle runs one task to a settled result and records it. The task
// body runs in its own goroutine so a deadline settles the result
// without waiting for a stuck analyzer.
func (o *Orchestrator) settle(ctx context.Context, root string, descriptor task.Descriptor, logger *slog.Logger) {
	started := time.Now()

	type outcome struct {
		payload task.Payload
		err     error
	}

	done := make(chan outcome, 1)

	go func() {
		payload, err := o.attempt(ctx, root, descriptor)
		done <- outcome{payload: payload, err: err}
	}()

	select {
	case out := <-done:
		elapsed := time.Since(started)

		if out.err != nil {
			o.record(task.Failed(descriptor.ID, out.err, elapsed), logger)

			return
		}

		o.record(task.Succeeded(descriptor.ID, out.payload, elapsed), logger)

	case <-ctx.Done():
		o.record(task.Failed(descriptor.ID, ErrTaskTimeout, time.Since(started)), logger)
	}
}

// attempt runs a task with retries. A panic in the task body converts
// to an error instead of tearing the run down.
func (o *Orchestrator) attempt(ctx context.Context, root string, descriptor task.Descriptor) (task.Payload, error) {
	var lastErr error

	for i := 0; i <= o.cfg.Retries; i++ {
		if ctx.Err() != nil {
			return nil, ErrTaskTimeout
		}

		instance, err := o.cfg.Registry.Create(descriptor.ID)
		if err != nil {
			return nil, err
		}

		payload, err := runGuarded(ctx, instance, root, o.cfg.Options)
		if err == nil {
			return payload, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

// runGuarded invokes Analyze with panic recovery.
func runGuarded(ctx context.Context, t task.Task, root string, opts task.Options) (payload task.Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return t.Analyze(ctx, root, opts)
}

// record settles one result. A duplicate write indicates an
// orchestrator bug and is logged, not propagated.
func (o *Orchestrator) record(result task.Result, logger *slog.Logger) {
	if err := o.store.Put(result); err != nil {
		logger.Error("result dropped", "task", result.TaskID, "error", err)

		return
	}

	status := report.StatusCompleted
	if result.Failure() {
		status = report.StatusFailed
		logger.Warn("task failed", "task", result.TaskID, "error", result.Err,
			"elapsed", result.Elapsed)
	} else {
		logger.Debug("task completed", "task", result.TaskID, "elapsed", result.Elapsed)
	}

	o.cfg.Metrics.TaskSettled(result.TaskID, status, result.Elapsed)
}

// projectName derives the report's project label from the root path.
func projectName(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	base := filepath.Base(root)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "project"
	}

	return base
}
