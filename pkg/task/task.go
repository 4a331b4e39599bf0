// Package task defines the analyzer task contract shared by the
// orchestrator, the registry, and the six analyzer implementations.
package task

import (
	"context"
)

// Phase identifies the scheduling group of a task.
type Phase string

// Scheduling phases. Parallel tasks run concurrently in Phase 1;
// sequential tasks run one at a time, in registry order, after the
// Phase 1 barrier.
const (
	PhaseParallel   Phase = "parallel"
	PhaseSequential Phase = "sequential"
)

// Descriptor contains stable task metadata. Defined once at registry
// construction and immutable afterwards.
type Descriptor struct {
	ID          string
	Description string
	Phase       Phase
}

// Options is the open configuration bag forwarded verbatim to every
// task. Keys each analyzer independently chooses to honor; unrecognized
// keys are ignored, never an error.
type Options map[string]any

// Int returns the integer stored under key, or fallback when the key is
// absent or holds a non-integer value.
func (o Options) Int(key string, fallback int) int {
	value, ok := o[key]
	if !ok {
		return fallback
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// String returns the string stored under key, or fallback when the key
// is absent or holds a non-string value.
func (o Options) String(key, fallback string) string {
	value, ok := o[key]
	if !ok {
		return fallback
	}

	str, ok := value.(string)
	if !ok {
		return fallback
	}

	return str
}

// Task is one independent unit of heuristic analysis over a source
// tree. Analyze scans the tree under root and returns a self-contained
// payload. It must honor ctx cancellation at file-read and
// directory-listing boundaries, degrade empty or unreadable subtrees
// into neutral scores, and fail only for an unreadable root or an
// unrecoverable internal error.
type Task interface {
	Descriptor() Descriptor
	Analyze(ctx context.Context, root string, opts Options) (Payload, error)
}
