package task

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrDuplicateResult is returned when a store receives a second result
// for the same task identifier.
var ErrDuplicateResult = errors.New("duplicate task result")

// Result is the settled outcome of one task: either a payload or an
// error, never both. A result for a given task identifier is produced
// at most once per run.
type Result struct {
	TaskID  string
	Payload Payload
	Err     error
	Elapsed time.Duration
}

// Succeeded builds a success result.
func Succeeded(id string, payload Payload, elapsed time.Duration) Result {
	return Result{TaskID: id, Payload: payload, Elapsed: elapsed}
}

// Failed builds a failure result. The payload is discarded; the
// synthesizer substitutes defaults for every field the task owns.
func Failed(id string, err error, elapsed time.Duration) Result {
	return Result{TaskID: id, Err: err, Elapsed: elapsed}
}

// Failure reports whether the task failed.
func (r Result) Failure() bool {
	return r.Err != nil
}

// Store is the per-run mapping from task identifier to outcome. Each
// key is written exactly once, by the owning task's completion handler;
// reads happen only after the owning phase's barrier.
type Store struct {
	mu      sync.Mutex
	results map[string]Result
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{results: make(map[string]Result)}
}

// Put records the settled outcome for a task identifier. Writing the
// same identifier twice is a programming error in the orchestrator.
func (s *Store) Put(result Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.TaskID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateResult, result.TaskID)
	}

	s.results[result.TaskID] = result

	return nil
}

// Get returns the result for a task identifier.
func (s *Store) Get(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.results[id]

	return result, ok
}

// Len returns the number of settled results.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.results)
}

// IDs returns the settled task identifiers in lexical order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.results))
	for id := range s.results {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
