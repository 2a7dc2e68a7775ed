/*
PURPOSE:
  Defines the core data structures shared across Grumpi Miner: combinations,
  test statuses, individual test results, and the suite that collects them.

REQUIREMENTS:
  User-specified:
  - A combination's canonical key must be order-independent: two combinations
    built from the same assignments hash identically.
  - A suite is append-only and completed exactly once.

  Implementation-discovered:
  - The suite's result list is the only state shared across concurrent
    workers, so the append path carries the mutex.
  - time.Duration for elapsed time; seconds are derived at the export
    boundary only.

ARCHITECTURE INTEGRATION:
  - Produced by: internal/generator (Combination), internal/executor
    (TestResult, TestSuite)
  - Read by: internal/report, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (data structures). MarkComplete on a completed suite is a no-op.

IMPLEMENTATION RULES:
  - Keep structs simple and public. Do not add behavior that mutates a
    TestResult after construction.
  - Canonical key format is "<dimension>:<variant>" pairs, sorted, joined
    with "|". It is a wire-stable contract; never change it.

USAGE:
  c := model.Combination{"FormatVariation": "json"}
  key := c.Key()

RELATED FILES:
  - internal/executor/executor.go - Creates results and populates suites.
  - internal/report/report.go - Pure reads over a completed suite.

MAINTENANCE:
  - Update internal/report and internal/output when adding result fields.
*/

package model

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daryltucker/grumpi-miner/internal/dimension"
)

// Variant aliases dimension.Variant so downstream consumers of results do
// not need to import the dimension package.
type Variant = dimension.Variant

// Combination assigns exactly one variant to each dimension in a chosen
// subset, keyed by dimension name. Combinations are immutable once built.
type Combination map[string]Variant

// Key returns the canonical, order-independent identity of the combination:
// sorted "<dimension>:<variant>" pairs joined with "|". Equal assignments
// always produce equal keys, regardless of construction order.
func (c Combination) Key() string {
	parts := make([]string, 0, len(c))
	for name, v := range c {
		parts = append(parts, fmt.Sprintf("%s:%s", name, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// Size returns the number of dimensions in the combination.
func (c Combination) Size() int {
	return len(c)
}

// String renders the combination for humans, in canonical key order.
func (c Combination) String() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", dimension.DisplayName(name), c[name]))
	}
	return strings.Join(parts, " + ")
}

// Clone returns an independent copy of the combination.
func (c Combination) Clone() Combination {
	out := make(Combination, len(c))
	for name, v := range c {
		out[name] = v
	}
	return out
}

// Status is the execution state of a single test.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	// StatusSkipped is a reserved terminal state for selective-execution
	// policies. The executor never produces it today.
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// AllStatuses lists every status value in a fixed order, for zero-filled
// counting in summaries.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusRunning, StatusPassed, StatusFailed, StatusSkipped, StatusError}
}

// Terminal reports whether the status is a final outcome.
func (s Status) Terminal() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped, StatusError:
		return true
	}
	return false
}

// TestResult is the immutable record of one predicate execution.
type TestResult struct {
	Combination Combination
	Status      Status
	// Duration is wall clock around the predicate invocation only.
	Duration time.Duration
	// Message holds the error text; set iff Status is StatusError.
	Message   string
	Metadata  map[string]any
	Timestamp time.Time
}

// String renders the result as "[STATUS] combination (0.123s)" with the
// error message on a second line when present.
func (r *TestResult) String() string {
	s := fmt.Sprintf("[%s] %s (%.3fs)", strings.ToUpper(string(r.Status)), r.Combination, r.Duration.Seconds())
	if r.Message != "" {
		s += fmt.Sprintf("\n  Error: %s", r.Message)
	}
	return s
}

// TestSuite is the complete, time-bounded record of one batch run. It is
// mutable only by appending results and by the single completion transition.
type TestSuite struct {
	ID        string
	Name      string
	StartTime time.Time

	mu      sync.Mutex
	results []*TestResult
	endTime time.Time
}

// NewTestSuite creates an empty suite; the start timestamp is taken from
// the supplied clock reading so callers can inject a test clock.
func NewTestSuite(name string, start time.Time) *TestSuite {
	return &TestSuite{
		ID:        uuid.NewString(),
		Name:      name,
		StartTime: start,
	}
}

// AddResult appends a result. Safe for concurrent use; the append is the
// sole shared-mutable boundary between workers.
func (s *TestSuite) AddResult(r *TestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

// MarkComplete seals the suite at the given time. Only the first call takes
// effect.
func (s *TestSuite) MarkComplete(end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime.IsZero() {
		s.endTime = end
	}
}

// Complete reports whether the suite has been sealed.
func (s *TestSuite) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.endTime.IsZero()
}

// EndTime returns the completion timestamp; the zero time means the suite is
// still open.
func (s *TestSuite) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}

// Len returns the number of appended results.
func (s *TestSuite) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Results returns the results in append order. The slice is a copy; the
// pointed-to results are immutable by contract.
func (s *TestSuite) Results() []*TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*TestResult, len(s.results))
	copy(out, s.results)
	return out
}
