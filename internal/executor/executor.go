/*
PURPOSE:
  Executes an injected predicate against generated combinations and records
  one TestResult per combination into a TestSuite. Supports sequential,
  bounded-parallel, and callback-observed execution.

REQUIREMENTS:
  User-specified:
  - Per-test state machine: pending -> running -> passed|failed|error.
  - Predicate failures become ERROR results, never aborted batches.
  - A configured timeout converts one result to ERROR naming the timeout.
  - Concurrent mode: exactly one result per combination, synchronized
    appends, completion order.

  Implementation-discovered:
  - Predicate panics must be recovered into ERROR results too; a misbehaving
    predicate invocation must not take down the batch.
  - A timed-out predicate goroutine is abandoned, not killed; the buffered
    channel lets it finish without blocking.

ARCHITECTURE INTEGRATION:
  - Consumes: model.Combination from internal/generator
  - Produces: model.TestResult, model.TestSuite
  - Called by: internal/cli

ERROR HANDLING:
  - All predicate-originated failures surface as result data. Observer
    callbacks are caller-owned instrumentation: their panics are NOT
    recovered and propagate to the caller.

IMPLEMENTATION RULES:
  - At most one execution attempt per combination per batch; no retries.
  - One fresh suite per batch call; never reuse a suite.
  - Elapsed time covers the predicate invocation only.

USAGE:
  ex := executor.New(func(c model.Combination) (bool, error) { ... })
  suite := ex.ExecuteBatch(combos, "pairwise")

RELATED FILES:
  - internal/model/types.go - Result and suite types.
  - internal/report/report.go - Aggregation over the sealed suite.

MAINTENANCE:
  - Update DefaultWorkers if the common deployment changes.
*/

package executor

import (
	"fmt"
	"sync"
	"time"

	"github.com/daryltucker/grumpi-miner/internal/model"
)

// DefaultWorkers bounds the pool when MaxWorkers is unset.
const DefaultWorkers = 4

// Predicate decides a single combination: true means PASSED, false means
// FAILED, a non-nil error means ERROR with the error text captured verbatim.
type Predicate func(model.Combination) (bool, error)

// AlwaysPass is the default predicate used when none is injected.
func AlwaysPass(model.Combination) (bool, error) {
	return true, nil
}

// Executor runs a predicate over combinations.
type Executor struct {
	// Test is the injected predicate; nil means AlwaysPass.
	Test Predicate
	// Timeout bounds a single predicate invocation; zero means unbounded.
	Timeout time.Duration
	// Parallel switches ExecuteBatch to the bounded worker pool.
	Parallel bool
	// MaxWorkers sizes the pool; values < 1 fall back to DefaultWorkers.
	MaxWorkers int

	now func() time.Time
}

// New creates an executor with the given predicate. A nil predicate yields
// an executor whose tests always pass.
func New(test Predicate) *Executor {
	if test == nil {
		test = AlwaysPass
	}
	return &Executor{Test: test, now: time.Now}
}

// clock returns the executor's time source, defaulting to the wall clock so
// zero-value Executors stay usable.
func (e *Executor) clock() func() time.Time {
	if e.now != nil {
		return e.now
	}
	return time.Now
}

// predicate returns the injected test, defaulting to AlwaysPass.
func (e *Executor) predicate() Predicate {
	if e.Test != nil {
		return e.Test
	}
	return AlwaysPass
}

type outcome struct {
	passed bool
	err    error
}

// invoke runs the predicate once, converting a panic into an error.
func invoke(test Predicate, c model.Combination) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: fmt.Errorf("predicate panic: %v", r)}
		}
	}()
	passed, err := test(c)
	return outcome{passed: passed, err: err}
}

// Execute runs the predicate against a single combination and returns its
// result. The status transition is strictly linear: pending, running, then
// exactly one terminal state.
func (e *Executor) Execute(c model.Combination) *model.TestResult {
	now := e.clock()
	test := e.predicate()

	status := model.StatusPending
	message := ""
	start := now()

	status = model.StatusRunning
	var out outcome
	if e.Timeout > 0 {
		done := make(chan outcome, 1)
		go func() {
			done <- invoke(test, c)
		}()
		select {
		case out = <-done:
		case <-time.After(e.Timeout):
			out = outcome{err: fmt.Errorf("test timed out after %s", e.Timeout)}
		}
	} else {
		out = invoke(test, c)
	}
	elapsed := now().Sub(start)

	switch {
	case out.err != nil:
		status = model.StatusError
		message = out.err.Error()
	case out.passed:
		status = model.StatusPassed
	default:
		status = model.StatusFailed
	}

	return &model.TestResult{
		Combination: c,
		Status:      status,
		Duration:    elapsed,
		Message:     message,
		Metadata:    map[string]any{},
		Timestamp:   now(),
	}
}

// ExecuteBatch runs every combination to completion and returns the sealed
// suite. Sequential mode preserves input order in the result sequence;
// parallel mode appends in completion order but still yields exactly one
// result per input combination.
func (e *Executor) ExecuteBatch(combos []model.Combination, suiteName string) *model.TestSuite {
	now := e.clock()
	suite := model.NewTestSuite(suiteName, now())

	if e.Parallel {
		workers := e.MaxWorkers
		if workers < 1 {
			workers = DefaultWorkers
		}

		jobs := make(chan model.Combination)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for c := range jobs {
					suite.AddResult(e.Execute(c))
				}
			}()
		}
		for _, c := range combos {
			jobs <- c
		}
		close(jobs)
		wg.Wait()
	} else {
		for _, c := range combos {
			suite.AddResult(e.Execute(c))
		}
	}

	suite.MarkComplete(now())
	return suite
}

// ExecuteWithCallback runs combinations sequentially, invoking the observer
// synchronously with each result immediately after it is appended. Observer
// panics are not recovered; they belong to the caller.
func (e *Executor) ExecuteWithCallback(combos []model.Combination, callback func(*model.TestResult), suiteName string) *model.TestSuite {
	now := e.clock()
	suite := model.NewTestSuite(suiteName, now())

	for _, c := range combos {
		result := e.Execute(c)
		suite.AddResult(result)
		if callback != nil {
			callback(result)
		}
	}

	suite.MarkComplete(now())
	return suite
}
