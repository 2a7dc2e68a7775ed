/*
PURPOSE:
  Aggregates a completed TestSuite into summary statistics and per-dimension
  breakdowns, and formats the multi-section human-readable report.

REQUIREMENTS:
  User-specified:
  - Summaries zero-fill every status, define pass rate as 0 for an empty
    suite, and omit suite duration until the suite is sealed.
  - Dimension breakdown is ordered lexicographically by the pair key for
    stable diffing across runs.
  - Report sections compose in a fixed order: summary, dimension analysis
    (optional), failures, detailed results (optional).

  Implementation-discovered:
  - All functions are pure reads; they take a suite snapshot up front so
    repeated or interleaved calls see consistent data.

ARCHITECTURE INTEGRATION:
  - Reads: model.TestSuite (never mutates)
  - Called by: internal/cli, internal/output

ERROR HANDLING:
  - None. Empty and incomplete suites produce defined values, not errors.

IMPLEMENTATION RULES:
  - Never write to the suite from this package.
  - Percentages are computed against the relevant total, guarded against
    zero.

USAGE:
  sum := report.Summarize(suite)
  text := (&report.Reporter{}).Generate(suite, false, true)

RELATED FILES:
  - internal/report/export.go - Serializable whole-suite form.

MAINTENANCE:
  - Keep section formatting in sync with Generate's assembly order.
*/

package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daryltucker/grumpi-miner/internal/model"
)

// Summary holds the aggregate view of one suite.
type Summary struct {
	Name       string
	ID         string
	TotalTests int
	// StatusCounts carries every status value, zero-filled when absent.
	StatusCounts map[model.Status]int
	// TotalExecutionTime is the sum of individual test durations.
	TotalExecutionTime time.Duration
	// SuiteDuration is end minus start; meaningful only when Completed.
	SuiteDuration time.Duration
	Completed     bool
	// PassRate is passed/total*100, 0 for an empty suite.
	PassRate float64
}

// Summarize computes the aggregate statistics for a suite.
func Summarize(suite *model.TestSuite) Summary {
	results := suite.Results()

	counts := make(map[model.Status]int, len(model.AllStatuses()))
	for _, s := range model.AllStatuses() {
		counts[s] = 0
	}
	var totalTime time.Duration
	for _, r := range results {
		counts[r.Status]++
		totalTime += r.Duration
	}

	sum := Summary{
		Name:               suite.Name,
		ID:                 suite.ID,
		TotalTests:         len(results),
		StatusCounts:       counts,
		TotalExecutionTime: totalTime,
	}
	if end := suite.EndTime(); !end.IsZero() {
		sum.Completed = true
		sum.SuiteDuration = end.Sub(suite.StartTime)
	}
	if len(results) > 0 {
		sum.PassRate = float64(counts[model.StatusPassed]) / float64(len(results)) * 100
	}
	return sum
}

// DimensionStat aggregates outcomes for one (dimension, variant) pair.
type DimensionStat struct {
	// Key is "<dimension>:<variant>", the breakdown's sort key.
	Key       string
	Dimension string
	Variant   string
	Total     int
	Passed    int
	Failed    int
	Errored   int
	PassRate  float64
}

// DimensionBreakdown counts outcomes for every (dimension, variant) pair
// appearing anywhere in the suite, sorted lexicographically by pair key.
func DimensionBreakdown(suite *model.TestSuite) []DimensionStat {
	type pair struct{ dim, variant string }
	stats := make(map[pair]*DimensionStat)

	for _, r := range suite.Results() {
		for dim, v := range r.Combination {
			p := pair{dim, string(v)}
			st, ok := stats[p]
			if !ok {
				st = &DimensionStat{
					Key:       fmt.Sprintf("%s:%s", dim, v),
					Dimension: dim,
					Variant:   string(v),
				}
				stats[p] = st
			}
			st.Total++
			switch r.Status {
			case model.StatusPassed:
				st.Passed++
			case model.StatusFailed:
				st.Failed++
			case model.StatusError:
				st.Errored++
			}
		}
	}

	out := make([]DimensionStat, 0, len(stats))
	for _, st := range stats {
		if st.Total > 0 {
			st.PassRate = float64(st.Passed) / float64(st.Total) * 100
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// FailuresOnly returns the FAILED and ERROR results in suite order.
func FailuresOnly(suite *model.TestSuite) []*model.TestResult {
	var out []*model.TestResult
	for _, r := range suite.Results() {
		if r.Status == model.StatusFailed || r.Status == model.StatusError {
			out = append(out, r)
		}
	}
	return out
}

// Reporter formats suites into text blocks.
type Reporter struct {
	// Verbose adds per-result metadata to the detailed section.
	Verbose bool
}

const rule = "======================================================================"
const thinRule = "----------------------------------------------------------------------"

// FormatSummary renders the summary block.
func (rep *Reporter) FormatSummary(suite *model.TestSuite) string {
	sum := Summarize(suite)

	lines := []string{
		"",
		rule,
		fmt.Sprintf("Test Suite: %s", sum.Name),
		rule,
		fmt.Sprintf("Total Tests: %d", sum.TotalTests),
		"",
		"Status Breakdown:",
	}

	for _, status := range model.AllStatuses() {
		count := sum.StatusCounts[status]
		if count == 0 {
			continue
		}
		pct := 0.0
		if sum.TotalTests > 0 {
			pct = float64(count) / float64(sum.TotalTests) * 100
		}
		lines = append(lines, fmt.Sprintf("  %-12s : %5d (%5.1f%%)", strings.ToUpper(string(status)), count, pct))
	}

	lines = append(lines,
		"",
		fmt.Sprintf("Pass Rate: %.1f%%", sum.PassRate),
		fmt.Sprintf("Total Execution Time: %.3fs", sum.TotalExecutionTime.Seconds()),
	)
	if sum.Completed {
		lines = append(lines, fmt.Sprintf("Suite Duration: %.3fs", sum.SuiteDuration.Seconds()))
	}
	lines = append(lines, rule, "")

	return strings.Join(lines, "\n")
}

// FormatDimensionAnalysis renders the per-dimension-value block.
func (rep *Reporter) FormatDimensionAnalysis(suite *model.TestSuite) string {
	lines := []string{
		"",
		"Dimension Analysis:",
		thinRule,
	}
	for _, st := range DimensionBreakdown(suite) {
		lines = append(lines, fmt.Sprintf("%-50s : %4d tests, %5.1f%% pass rate", st.Key, st.Total, st.PassRate))
	}
	lines = append(lines, "", thinRule, "")
	return strings.Join(lines, "\n")
}

// FormatFailures renders the failures block, or a cheerful stub when the
// suite has none.
func (rep *Reporter) FormatFailures(suite *model.TestSuite) string {
	failures := FailuresOnly(suite)
	if len(failures) == 0 {
		return "\nNo failures or errors!\n"
	}

	lines := []string{
		"",
		fmt.Sprintf("Failures and Errors (%d):", len(failures)),
		thinRule,
	}
	for i, r := range failures {
		lines = append(lines, fmt.Sprintf("\n%d. %s", i+1, r))
	}
	lines = append(lines, "", thinRule, "")
	return strings.Join(lines, "\n")
}

// FormatDetailedResults renders every result; Verbose adds metadata lines.
func (rep *Reporter) FormatDetailedResults(suite *model.TestSuite) string {
	lines := []string{
		"",
		fmt.Sprintf("Detailed Results for '%s':", suite.Name),
		thinRule,
	}
	for i, r := range suite.Results() {
		lines = append(lines, fmt.Sprintf("\n%d. %s", i+1, r))
		if rep.Verbose && len(r.Metadata) > 0 {
			lines = append(lines, "   Metadata:")
			keys := make([]string, 0, len(r.Metadata))
			for k := range r.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				lines = append(lines, fmt.Sprintf("     %s: %v", k, r.Metadata[k]))
			}
		}
	}
	lines = append(lines, "", thinRule, "")
	return strings.Join(lines, "\n")
}

// Generate assembles the full report: summary, dimension analysis
// (optional), failures, detailed results (optional), in that order.
func (rep *Reporter) Generate(suite *model.TestSuite, includeDetails, includeDimensionAnalysis bool) string {
	parts := []string{rep.FormatSummary(suite)}
	if includeDimensionAnalysis {
		parts = append(parts, rep.FormatDimensionAnalysis(suite))
	}
	parts = append(parts, rep.FormatFailures(suite))
	if includeDetails {
		parts = append(parts, rep.FormatDetailedResults(suite))
	}
	return strings.Join(parts, "\n")
}
