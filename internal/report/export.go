/*
PURPOSE:
  Serializable, order-preserving form of a TestSuite for external transport
  or persistence. Round-trips all informational content through
  encoding/json; no lossy summarization.

REQUIREMENTS:
  User-specified:
  - Must carry name, timestamps, summary, and for every result the full
    dimension->variant mapping, status, elapsed seconds, error message,
    metadata, and result timestamp.

  Implementation-discovered:
  - end_time and suite_duration_s are JSON null while the suite is open;
    pointers model the absent values.
  - Durations are exported as seconds (float), matching the report text,
    with time.Duration kept off the wire.

ARCHITECTURE INTEGRATION:
  - Reads: model.TestSuite
  - Consumed by: internal/output (file writers), any external transport

ERROR HANDLING:
  - None; Export is a pure projection.

IMPLEMENTATION RULES:
  - Field changes here are wire-format changes; coordinate with consumers.

USAGE:
  doc := report.Export(suite)
  data, err := json.MarshalIndent(doc, "", "  ")

RELATED FILES:
  - internal/report/report.go - Summary the export embeds.
  - internal/output/json.go - Writes exports to disk.

MAINTENANCE:
  - Add fields to both ResultExport and internal/output/csv.go together.
*/

package report

import (
	"time"

	"github.com/daryltucker/grumpi-miner/internal/model"
)

// SuiteExport is the complete serializable representation of a suite.
type SuiteExport struct {
	Name      string         `json:"name"`
	ID        string         `json:"id"`
	StartTime string         `json:"start_time"`
	EndTime   *string        `json:"end_time"`
	Summary   SummaryExport  `json:"summary"`
	Results   []ResultExport `json:"results"`
}

// SummaryExport is the JSON form of Summary.
type SummaryExport struct {
	Name               string         `json:"name"`
	TotalTests         int            `json:"total_tests"`
	StatusCounts       map[string]int `json:"status_counts"`
	TotalExecutionTime float64        `json:"total_execution_time_s"`
	SuiteDuration      *float64       `json:"suite_duration_s"`
	PassRate           float64        `json:"pass_rate"`
}

// ResultExport is the JSON form of one TestResult.
type ResultExport struct {
	Combination   map[string]string `json:"combination"`
	Key           string            `json:"key"`
	Status        string            `json:"status"`
	ExecutionTime float64           `json:"execution_time_s"`
	Message       string            `json:"error_message,omitempty"`
	Metadata      map[string]any    `json:"metadata"`
	Timestamp     string            `json:"timestamp"`
}

// Export projects the suite into its serializable form, preserving result
// order.
func Export(suite *model.TestSuite) *SuiteExport {
	sum := Summarize(suite)

	counts := make(map[string]int, len(sum.StatusCounts))
	for status, n := range sum.StatusCounts {
		counts[string(status)] = n
	}

	se := SummaryExport{
		Name:               sum.Name,
		TotalTests:         sum.TotalTests,
		StatusCounts:       counts,
		TotalExecutionTime: sum.TotalExecutionTime.Seconds(),
		PassRate:           sum.PassRate,
	}
	doc := &SuiteExport{
		Name:      suite.Name,
		ID:        suite.ID,
		StartTime: suite.StartTime.Format(time.RFC3339Nano),
	}
	if sum.Completed {
		d := sum.SuiteDuration.Seconds()
		se.SuiteDuration = &d
		end := suite.EndTime().Format(time.RFC3339Nano)
		doc.EndTime = &end
	}
	doc.Summary = se

	results := suite.Results()
	doc.Results = make([]ResultExport, 0, len(results))
	for _, r := range results {
		doc.Results = append(doc.Results, ExportResult(r))
	}
	return doc
}

// ExportResult projects a single result into its serializable form.
func ExportResult(r *model.TestResult) ResultExport {
	combo := make(map[string]string, len(r.Combination))
	for dim, v := range r.Combination {
		combo[dim] = string(v)
	}
	meta := r.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	return ResultExport{
		Combination:   combo,
		Key:           r.Combination.Key(),
		Status:        string(r.Status),
		ExecutionTime: r.Duration.Seconds(),
		Message:       r.Message,
		Metadata:      meta,
		Timestamp:     r.Timestamp.Format(time.RFC3339Nano),
	}
}
