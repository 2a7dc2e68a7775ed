/*
PURPOSE:
  Writes test results to a CSV file, one row per executed combination.
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - CSV output for spreadsheet-side analysis of pass rates.

  Implementation-discovered:
  - Flush after every write (crash resilience during long matrix runs).
  - Mutex: parallel batches may stream results through a callback.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: model.TestResult

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Keep the column order in sync with header.

USAGE:
  w, err := output.NewCSVWriter("results.csv", "suite name")
  w.Write(result)
  w.Close()

RELATED FILES:
  - internal/model/types.go
  - internal/report/export.go - The JSON counterpart.

MAINTENANCE:
  - Update Write() mapping when TestResult changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/daryltucker/grumpi-miner/internal/model"
)

// CSVWriter handles writing results to a CSV file.
type CSVWriter struct {
	suite  string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a writer for the given suite name, overwriting the
// file if it exists.
func NewCSVWriter(path, suiteName string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	header := []string{
		"suite", "key", "size", "status", "execution_time_s", "error_message", "timestamp",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{suite: suiteName, file: f, writer: w}, nil
}

// Write writes a single result row. It is thread-safe.
func (cw *CSVWriter) Write(r *model.TestResult) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		cw.suite,
		r.Combination.Key(),
		fmt.Sprintf("%d", r.Combination.Size()),
		string(r.Status),
		fmt.Sprintf("%.4f", r.Duration.Seconds()),
		r.Message,
		r.Timestamp.Format(time.RFC3339),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
