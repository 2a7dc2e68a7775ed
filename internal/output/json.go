/*
PURPOSE:
  Writes test results to a JSON Lines file (NDJSON) as they complete, and
  whole serialized suites to plain JSON documents.

REQUIREMENTS:
  User-specified:
  - Machine-parseable output of the complete suite.

  Implementation-discovered:
  - JSON Lines is append-friendly for streaming per-result writes; the
    full-suite document is written once at the end of a run.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Consumes: model.TestResult via report.ExportResult, report.SuiteExport

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.
  - Thread-safe per-result writes.

USAGE:
  w, err := output.NewJSONWriter("results.jsonl")
  w.Write(result)
  w.Close()
  err = output.WriteSuiteJSON("suite.json", report.Export(suite))

RELATED FILES:
  - internal/report/export.go

MAINTENANCE:
  - Wire-format changes live in internal/report/export.go, not here.
*/

package output

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/daryltucker/grumpi-miner/internal/model"
	"github.com/daryltucker/grumpi-miner/internal/report"
)

// JSONWriter handles writing results to a JSON Lines file.
type JSONWriter struct {
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Write writes a single result as a JSON line.
func (jw *JSONWriter) Write(r *model.TestResult) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	return jw.encoder.Encode(report.ExportResult(r))
}

// Close closes the underlying file.
func (jw *JSONWriter) Close() error {
	return jw.file.Close()
}

// WriteSuiteJSON writes a serialized suite as one indented JSON document.
func WriteSuiteJSON(path string, doc *report.SuiteExport) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
