/*
PURPOSE:
  Bridges the Ollama client into the executor's predicate boundary: renders
  a combination as a prompt, asks a model for a structured pass/fail
  verdict, and maps transport failures to predicate errors.

REQUIREMENTS:
  User-specified:
  - The predicate is an opaque single-method capability injected into the
    executor; the core never knows what "valid" means.

  Implementation-discovered:
  - A JSON-schema-constrained verdict keeps parsing deterministic; free-text
    answers were too fragile to grade.

ARCHITECTURE INTEGRATION:
  - Uses: internal/engine/client.go
  - Produces: executor.Predicate consumed by internal/cli

ERROR HANDLING:
  - Client errors return from the predicate as errors; the executor converts
    them to ERROR results without aborting the batch.

USAGE:
  pred := engine.ModelPredicate(client, "llama3.2:3b", cfg.SystemPrompt, cfg.RequestTimeout)

RELATED FILES:
  - internal/executor/executor.go
  - internal/engine/client.go

MAINTENANCE:
  - Keep the verdict schema in sync with the Verdict struct.
*/

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daryltucker/grumpi-miner/internal/dimension"
	"github.com/daryltucker/grumpi-miner/internal/executor"
	"github.com/daryltucker/grumpi-miner/internal/model"
)

// Verdict is the structured answer a judging model must produce.
type Verdict struct {
	Pass   bool   `json:"pass"`
	Reason string `json:"reason"`
}

// verdictSchema constrains the model's output to a Verdict.
var verdictSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "pass": {"type": "boolean"},
    "reason": {"type": "string"}
  },
  "required": ["pass", "reason"],
  "additionalProperties": false
}`)

// RenderPrompt describes a combination as configuration requirements for
// the judging model, one line per dimension in canonical key order.
func RenderPrompt(c model.Combination) string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Evaluate whether the following configuration dimensions can operate together coherently:\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", dimension.DisplayName(name), c[name])
	}
	b.WriteString("\nAnswer with a JSON verdict.")
	return b.String()
}

// ModelPredicate adapts a client and model into an executor.Predicate. Each
// invocation renders the combination, requests a schema-constrained verdict
// within timeout, and maps pass/fail accordingly.
func ModelPredicate(c *Client, modelName, system string, timeout time.Duration) executor.Predicate {
	return func(combo model.Combination) (bool, error) {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var v Verdict
		if err := c.StructuredOutput(ctx, modelName, RenderPrompt(combo), system, verdictSchema, &v); err != nil {
			return false, err
		}
		return v.Pass, nil
	}
}
