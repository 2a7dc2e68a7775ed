/*
PURPOSE:
  HTTP client for Ollama (local or cloud). Supplies the model responses that
  model-backed predicates evaluate: generation, chat, embeddings, and
  schema-constrained structured outputs, plus model discovery.

REQUIREMENTS:
  User-specified:
  - Talk the native Ollama API (/api/tags, /api/generate, /api/chat,
    /api/embeddings).
  - Bearer auth when an API key is configured (cloud hosts).

  Implementation-discovered:
  - Needs http.Client with a timeout; a hanging generate call must not wedge
    a whole matrix run.
  - Ollama reports API-side failures in an "error" JSON field with status
    200; surface those as Go errors.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (list-models), internal/engine/predicate.go
  - Uses: internal/config

ERROR HANDLING:
  - Network, status, and decode failures return wrapped errors. Callers in
    the executor path convert them into ERROR results.

IMPLEMENTATION RULES:
  - Use net/http with context on every request.
  - Non-streaming only; matrix predicates need the final verdict, not
    chunks.

USAGE:
  c := engine.NewClient(cfg)
  resp, err := c.Generate(ctx, engine.GenerateRequest{Model: "llama3.2:3b", Prompt: "..."})

RELATED FILES:
  - internal/engine/predicate.go - Adapts the client into a Predicate.
  - internal/config/config.go

MAINTENANCE:
  - Update endpoints if the Ollama API changes.
*/

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/daryltucker/grumpi-miner/internal/config"
)

// Client talks to one Ollama host.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewClient builds a client from config, honoring the configured request
// timeout.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		HTTP:    &http.Client{Timeout: cfg.RequestTimeout.Duration()},
	}
}

// post sends a JSON body and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama %s: bad status %s: %s", path, resp.Status, bytes.TrimSpace(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ollama %s: decode response: %w", path, err)
	}
	return nil
}

// GetModels returns the model names available on the host.
func (c *Client) GetModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama /api/tags: bad status %s", resp.Status)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var names []string
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// GenerateRequest parameterizes one /api/generate call.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	// Format is "json" or a JSON schema for structured outputs.
	Format  json.RawMessage `json:"format,omitempty"`
	Options map[string]any  `json:"options,omitempty"`
	Stream  bool            `json:"stream"`
}

// GenerateResponse is the non-streaming /api/generate answer.
type GenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	TotalDuration   int64  `json:"total_duration"` // ns
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Err             string `json:"error"`
}

// Generate runs a non-streaming completion.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	req.Stream = false
	var resp GenerateResponse
	if err := c.post(ctx, "/api/generate", req, &resp); err != nil {
		return GenerateResponse{}, err
	}
	if resp.Err != "" {
		return GenerateResponse{}, fmt.Errorf("ollama api error: %s", resp.Err)
	}
	return resp, nil
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat runs a non-streaming chat completion over the given history.
func (c *Client) Chat(ctx context.Context, modelName string, messages []Message) (GenerateResponse, error) {
	payload := struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
		Stream   bool      `json:"stream"`
	}{Model: modelName, Messages: messages}

	var raw struct {
		Model   string `json:"model"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Done            bool   `json:"done"`
		TotalDuration   int64  `json:"total_duration"`
		PromptEvalCount int    `json:"prompt_eval_count"`
		EvalCount       int    `json:"eval_count"`
		Err             string `json:"error"`
	}
	if err := c.post(ctx, "/api/chat", payload, &raw); err != nil {
		return GenerateResponse{}, err
	}
	if raw.Err != "" {
		return GenerateResponse{}, fmt.Errorf("ollama api error: %s", raw.Err)
	}
	return GenerateResponse{
		Model:           raw.Model,
		Response:        raw.Message.Content,
		Done:            raw.Done,
		TotalDuration:   raw.TotalDuration,
		PromptEvalCount: raw.PromptEvalCount,
		EvalCount:       raw.EvalCount,
	}, nil
}

// StructuredOutput generates a completion constrained by a JSON schema and
// decodes the model's JSON answer into out.
func (c *Client) StructuredOutput(ctx context.Context, modelName, prompt, system string, schema json.RawMessage, out any) error {
	resp, err := c.Generate(ctx, GenerateRequest{
		Model:  modelName,
		Prompt: prompt,
		System: system,
		Format: schema,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(resp.Response), out); err != nil {
		return fmt.Errorf("structured output: model returned invalid JSON: %w", err)
	}
	return nil
}

// Embeddings returns the embedding vector for the prompt.
func (c *Client) Embeddings(ctx context.Context, modelName, prompt string) ([]float64, error) {
	payload := struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}{Model: modelName, Prompt: prompt}

	var raw struct {
		Embedding []float64 `json:"embedding"`
		Err       string    `json:"error"`
	}
	if err := c.post(ctx, "/api/embeddings", payload, &raw); err != nil {
		return nil, err
	}
	if raw.Err != "" {
		return nil, fmt.Errorf("ollama api error: %s", raw.Err)
	}
	return raw.Embedding, nil
}
