package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/grumpi-miner/internal/config"
	"github.com/daryltucker/grumpi-miner/internal/model"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RequestTimeout = config.Duration(5 * time.Second)
	return NewClient(cfg)
}

func TestClient_GetModels(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "llama3.2:3b"},
				{"name": "qwen2.5:7b"},
			},
		})
	}))

	models, err := c.GetModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:3b", "qwen2.5:7b"}, models)
}

func TestClient_GetModels_BadStatus(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.GetModels(context.Background())
	assert.ErrorContains(t, err, "bad status")
}

func TestClient_Generate(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2:3b", req["model"])
		assert.Equal(t, false, req["stream"])
		assert.Equal(t, "judge", req["system"])

		json.NewEncoder(w).Encode(map[string]any{
			"model":      "llama3.2:3b",
			"response":   "looks fine",
			"done":       true,
			"eval_count": 12,
		})
	}))

	resp, err := c.Generate(context.Background(), GenerateRequest{
		Model:  "llama3.2:3b",
		Prompt: "evaluate this",
		System: "judge",
	})
	require.NoError(t, err)
	assert.Equal(t, "looks fine", resp.Response)
	assert.True(t, resp.Done)
	assert.Equal(t, 12, resp.EvalCount)
}

func TestClient_Generate_APIError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Ollama reports model-side failures with status 200.
		json.NewEncoder(w).Encode(map[string]any{"error": "model not found"})
	}))

	_, err := c.Generate(context.Background(), GenerateRequest{Model: "ghost"})
	assert.ErrorContains(t, err, "model not found")
}

func TestClient_Generate_SendsBearerAuth(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"response": "ok", "done": true})
	}))
	c.APIKey = "sekrit"

	_, err := c.Generate(context.Background(), GenerateRequest{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestClient_Chat(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.2:3b",
			"message": map[string]any{"role": "assistant", "content": "hello back"},
			"done":    true,
		})
	}))

	resp, err := c.Chat(context.Background(), "llama3.2:3b", []Message{
		{Role: "user", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello back", resp.Response)
}

func TestClient_StructuredOutput(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotNil(t, req["format"], "schema must be forwarded")

		json.NewEncoder(w).Encode(map[string]any{
			"response": `{"pass": true, "reason": "coherent"}`,
			"done":     true,
		})
	}))

	var v Verdict
	err := c.StructuredOutput(context.Background(), "m", "prompt", "system", verdictSchema, &v)
	require.NoError(t, err)
	assert.True(t, v.Pass)
	assert.Equal(t, "coherent", v.Reason)
}

func TestClient_StructuredOutput_InvalidJSON(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"response": "not json", "done": true})
	}))

	var v Verdict
	err := c.StructuredOutput(context.Background(), "m", "p", "", verdictSchema, &v)
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestClient_Embeddings(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	}))

	vec, err := c.Embeddings(context.Background(), "m", "text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestRenderPrompt(t *testing.T) {
	c := model.Combination{
		"TemporalDynamics": "static",
		"FormatVariation":  "json",
	}

	prompt := RenderPrompt(c)

	assert.Contains(t, prompt, "- Format Variation: json")
	assert.Contains(t, prompt, "- Temporal Dynamics: static")
	// Dimensions are listed in canonical name order.
	assert.Less(t,
		strings.Index(prompt, "Format Variation"),
		strings.Index(prompt, "Temporal Dynamics"),
	)
}

func TestModelPredicate(t *testing.T) {
	tests := []struct {
		name     string
		verdict  string
		wantPass bool
	}{
		{"pass verdict", `{"pass": true, "reason": "ok"}`, true},
		{"fail verdict", `{"pass": false, "reason": "incompatible"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"response": tt.verdict, "done": true})
			}))

			pred := ModelPredicate(c, "llama3.2:3b", "judge", time.Second)
			passed, err := pred(model.Combination{"FormatVariation": "json"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, passed)
		})
	}
}

func TestModelPredicate_TransportErrorSurfaces(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1" // nothing listens here
	cfg.RequestTimeout = config.Duration(200 * time.Millisecond)

	pred := ModelPredicate(NewClient(cfg), "m", "", time.Second)
	_, err := pred(model.Combination{"A": "a"})
	assert.Error(t, err)
}
