package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimitra/agrimitra/internal/llm"
	"github.com/agrimitra/agrimitra/internal/schema"
)

func anthropicServer(t *testing.T, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if seen != nil {
			require.NoError(t, json.Unmarshal(body, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",`+
			`"content":`+content+`,"stop_reason":"end_turn","stop_sequence":null,`+
			`"usage":{"input_tokens":10,"output_tokens":20}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

var marketSchema = schema.Object("market",
	schema.P("price", schema.String("price")),
)

func TestAnthropicToolUseAnswer(t *testing.T) {
	var seen map[string]any
	srv := anthropicServer(t, `[{"type":"tool_use","id":"tu_1","name":"submit_market_price","input":{"price":"2000"}}]`, &seen)

	c := llm.NewAnthropicClient("sk-test", "claude-test", srv.URL, 512)
	resp, err := c.Generate(context.Background(), llm.Request{
		Flow:         "market-price",
		System:       "answer in JSON",
		Prompt:       "price of onions",
		OutputSchema: marketSchema,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"2000"}`, string(resp.JSON))
	assert.Equal(t, "anthropic", resp.Provider)

	tools, ok := seen["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, "submit_market_price", tools[0].(map[string]any)["name"])
}

func TestAnthropicTextAnswer(t *testing.T) {
	srv := anthropicServer(t, `[{"type":"text","text":"`+"```json\\n{\\\"price\\\":\\\"15\\\"}\\n```"+`"}]`, nil)

	c := llm.NewAnthropicClient("sk-test", "claude-test", srv.URL, 512)
	resp, err := c.Generate(context.Background(), llm.Request{Flow: "market-price", Prompt: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"15"}`, string(resp.JSON))
}

func TestAnthropicImageIsSent(t *testing.T) {
	var seen map[string]any
	srv := anthropicServer(t, `[{"type":"text","text":"{\"ok\":true}"}]`, &seen)

	c := llm.NewAnthropicClient("sk-test", "claude-test", srv.URL, 512)
	_, err := c.Generate(context.Background(), llm.Request{
		Flow:   "disease-detection",
		Prompt: "diagnose",
		Media:  []llm.Media{{MIMEType: "image/jpeg", Data: []byte("jpeg")}},
	})
	require.NoError(t, err)

	msgs := seen["messages"].([]any)
	blocks := msgs[0].(map[string]any)["content"].([]any)
	require.Len(t, blocks, 2)
	img := blocks[0].(map[string]any)
	assert.Equal(t, "image", img["type"])
	assert.Equal(t, "image/jpeg", img["source"].(map[string]any)["media_type"])
}

func TestAnthropicNoJSON(t *testing.T) {
	srv := anthropicServer(t, `[{"type":"text","text":"I cannot help with that."}]`, nil)

	c := llm.NewAnthropicClient("sk-test", "claude-test", srv.URL, 512)
	_, err := c.Generate(context.Background(), llm.Request{Flow: "market-price", Prompt: "p"})
	assert.ErrorIs(t, err, llm.ErrNoJSON)
}

func TestAnthropicHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)
	}))
	defer srv.Close()

	c := llm.NewAnthropicClient("sk-test", "claude-test", srv.URL, 512)
	_, err := c.Generate(context.Background(), llm.Request{Flow: "market-price", Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM call failed")
}
