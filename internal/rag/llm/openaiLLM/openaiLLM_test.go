package openaiLLM

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SHoar/Wedding-AI/internal/rag/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-5-nano",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"logprobs":      nil,
			"message":       map[string]any{"role": "assistant", "content": content, "refusal": nil},
		}},
	})
	return string(body)
}

func TestComplete_SendsPromptAndReturnsText(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody("Ceremony starts at 4pm."))
	}))
	defer srv.Close()

	p := NewClient(Options{APIKey: "sk-test", Model: "gpt-5-nano", BaseURL: srv.URL, HTTPClient: srv.Client()})
	zero := float32(0)
	got, err := p.Complete(context.Background(), llm.Request{System: "sys", User: "when?", Temperature: &zero})

	require.NoError(t, err)
	assert.Equal(t, llm.KindText, got.Kind())
	assert.Equal(t, "Ceremony starts at 4pm.", got.Normalize())
	assert.Equal(t, "gpt-5-nano", p.Model())

	assert.Equal(t, "gpt-5-nano", captured["model"])
	assert.EqualValues(t, 0, captured["temperature"])
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "when?", messages[1].(map[string]any)["content"])
}

func TestComplete_EmptyContentIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody(""))
	}))
	defer srv.Close()

	p := NewClient(Options{APIKey: "sk-test", Model: "m", BaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := p.Complete(context.Background(), llm.Request{System: "s", User: "u"})

	require.NoError(t, err)
	assert.Equal(t, llm.KindAbsent, got.Kind())
	assert.Equal(t, "", got.Normalize())
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error","code":"invalid_api_key","param":null}}`)
	}))
	defer srv.Close()

	p := NewClient(Options{APIKey: "sk-bad", Model: "m", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := p.Complete(context.Background(), llm.Request{System: "s", User: "u"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
