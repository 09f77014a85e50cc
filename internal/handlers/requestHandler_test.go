package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SHoar/Wedding-AI/internal/api"
	"github.com/SHoar/Wedding-AI/internal/cache"
	"github.com/SHoar/Wedding-AI/internal/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct{ err error }

func (f *fakeSummarizer) Summarize(ctx context.Context, md string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "Summary.", nil
}

type fakeRetriever struct{}

func (fakeRetriever) RetrievedContext(ctx context.Context, question string, k int) string { return "" }

type fakeGenerator struct {
	answer string
	err    error
	calls  atomic.Int32
}

func (f *fakeGenerator) Generate(ctx context.Context, q, s, r string) (string, error) {
	f.calls.Add(1)
	return f.answer, f.err
}

func (f *fakeGenerator) Model() string { return "gpt-5-nano" }

type fixture struct {
	handler   *Handler
	generator *fakeGenerator
}

func newFixture(missingCredential string, summarizeErr error, gen *fakeGenerator) fixture {
	if gen == nil {
		gen = &fakeGenerator{answer: "Test answer."}
	}
	svc := rag.NewService(rag.Deps{
		Summarizer:        &fakeSummarizer{err: summarizeErr},
		Retriever:         fakeRetriever{},
		Generator:         gen,
		Cache:             cache.NewMemory(10, time.Minute),
		TopK:              5,
		MissingCredential: missingCredential,
	})
	return fixture{handler: NewHandler(svc, "gpt-5-nano"), generator: gen}
}

func do(h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const askBody = `{"question": "What is the venue?", "wedding": {"id": 1, "name": "Test Wedding", "venue_name": "Rose Garden"},
	"guests": [{"name": "Jordan", "plus_one_count": 1}], "tasks": [{"title": "Book DJ", "status": "pending"}],
	"guestbook_entries": [{"guest_name": "Riley", "message": "Congrats!"}]}`

func TestHealth(t *testing.T) {
	f := newFixture("", nil, nil)
	rec := do(f.handler.Health, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.HealthResponse{Status: "ok", Model: "gpt-5-nano"}, decode[api.HealthResponse](t, rec))
}

func TestAsk(t *testing.T) {
	f := newFixture("", nil, nil)
	rec := do(f.handler.Ask, http.MethodPost, "/ask", askBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.AskResponse](t, rec)
	assert.Equal(t, "Test answer.", resp.Answer)
	assert.Equal(t, "gpt-5-nano", resp.Model)
	require.NotNil(t, resp.ContextSummary)
	assert.Equal(t, "Summary.", *resp.ContextSummary)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestAsk_CachedSecondCall(t *testing.T) {
	f := newFixture("", nil, nil)
	first := do(f.handler.Ask, http.MethodPost, "/ask", askBody)
	second := do(f.handler.Ask, http.MethodPost, "/ask", askBody)

	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), f.generator.calls.Load())
}

func TestAsk_UnprocessableRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"blank question", `{"question": "   ", "wedding": {"id": 1, "name": "W"}}`, "Question cannot be blank."},
		{"empty question", `{"question": "", "wedding": {"id": 1, "name": "W"}}`, "question: should have at least 1 character"},
		{"missing question", `{"wedding": {"id": 1, "name": "W"}}`, "question: field required"},
		{"missing wedding", `{"question": "hi"}`, "wedding: field required"},
		{"missing wedding name", `{"question": "hi", "wedding": {"id": 1}}`, "wedding.name: field required"},
		{"guest without name", `{"question": "hi", "wedding": {"id": 1, "name": "W"}, "guests": [{}]}`, "guests[0].name: field required"},
		{"question too long", `{"question": "` + strings.Repeat("a", 4001) + `", "wedding": {"id": 1, "name": "W"}}`, "question: should have at most 4000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("", nil, nil)
			rec := do(f.handler.Ask, http.MethodPost, "/ask", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, tt.detail, decode[api.ErrorResponse](t, rec).Detail)
			assert.Zero(t, f.generator.calls.Load())
		})
	}
}

func TestAsk_MalformedJSON(t *testing.T) {
	f := newFixture("", nil, nil)
	rec := do(f.handler.Ask, http.MethodPost, "/ask", `{"question": `)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.True(t, strings.HasPrefix(decode[api.ErrorResponse](t, rec).Detail, "Invalid JSON body"))
}

func TestAsk_MissingCredential(t *testing.T) {
	f := newFixture("OPENAI_API_KEY is not set.", nil, nil)

	rec := do(f.handler.Ask, http.MethodPost, "/ask", `{"question": "  ", "wedding": {"id": 1, "name": "W"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decode[api.ErrorResponse](t, rec).Detail, "OPENAI_API_KEY")

	rec = do(f.handler.AskDocs, http.MethodPost, "/ask_docs", `{"question": "What time?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAsk_UpstreamFailures(t *testing.T) {
	t.Run("summarizer error", func(t *testing.T) {
		f := newFixture("", errors.New("connection reset"), nil)
		rec := do(f.handler.Ask, http.MethodPost, "/ask", askBody)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "AI request failed: connection reset", decode[api.ErrorResponse](t, rec).Detail)
	})
	t.Run("empty answer", func(t *testing.T) {
		f := newFixture("", nil, &fakeGenerator{answer: ""})
		rec := do(f.handler.Ask, http.MethodPost, "/ask", askBody)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "AI returned an empty answer.", decode[api.ErrorResponse](t, rec).Detail)
	})
}

func TestAskDocs(t *testing.T) {
	f := newFixture("", nil, nil)
	rec := do(f.handler.AskDocs, http.MethodPost, "/ask_docs", `{"question": "What time is the ceremony?"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.AskResponse](t, rec)
	assert.Equal(t, "Test answer.", resp.Answer)
	require.NotNil(t, resp.ContextSummary)
	assert.Contains(t, strings.ToLower(*resp.ContextSummary), "documentation")
}

func TestAskDocs_Unprocessable(t *testing.T) {
	f := newFixture("", nil, nil)

	rec := do(f.handler.AskDocs, http.MethodPost, "/ask_docs", `{"question": "  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Question cannot be blank.", decode[api.ErrorResponse](t, rec).Detail)

	rec = do(f.handler.AskDocs, http.MethodPost, "/ask_docs", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAskDocs_BodyTooLarge(t *testing.T) {
	f := newFixture("", nil, nil)
	body := `{"question": "` + strings.Repeat("a", 2<<20) + `"}`

	rec := do(f.handler.AskDocs, http.MethodPost, "/ask_docs", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
