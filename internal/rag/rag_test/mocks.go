package rag_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
)

// MockSummarizer implements rag.Summarizer
type MockSummarizer struct {
	OnSummarize func(ctx context.Context, contextMarkdown string) (string, error)
	Calls       atomic.Int32
}

func (m *MockSummarizer) Summarize(ctx context.Context, md string) (string, error) {
	m.Calls.Add(1)
	if m.OnSummarize != nil {
		return m.OnSummarize(ctx, md)
	}
	return "Summary.", nil
}

// MockRetriever implements rag.Retriever
type MockRetriever struct {
	OnRetrievedContext func(ctx context.Context, question string, k int) string
	Calls              atomic.Int32

	mu        sync.Mutex
	Questions []string
	Ks        []int
}

func (m *MockRetriever) RetrievedContext(ctx context.Context, question string, k int) string {
	m.Calls.Add(1)
	m.mu.Lock()
	m.Questions = append(m.Questions, question)
	m.Ks = append(m.Ks, k)
	m.mu.Unlock()
	if m.OnRetrievedContext != nil {
		return m.OnRetrievedContext(ctx, question, k)
	}
	return ""
}

// MockGenerator implements rag.Generator
type MockGenerator struct {
	OnGenerate func(ctx context.Context, question, summary, retrieved string) (string, error)
	Calls      atomic.Int32

	LastSummary   string
	LastRetrieved string
}

func (m *MockGenerator) Generate(ctx context.Context, q, summary, retrieved string) (string, error) {
	m.Calls.Add(1)
	m.LastSummary = summary
	m.LastRetrieved = retrieved
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, summary, retrieved)
	}
	return "Test answer.", nil
}

func (m *MockGenerator) Model() string { return "gpt-5-nano" }

// MockCache implements cache.ResponseCache
type MockCache struct {
	mu      sync.Mutex
	entries map[string]commonModels.Answer
}

func NewMockCache() *MockCache {
	return &MockCache{entries: map[string]commonModels.Answer{}}
}

func (m *MockCache) Get(ctx context.Context, key string) (commonModels.Answer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.entries[key]
	return a, ok
}

func (m *MockCache) Set(ctx context.Context, key string, value commonModels.Answer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
