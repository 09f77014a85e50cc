package cache

import (
	"context"
	"sync"
	"time"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is a size and TTL bounded LRU held in process.
type Memory struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, commonModels.Answer]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: expirable.NewLRU[string, commonModels.Answer](size, nil, ttl)}
}

func (m *Memory) Get(ctx context.Context, key string) (commonModels.Answer, bool) {
	m.mu.Lock()
	value, ok := m.lru.Get(key)
	m.mu.Unlock()

	metrics.CountCacheLookup(ok)
	return value, ok
}

func (m *Memory) Set(ctx context.Context, key string, value commonModels.Answer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Add(key, value)
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
