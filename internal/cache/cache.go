package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/data/redisStore"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

const keySeparator = "\x1f"

// ResponseCache stores finished answers. Implementations are safe for concurrent use.
type ResponseCache interface {
	Get(ctx context.Context, key string) (commonModels.Answer, bool)
	Set(ctx context.Context, key string, value commonModels.Answer)
}

// Fingerprint is the first 32 hex characters of the sha256 of the planning markdown.
func Fingerprint(contextMarkdown string) string {
	sum := sha256.Sum256([]byte(contextMarkdown))
	return hex.EncodeToString(sum[:])[:32]
}

func AskKey(question, contextMarkdown string) string {
	return "ask" + keySeparator + strings.TrimSpace(question) + keySeparator + Fingerprint(contextMarkdown)
}

// DocsKey depends on the question only; answers survive a reindex until they expire.
func DocsKey(question string) string {
	return "docs" + keySeparator + strings.TrimSpace(question)
}

// FromSettings builds the configured cache. It returns nil when caching is off.
// A redis backend that cannot be reached falls back to memory. The returned close func is never nil.
func FromSettings(ctx context.Context, s config.Settings) (ResponseCache, func() error) {
	noop := func() error { return nil }
	ttl := s.CacheTTL()
	if ttl <= 0 {
		return nil, noop
	}

	logger := logger_i.NewLogger("Response Cache")
	if s.CacheBackend == config.CacheBackendRedis {
		store, err := redisStore.NewStore(ctx, s.RedisAddr, s.RedisPassword, config.CacheRedisDB)
		if err == nil {
			logger.Info("Using redis response cache", "ttl", ttl)
			return NewRedis(store, ttl), store.Close
		}
		logger.Warn("Redis unavailable, falling back to memory cache", "error", err)
	}

	logger.Info("Using memory response cache", "ttl", ttl, "size", config.CacheMaxEntries)
	return NewMemory(config.CacheMaxEntries, ttl), noop
}
