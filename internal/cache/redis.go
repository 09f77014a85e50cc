package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/internal/data/redisStore"
	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
	"github.com/SHoar/Wedding-AI/internal/metrics"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

// Redis shares answers between replicas. Errors are logged and read as misses.
type Redis struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

func NewRedis(store *redisStore.Store, ttl time.Duration) *Redis {
	return &Redis{
		store:  store,
		ttl:    ttl,
		logger: logger_i.NewLogger("Redis Cache"),
	}
}

// redisKey hashes the logical key so long questions stay short on the wire.
func redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return config.CacheRedisPrefix + hex.EncodeToString(sum[:])
}

func (r *Redis) Get(ctx context.Context, key string) (commonModels.Answer, bool) {
	var value commonModels.Answer

	raw, err := r.store.Get(ctx, redisKey(key))
	if err != nil {
		if !r.store.IsNil(err) {
			r.logger.WithTrace(ctx).Warn("Cache read failed", "error", err)
		}
		metrics.CountCacheLookup(false)
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		r.logger.WithTrace(ctx).Warn("Discarding unreadable cache entry", "error", err)
		metrics.CountCacheLookup(false)
		return commonModels.Answer{}, false
	}

	metrics.CountCacheLookup(true)
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value commonModels.Answer) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.WithTrace(ctx).Error("Could not encode answer for cache", "error", err)
		return
	}
	if err := r.store.Set(ctx, redisKey(key), data, r.ttl); err != nil {
		r.logger.WithTrace(ctx).Warn("Cache write failed", "error", err)
	}
}
