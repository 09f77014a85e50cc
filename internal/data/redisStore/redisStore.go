package redisStore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SHoar/Wedding-AI/internal/config"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// NewStore connects and pings. A Redis that does not answer within the ping timeout is an error.
func NewStore(ctx context.Context, addr string, password string, db int) (*Store, error) {
	if addr == "" {
		addr = config.DefaultRedisAddr
	}
	logger := logger_i.NewLogger("Redis Store")

	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              password,
		DB:                    db,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisIOTimeout,
		WriteTimeout:          config.RedisIOTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		_ = newClient.Close()
		return nil, fmt.Errorf("redis is offline at %s: %w", addr, err)
	}

	logger.Info("Redis store connected", "addr", addr, "db", db)
	return &Store{client: newClient, logger: logger}, nil
}

// NewTestStore wraps an existing client, for use against miniredis.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("Redis Store"),
	}
}

func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (s *Store) Close() error {
	s.logger.Info("Closing Redis store")
	return s.client.Close()
}
