package redisStore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTestStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || got != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := store.Del(ctx, "k"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !store.IsNil(err) {
		t.Errorf("expected redis.Nil after delete, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNewStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewStore(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), "ping", "pong", 0); err != nil {
		t.Errorf("Set failed: %v", err)
	}
}

func TestNewStore_Offline(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewStore(context.Background(), addr, "", 0); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
}
