package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/bcf-portal/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestSetNXClaimsOnce(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.OrderIDKey("BCF-123456")

	ok, err := client.SetNX(ctx, key, "owner-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first claim to succeed, ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, key, "owner-2", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second claim to fail, ok=%v err=%v", ok, err)
	}
	got, err := client.Get(ctx, key)
	if err != nil || got != "owner-1" {
		t.Fatalf("expected original owner, got %q err=%v", got, err)
	}
}

func TestDelRemovesKey(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	if _, err := client.SetNX(ctx, "k", "v", 0); err != nil {
		t.Fatalf("setnx: %v", err)
	}
	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, "k"); !IsMiss(err) {
		t.Fatalf("expected a miss, got %v", err)
	}
}

func TestSetReplacesClaim(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	if _, err := client.SetNX(ctx, "k", "pending", time.Minute); err != nil {
		t.Fatalf("setnx: %v", err)
	}
	if err := client.Set(ctx, "k", "done", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := client.Get(ctx, "k"); got != "done" {
		t.Fatalf("expected claim replaced, got %q", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	if ErrNotInitialized == nil {
		t.Fatal("ErrNotInitialized must be a non-nil sentinel")
	}
	client := &Client{}
	if _, err := client.Get(context.Background(), "k"); err == nil || !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from Get, got %v", err)
	}
	if _, err := client.SetNX(context.Background(), "k", "v", 0); err == nil || !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := client.Set(context.Background(), "k", "v", 0); err == nil || !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil raw should be a no-op: %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "bcf:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.OrderIDKey("BCF-000001"); got != "bcf:order_id:BCF-000001" {
		t.Fatalf("unexpected order id key %s", got)
	}
	if got := client.IdempotencyKey("scope", ""); got != "bcf:idempotency:scope" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 {
		t.Fatalf("unexpected options db=%d pool=%d", opts.DB, opts.PoolSize)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
