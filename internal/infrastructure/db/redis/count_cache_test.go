package redis

import (
	"context"
	"os"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *CountCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{Addr: addr, DB: 15})
	if err != nil {
		t.Skipf("skipping Redis integration tests: %v", err)
	}
	if err := client.Del(ctx, countKey).Err(); err != nil {
		t.Fatalf("clearing count key: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Del(context.Background(), countKey).Err()
		_ = client.Close()
	})

	return NewCountCache(client)
}

func TestCountCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected empty cache, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, 42); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	n, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || n != 42 {
		t.Fatalf("expected cached 42, got ok=%v n=%d", ok, n)
	}
}

func TestCountCache_Invalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, 7); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected cache to be empty after invalidate, got ok=%v err=%v", ok, err)
	}
}
