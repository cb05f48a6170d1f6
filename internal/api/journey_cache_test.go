package api

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/rentops/internal/service/journey"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, func() {
		client.Close()
		mr.Close()
	}
}

func TestJourneyCache_RoundTrip(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewJourneyCache(client, time.Minute)
	opts := journey.DefaultOptions("ws-1", "t-1")

	if _, ok := cache.Get(context.Background(), opts); ok {
		t.Fatal("empty cache should miss")
	}

	data := &journey.TenantJourneyData{
		Tenant:      journey.TenantSummary{ID: "t-1", Name: "Ravi Kumar"},
		TotalEvents: 4,
		GeneratedAt: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	cache.Set(context.Background(), opts, data)

	got, ok := cache.Get(context.Background(), opts)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Tenant.Name != "Ravi Kumar" || got.TotalEvents != 4 {
		t.Errorf("cached data = %+v", got)
	}
}

func TestJourneyCache_KeyedByOptions(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewJourneyCache(client, time.Minute)
	opts := journey.DefaultOptions("ws-1", "t-1")
	cache.Set(context.Background(), opts, &journey.TenantJourneyData{TotalEvents: 4})

	// A differently filtered view must not hit the same entry.
	filtered := opts
	filtered.EventCategories = []journey.EventCategory{journey.CategoryFinancial}
	if _, ok := cache.Get(context.Background(), filtered); ok {
		t.Error("different option set must miss")
	}

	other := opts
	other.TenantID = "t-2"
	if _, ok := cache.Get(context.Background(), other); ok {
		t.Error("different tenant must miss")
	}
}

func TestJourneyCache_NilSafe(t *testing.T) {
	var cache *JourneyCache

	// A nil cache is a disabled cache, not a crash.
	if _, ok := cache.Get(context.Background(), journey.Options{}); ok {
		t.Error("nil cache should always miss")
	}
	cache.Set(context.Background(), journey.Options{}, &journey.TenantJourneyData{})

	if NewJourneyCache(nil, time.Minute) != nil {
		t.Error("NewJourneyCache(nil) should return a nil cache")
	}
}

func TestJourneyCache_DegradesWhenRedisDown(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	cleanup() // kill redis immediately

	cache := NewJourneyCache(client, time.Minute)
	opts := journey.DefaultOptions("ws-1", "t-1")

	// Reads and writes fail quietly; callers just recompute.
	if _, ok := cache.Get(context.Background(), opts); ok {
		t.Error("dead redis should miss, not panic")
	}
	cache.Set(context.Background(), opts, &journey.TenantJourneyData{})
}
