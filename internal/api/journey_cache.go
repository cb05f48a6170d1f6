package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/rentops/internal/pkg/logger"
	"github.com/ignite/rentops/internal/service/journey"
)

// JourneyCache is a best-effort Redis cache for assembled journeys. The
// journey engine itself never caches; this layer owns staleness. A nil
// *JourneyCache is valid and disables caching, so callers never branch.
//
// Cache failures degrade to a recompute, they are logged and never surfaced.
type JourneyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJourneyCache wraps a Redis client with the given TTL.
func NewJourneyCache(client *redis.Client, ttl time.Duration) *JourneyCache {
	if client == nil {
		return nil
	}
	return &JourneyCache{client: client, ttl: ttl}
}

// Get returns a cached journey for the exact option set, if present.
func (c *JourneyCache) Get(ctx context.Context, opts journey.Options) (*journey.TenantJourneyData, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, cacheKey(opts)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("journey cache read failed", "tenant_id", opts.TenantID, "error", err)
		return nil, false
	}

	var data journey.TenantJourneyData
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Warn("journey cache entry corrupt, discarding", "tenant_id", opts.TenantID, "error", err)
		return nil, false
	}
	return &data, true
}

// Set stores an assembled journey under its option set.
func (c *JourneyCache) Set(ctx context.Context, opts journey.Options, data *journey.TenantJourneyData) {
	if c == nil || data == nil {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		logger.Warn("journey cache encode failed", "tenant_id", opts.TenantID, "error", err)
		return
	}
	if err := c.client.Set(ctx, cacheKey(opts), raw, c.ttl).Err(); err != nil {
		logger.Warn("journey cache write failed", "tenant_id", opts.TenantID, "error", err)
	}
}

// cacheKey derives a stable key from the full option set, so differently
// filtered views of the same tenant never collide.
func cacheKey(opts journey.Options) string {
	payload, _ := json.Marshal(struct {
		WorkspaceID string                  `json:"w"`
		TenantID    string                  `json:"t"`
		Limit       int                     `json:"l"`
		Offset      int                     `json:"o"`
		Categories  []journey.EventCategory `json:"c"`
		DateFrom    *time.Time              `json:"df"`
		DateTo      *time.Time              `json:"dt"`
		Analytics   bool                    `json:"a"`
		Financial   bool                    `json:"f"`
		Insights    bool                    `json:"i"`
		Visitors    bool                    `json:"v"`
	}{
		opts.WorkspaceID, opts.TenantID,
		opts.EventsLimit, opts.EventsOffset,
		opts.EventCategories, opts.DateFrom, opts.DateTo,
		opts.IncludeAnalytics, opts.IncludeFinancial,
		opts.IncludeInsights, opts.IncludeVisitors,
	})
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("journey:%s:%s", opts.TenantID, hex.EncodeToString(sum[:16]))
}
