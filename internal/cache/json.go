package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TenantKeyPrefix = "tenant:%s"

	TenantTTL = 10 * time.Minute
)

// TenantKey is the cache key for a tenant looked up by slug.
func TenantKey(slug string) string {
	return fmt.Sprintf(TenantKeyPrefix, slug)
}

// GetJSON loads a cached value into dest. Returns false on a miss or when
// Redis is unavailable.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores a value with the given TTL. Failures are ignored; the cache
// is an optimization, not a source of truth.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Invalidate removes a cached key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// Healthy reports whether the client is configured and reachable.
func Healthy(ctx context.Context) bool {
	return client != nil && client.Ping(ctx).Err() == nil
}
