// Package cache fronts hot read paths with Redis. Finalized reports and admin
// stats are the main tenants; everything here is a throwaway copy of data
// owned elsewhere.
package cache

import (
	"context"
	"fmt"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ReportKey is the cache key for a finalized interview report.
func ReportKey(sessionID string) string {
	return fmt.Sprintf("interview:report:%s", sessionID)
}

// StatsKey caches the admin dashboard aggregates.
const StatsKey = "interview:admin:stats"
