package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"caresched/models"
	"caresched/utils"

	"github.com/go-redis/redis/v8"
)

// Cached availability is keyed on a per-provider version counter. Bumping the
// counter on any booking or schedule mutation orphans every cached window for
// that provider at once, so no key scanning is needed.

func versionKey(providerID string) string {
	return utils.AvailabilityCachePrefix + "ver:" + providerID
}

func cacheKey(providerID string, version int64, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d:%d", utils.AvailabilityCachePrefix, providerID, version, from.Unix(), to.Unix())
}

func providerCacheVersion(ctx context.Context, rdb *redis.Client, providerID string) int64 {
	ver, err := rdb.Get(ctx, versionKey(providerID)).Int64()
	if err != nil {
		return 0
	}
	return ver
}

// BumpProviderCacheVersion invalidates all cached availability for a
// provider. Called after booking creation/cancellation and schedule updates.
func BumpProviderCacheVersion(ctx context.Context, rdb *redis.Client, providerID string) {
	if rdb == nil {
		return
	}
	// Best effort: a failed bump only means a stale read until the TTL.
	_ = rdb.Incr(ctx, versionKey(providerID)).Err()
}

func (e *DefaultAvailabilityEngine) cacheGet(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, bool) {
	if e.Cache == nil {
		return nil, false
	}
	ver := providerCacheVersion(ctx, e.Cache, providerID)
	data, err := e.Cache.Get(ctx, cacheKey(providerID, ver, from, to)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []models.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (e *DefaultAvailabilityEngine) cacheSet(ctx context.Context, providerID string, from, to time.Time, slots []models.Slot) {
	if e.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	ver := providerCacheVersion(ctx, e.Cache, providerID)
	_ = e.Cache.Set(ctx, cacheKey(providerID, ver, from, to), data, utils.AvailabilityCacheTTL).Err()
}
