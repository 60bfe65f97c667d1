// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// AvailabilityCachePrefix is the prefix for cached availability responses.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL keeps cached slot lists short-lived; they go stale the
// moment a booking lands.
const AvailabilityCacheTTL = 30 * time.Second
