package middleware

import (
	"context"
	"net/http"
	"strings"

	patientRepo "caresched/database/repository/patient"
	providerRepo "caresched/database/repository/provider"
	"caresched/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
		Error:   utils.ErrKindUnauthorized,
		Message: "Insufficient authorization",
	})
}

// authCacheHit reports whether this token hash was recently validated,
// refreshing the sliding TTL on a hit. A nil auth cache client disables
// caching and every request falls through to the repository.
func authCacheHit(ctx context.Context, tokenHash string) bool {
	rdb := utils.AuthCacheClient
	if rdb == nil {
		return false
	}
	key := utils.AuthCachePrefix + tokenHash
	cached, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			zap.L().Error("auth cache lookup failed", zap.Error(err))
		}
		return false
	}
	if cached != "1" {
		return false
	}
	if err := rdb.Expire(ctx, key, utils.AuthCacheTTL).Err(); err != nil {
		zap.L().Error("auth cache TTL refresh failed", zap.Error(err))
	}
	return true
}

func storeAuthCache(ctx context.Context, tokenHash string) {
	rdb := utils.AuthCacheClient
	if rdb == nil {
		return
	}
	if err := rdb.Set(ctx, utils.AuthCachePrefix+tokenHash, "1", utils.AuthCacheTTL).Err(); err != nil {
		zap.L().Error("auth cache store failed", zap.Error(err))
	}
}

// JWTAuthProviderMiddleware validates a provider bearer token, looks the
// record up by token hash so revoked tokens die immediately, and caches the
// validated hash in the auth Redis DB. Every protected provider route
// addresses a provider by :id, so a token may only act on its own record.
func JWTAuthProviderMiddleware(repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		subject, scope, err := utils.ExtractIDFromToken(token)
		if err != nil || scope != "provider" {
			abortUnauthorized(c)
			return
		}
		if id := c.Param("id"); id != "" && id != subject {
			abortUnauthorized(c)
			return
		}

		ctx := c.Request.Context()
		hash := utils.HashToken(token)
		if authCacheHit(ctx, hash) {
			c.Set("providerID", subject)
			c.Next()
			return
		}

		p, err := repo.GetByTokenHash(hash)
		if err != nil || p.ID != subject {
			abortUnauthorized(c)
			return
		}

		storeAuthCache(ctx, hash)
		c.Set("providerID", p.ID)
		c.Next()
	}
}

// JWTAuthPatientMiddleware validates a patient bearer token the same way.
// Patient routes address mixed resources (patients and bookings) by :id, so
// the self-access check lives in the handlers instead.
func JWTAuthPatientMiddleware(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		subject, scope, err := utils.ExtractIDFromToken(token)
		if err != nil || scope != "patient" {
			abortUnauthorized(c)
			return
		}

		ctx := c.Request.Context()
		hash := utils.HashToken(token)
		if authCacheHit(ctx, hash) {
			c.Set("patientID", subject)
			c.Next()
			return
		}

		p, err := repo.GetByTokenHash(hash)
		if err != nil || p.ID != subject {
			abortUnauthorized(c)
			return
		}

		storeAuthCache(ctx, hash)
		c.Set("patientID", p.ID)
		c.Next()
	}
}
