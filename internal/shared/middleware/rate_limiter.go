package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/cache"
)

// RateLimiter is a fixed-window counter per client IP backed by the shared cache.
type RateLimiter struct {
	store  cache.Cache
	prefix string
	max    int64
	window time.Duration
}

func NewRateLimiter(store cache.Cache, prefix string, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{store: store, prefix: prefix, max: int64(max), window: window}
}

// Handler rejects requests over the limit with 429 and Retry-After.
// A nil store or any cache error lets the request through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.store == nil || rl.max <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, c.ClientIP())

		count, err := rl.store.Increment(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := rl.store.Expire(ctx, key, rl.window); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter expire failed")
			}
		}

		if count > rl.max {
			retryAfter := rl.window
			ttl, err := rl.store.TTL(ctx, key)
			switch {
			case err != nil:
				log.Warn().Err(err).Str("key", key).Msg("rate limiter ttl failed")
			case ttl > 0:
				retryAfter = ttl
			default:
				// counter lost its expiry (Expire failed on the first hit), re-arm it
				if err := rl.store.Expire(ctx, key, rl.window); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("rate limiter expire failed")
				}
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.TooManyRequests(c, "Too many requests, please try again later")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(rl.max, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(rl.max-count, 10))
		c.Next()
	}
}
