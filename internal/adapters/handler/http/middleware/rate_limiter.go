package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

// RateLimiterMiddleware allows limit requests per caller in a fixed window. Callers
// are told apart by user id, or by client IP before authentication. Redis failures
// let the request through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitKey(c)

		var (
			incr *redis.IntCmd
			ttl  *redis.DurationCmd
		)
		// The window starts with the first request; ExpireNX leaves a running window alone.
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.WarnContext(ctx, "rate limiter skipped", "key", key, "error", err)
			c.Next()
			return
		}

		count := incr.Val()
		remaining := ttl.Val()
		if remaining <= 0 {
			remaining = window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(remaining).Unix(), 10))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(remaining.Seconds()),
			})
			return
		}

		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return "rate_limit:user:" + userID
	}
	return "rate_limit:ip:" + c.ClientIP()
}
