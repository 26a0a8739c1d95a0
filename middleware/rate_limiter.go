package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// RateLimiter is a fixed-window limiter keyed per IP, method, and route
// pattern, backed by Redis so the limit holds across instances. The window
// reset time is derived from the counter key's remaining TTL.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s:%s", c.ClientIP(), c.Request.Method, c.FullPath())

		pipe := config.RedisClient.TxPipeline()
		incr := pipe.Incr(config.Ctx, key)
		pipe.ExpireNX(config.Ctx, key, window)
		ttl := pipe.TTL(config.Ctx, key)
		if _, err := pipe.Exec(config.Ctx); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Rate limiter unavailable"))
			c.Abort()
			return
		}

		count := int(incr.Val())
		remaining := maxRequests - count
		if remaining < 0 {
			remaining = 0
		}

		resetIn := ttl.Val()
		if resetIn < 0 {
			resetIn = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        time.Now().Add(resetIn),
			ResetInSeconds: int(resetIn.Seconds()),
		}
		c.Set("rateLimiter", rate)

		if count > maxRequests {
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
