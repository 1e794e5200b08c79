package middleware

import (
	"net/http"
	"strconv"

	"gamerental/ratelimit"
	"gamerental/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects clients that exceed limiter's budget with 429. Clients
// are identified by IP. When the limiter itself fails the request is let
// through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			utils.LogWarn("Rate limiter unavailable", map[string]interface{}{
				"error": err.Error(),
				"ip":    c.ClientIP(),
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded, retry after " + result.RetryAfter.String(),
			})
			return
		}
		c.Next()
	}
}
