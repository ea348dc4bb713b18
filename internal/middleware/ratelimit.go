package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbook/internal/pkg/ratelimit"
	"salonbook/internal/pkg/response"
)

// RateLimit throttles by client IP. A limiter failure fails open: losing the
// limiter backend must not take booking intake down with it.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
