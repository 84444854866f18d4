package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backend/internal/infrastructure/cache"
	"github.com/restopos/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for the rate limiter
type RateLimitConfig struct {
	// Counter stores the hits; Redis shares limits across API instances
	Counter cache.WindowCounter
	// Limit is the maximum number of requests per window
	Limit int
	// Window is the length of one counting window
	Window time.Duration
	// KeyFunc extracts the client key; defaults to the client IP
	KeyFunc func(*gin.Context) string
	Logger  *zap.Logger
}

// RateLimit returns a fixed-window rate limiting middleware
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	limit := strconv.Itoa(cfg.Limit)

	return func(c *gin.Context) {
		count, resetIn, err := cfg.Counter.Hit(c.Request.Context(), cfg.KeyFunc(c), cfg.Window)
		if err != nil {
			// fail open: a cache outage must not stop the tills
			cfg.Logger.Warn("Rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}

		remaining := max(int64(cfg.Limit)-count, 0)
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Limit) {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}

		c.Next()
	}
}

// LoginKey keys the stricter login limit by client IP
func LoginKey(c *gin.Context) string {
	return "login:" + c.ClientIP()
}
