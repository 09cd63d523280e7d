package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"trustlens/internal/infrastructure/ratelimit"
	"trustlens/pkg/errors"
	"trustlens/pkg/logger"
	"trustlens/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles one action per caller. Authenticated callers are keyed
// by wallet address, anonymous ones by IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, _ := c.Get("address").(string)
			if key == "" {
				key = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit: key=%s action=%s retry in %v", key, action, wait)
				return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Too many requests, retry in %s", wait.Round(time.Second))))
			}

			return next(c)
		}
	}
}
