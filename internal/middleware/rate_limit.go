package middleware

import (
	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether a rate is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit > 0
}

// Limiter allows server.rate_limit requests/second per IP with a burst
// of twice that, backed by echo's in-memory store.
func (r *RateLimitMiddleware) Limiter() echo.MiddlewareFunc {
	limit := rate.Limit(r.server.Config.Server.RateLimit)
	burst := int(2 * r.server.Config.Server.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  limit,
			Burst: burst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("client", identifier).
				Str("endpoint", c.Path()).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError()
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
