package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/imagestore/internal/middleware"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
)

// dependencyCheck probes one backing service. A failing required check
// makes the whole report unhealthy; an optional one is only reported.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthHandler reports whether the service and its stores are reachable.
type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

// NewHealthHandler probes the dependencies named in
// observability.health_checks.checks that the server actually holds.
// Redis is optional: without it only background ingest is affected.
func NewHealthHandler(s *server.Server) *HealthHandler {
	var checks []dependencyCheck
	obs := s.Config.Observability

	if obs != nil && obs.HasCheck("database") && s.DB != nil {
		checks = append(checks, dependencyCheck{name: "database", required: true, ping: s.DB.Ping})
	}
	if obs != nil && obs.HasCheck("mongo") && s.Mongo != nil {
		checks = append(checks, dependencyCheck{name: "mongo", required: true, ping: s.Mongo.Ping})
	}
	if obs != nil && obs.HasCheck("redis") && s.Redis != nil {
		checks = append(checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

func (h *HealthHandler) recordFailure(fields map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", fields)
	}
}

// CheckHealth answers 200 when every required dependency responds within
// the configured timeout and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
		checkStart := time.Now()
		err := check.ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			checks[check.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			if check.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(map[string]interface{}{
				"check_type":       check.name,
				"operation":        "health_check",
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
