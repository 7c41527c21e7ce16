// Package router builds the echo instance: it installs the middleware
// chain and registers the system and image routes on their handlers.
package router

import (
	"github.com/deppfellow/imagestore/internal/handler"
	"github.com/deppfellow/imagestore/internal/middleware"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the configured echo instance. Middleware order
// matters: the request id must exist before the request logger is
// built, and the New Relic transaction before trace ids are read.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = handler.JSONSerializer{}
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limiter())
	}

	registerSystemRoutes(router, h)
	registerImageRoutes(router, h, middlewares.Auth, s.Config.Server.ExtendedRoutes)

	return router
}
