package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/deppfellow/imagestore/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards destructive routes with Clerk sessions.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuthIfEnabled applies RequireAuth only when a Clerk secret key
// is configured.
func (auth *AuthMiddleware) RequireAuthIfEnabled(next echo.HandlerFunc) echo.HandlerFunc {
	if !auth.server.Config.Auth.Enabled() {
		return next
	}
	return auth.RequireAuth(next)
}

// RequireAuth validates the Authorization bearer token with Clerk and
// stores the session subject and role on the echo context.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(auth.writeUnauthorized)),
		))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			c.Set(UserIDKey, claims.Subject)
			c.Set(UserRoleKey, claims.ActiveOrganizationRole)

			auth.server.Logger.Info().
				Str("function", "RequireAuth").
				Str("user_id", claims.Subject).
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("user authenticated successfully")

			return next(c)
		})
}

// writeUnauthorized answers a failed Clerk check with the same JSON shape
// the global error handler uses.
func (auth *AuthMiddleware) writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(errs.NewUnauthorizedError("Unauthorized", false)); err != nil {
		auth.server.Logger.Error().
			Err(err).
			Str("function", "RequireAuth").
			Msg("failed to write JSON response")
		return
	}

	auth.server.Logger.Warn().
		Str("function", "RequireAuth").
		Str("path", r.URL.Path).
		Msg("rejected request without a valid session")
}
