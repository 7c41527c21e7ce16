// Package middleware holds the global and route-level echo middleware:
// request ids, request-scoped logging, CORS, panic recovery, New Relic
// tracing, rate limiting, Clerk authentication for destructive routes and
// the global error handler.
package middleware
