// Package errs defines the error shapes the API returns.
//
// Every failure that reaches a client is an *HTTPError serialized as
// {code, message, status, override, errors, action}, so frontends can
// switch on a stable machine code instead of parsing messages.
package errs
