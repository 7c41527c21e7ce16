// Package sqlerr handles PostgreSQL driver errors.
//
// It parses SQLSTATE codes coming out of pgx and converts them into
// API errors (a unique violation becomes a 400, a dropped connection a
// 503) with messages a client can show.
package sqlerr
