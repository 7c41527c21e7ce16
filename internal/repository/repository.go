// Package repository handles all interactions with the two stores.
//
// It holds the raw SQL and the MongoDB filters that fetch, persist and
// delete image metadata, keeping driver details away from the service
// layer. Each accessor is constructed with an explicitly owned handle
// (a pgx pool, a mongo collection) instead of reaching for globals.
package repository
