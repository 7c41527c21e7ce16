// Package handler is the HTTP layer behind the router.
//
// It binds and validates requests with the validation package, calls the
// service layer and maps store outcomes onto API errors.
package handler
