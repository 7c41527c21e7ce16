// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass it
// validated input, it calls the repositories and returns their results.
package service
