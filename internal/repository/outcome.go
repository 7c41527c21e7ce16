package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/imagestore/internal/sqlerr"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no record matches the identifier.
	ErrNotFound = errors.New("image not found")

	// ErrInvalidID is returned for identifiers the store cannot parse.
	ErrInvalidID = errors.New("invalid image identifier")

	// ErrInvalidKey is returned for field names that cannot be used in a
	// document filter (empty, or operator-like "$...").
	ErrInvalidKey = errors.New("invalid document field name")
)

// Outcome classifies the result of an accessor call.
type Outcome int

const (
	// Found means the call succeeded.
	Found Outcome = iota
	// NotFound means no record matched.
	NotFound
	// TransientError means the store was unreachable or too slow; the same
	// call may succeed later.
	TransientError
	// FatalError is anything else: bad statements, bad data, bugs.
	FatalError
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case TransientError:
		return "transient_error"
	default:
		return "fatal_error"
	}
}

// OutcomeOf classifies an error returned by either accessor.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Found
	case errors.Is(err, ErrNotFound):
		return NotFound
	case IsTransient(err):
		return TransientError
	default:
		return FatalError
	}
}

// IsTransient reports whether err is a timeout, cancellation or lost
// connection in either driver.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	return sqlerr.IsConnectionError(err)
}
