package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusForbidden),
		Message:  message,
		Status:   http.StatusForbidden,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// field-level validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for rate-limited clients.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusTooManyRequests),
		Message: http.StatusText(http.StatusTooManyRequests),
		Status:  http.StatusTooManyRequests,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "slow down and retry",
		},
	}
}

// NewServiceUnavailableError creates a 503 HTTPError for transient backend
// failures (timeouts, dropped connections). The client is told to retry.
func NewServiceUnavailableError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusServiceUnavailable),
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "the backing store is temporarily unavailable",
		},
	}
}

// NewInternalServerError creates a generic 500. The real cause stays in
// the server logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}
