package errs

import "strings"

// FieldError is a field-level validation error.
//
//	{ "field": "ai_labels", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect to Value.
	ActionTypeRedirect ActionType = "redirect"
	// ActionTypeRetry tells the client the request may succeed later.
	ActionTypeRetry ActionType = "retry"
)

// Action is an optional "what next" hint for the client.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the API error type. It is written to clients as-is.
//
//   - Code: machine-friendly code (e.g. "IMAGE_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the client may show Message verbatim.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of code or status, so
// errors.Is(err, &HTTPError{}) answers "is this already an API error".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
