// Package validation binds request data and validates it.
//
// It uses the validator library to enforce the rules declared in struct
// tags and turns failures into field errors the client can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/imagestore/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that validate themselves.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field issue validator tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path params, query and body into payload, then
// validates it. Failures come back as 400 *errs.HTTPError values.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindErrorMessage(err error) string {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return fmt.Sprintf("invalid value for %s", bindErr.Field)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return msg
		}
	}

	return "invalid request"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), []errs.FieldError{}
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "url":
			msg = "must be a valid URL"

		case "mongodb":
			msg = "must be a 24 character hex object id"

		case "startsnotwith":
			msg = fmt.Sprintf("must not start with %q", fe.Param())

		case "dive":
			msg = "some items are invalid"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
