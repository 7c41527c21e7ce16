package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance. Field errors are
// reported under the json name (or the path param name) of the field.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// Struct validates v with the shared validator.
func Struct(v any) error {
	return Validator().Struct(v)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "param", "query"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
