package user

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "user-api/pkg/errors"
)

// newValidator builds the request validator used by the usecase. Field names
// in error reports follow the json tag so clients see the wire-level name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// translateValidationError converts validator.ValidationErrors into a
// field -> reasons map carrying every violation, not just the first.
func translateValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := apperrors.NewValidationError(make(map[string][]string, len(validationErrors)))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out.Add(field, fmt.Sprintf("%s is required", field))
		case "email":
			out.Add(field, fmt.Sprintf("%s must be a valid email", field))
		case "min":
			out.Add(field, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "max":
			out.Add(field, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "gt":
			out.Add(field, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		default:
			out.Add(field, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
