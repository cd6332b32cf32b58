package admin

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a binding or conversion error to per-field messages.
// ok is false when err is not about form fields.
func FieldErrors(err error) (map[string]string, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return map[string]string{fe.Field: fe.Message}, true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, v := range verrs {
		out[v.Field()] = fieldMessage(v)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "url":
		return "Please enter a valid URL"
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return "Must be at most " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param()
	case "oneof":
		return "Choose one of the listed values"
	default:
		return "Invalid value"
	}
}
