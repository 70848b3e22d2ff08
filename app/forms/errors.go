package forms

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its first validation failure message.
// An empty map means the form is valid.
type Errors map[string]string

// nonFieldKey collects failures that cannot be pinned to one field
// (malformed bodies, type mismatches).
const nonFieldKey = "form"

// HasErrors reports whether any field failed validation.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// fieldErrors converts a validator error into an Errors map keyed by
// lowercased field name.
func fieldErrors(err error) Errors {
	out := Errors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			if _, seen := out[field]; !seen {
				out[field] = messageFor(fe)
			}
		}
		return out
	}
	out[nonFieldKey] = err.Error()
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return "ensure this value has at most " + fe.Param() + " characters"
	case "lte":
		return "ensure this value is less than or equal to " + fe.Param()
	case "gte":
		return "ensure this value is greater than or equal to " + fe.Param()
	default:
		return "enter a valid value"
	}
}
