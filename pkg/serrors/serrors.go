package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error. Code is stable and machine-readable; Message is the
// user-facing default text.
type Base struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Base) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, details string) *Base {
	return &Base{Code: code, Message: message, Details: details}
}

// Is matches coded errors by Code, so a detail-carrying copy compares equal
// to its sentinel.
func (e *Base) Is(target error) bool {
	t, ok := target.(*Base)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func WithDetails(e *Base, details string) *Base {
	return &Base{Code: e.Code, Message: e.Message, Details: details}
}

// ValidationError describes a single failed field.
type ValidationError struct {
	Base
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ValidationErrors map[string]*ValidationError

func NewValidationError(field, tag string) *ValidationError {
	return &ValidationError{
		Base: Base{
			Code:    "VALIDATION_" + tag,
			Message: validationMessage(field, tag),
		},
		Field: field,
		Tag:   tag,
	}
}

// ProcessValidatorErrors converts go-playground validator errors into coded
// field errors keyed by the struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		out[err.Field()] = NewValidationError(err.Field(), err.Tag())
	}
	return out
}

// Messages flattens field errors into plain strings for API responses.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}

func validationMessage(field, tag string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "gt", "gte":
		return fmt.Sprintf("%s is too small", field)
	case "oneof":
		return fmt.Sprintf("%s has an unsupported value", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
