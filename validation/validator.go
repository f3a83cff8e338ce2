package validation

import (
	"regexp"
	"strings"

	"github.com/kbukum/authgate/errors"
)

// FieldError is one rejected field, reported under details.fields.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors for values that are not tagged structs,
// such as configuration read from files.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the collected failures in check order.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns nil when every check passed.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return invalid(v.errors)
}

// Required rejects empty and whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Pattern rejects a non-empty value that does not match pattern. Pair it with
// Required when the value is mandatory.
func (v *Validator) Pattern(field, value, pattern string) *Validator {
	if value == "" {
		return v
	}
	if ok, err := regexp.MatchString(pattern, value); err != nil || !ok {
		v.AddError(field, "does not match required format")
	}
	return v
}

// invalid builds the INVALID_INPUT error shared by tag and fluent validation.
func invalid(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}
