package model

import (
	"fmt"
	"strings"
)

// Error codes carried by field validation failures.
const (
	CodeRequired = "REQUIRED"
	CodeInvalid  = "INVALID"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// requiredError builds a single-field REQUIRED validation error.
func requiredError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{
		Field:   field,
		Code:    CodeRequired,
		Message: message,
	}}}
}

// CleanNoteMessage trims surrounding whitespace from a raw note message and
// rejects input that is empty after trimming. On success the returned string
// is the trimmed message, never the raw input.
func CleanNoteMessage(raw string) (string, error) {
	message := strings.TrimSpace(raw)
	if message == "" {
		return "", requiredError("message", "message can't be empty")
	}
	return message, nil
}

// ValidateOrder checks an Order for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the order is valid.
func ValidateOrder(o *Order) error {
	var ve ValidationError

	if strings.TrimSpace(o.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "id",
			Code:    CodeRequired,
			Message: "is required",
		})
	}

	if !o.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Code:    CodeInvalid,
			Message: fmt.Sprintf("invalid value %q", o.Status),
		})
	}

	if strings.TrimSpace(o.ChannelID) == "" {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "channel_id",
			Code:    CodeRequired,
			Message: "is required",
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
