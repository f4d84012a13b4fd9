package services

import "strings"

// NonFieldErrors keys validation messages that do not belong to a single
// input field, matching the wire contract.
const NonFieldErrors = "non_field_errors"

// ValidationErrors maps field names to human-readable messages. It is
// returned by service use cases and rendered by handlers as a 400 with
// {"success": false, "errors": {...}}.
type ValidationErrors map[string][]string

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	var parts []string
	for field, msgs := range v {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// Add appends a message for a field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Has reports whether any message was recorded.
func (v ValidationErrors) Has() bool {
	return len(v) > 0
}

// FieldError builds a single-field ValidationErrors value.
func FieldError(field, message string) ValidationErrors {
	return ValidationErrors{field: {message}}
}
