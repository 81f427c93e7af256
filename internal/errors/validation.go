package errors

import "fmt"

// ValidationError represents a configuration value that failed a constraint
type ValidationError struct {
	*BaseError
	Field      string      // field that failed validation
	Value      interface{} // the value that failed validation
	Constraint string      // the validation constraint that failed
}

// NewValidationError creates a new validation error. The message reads
// "invalid config: <detail>".
func NewValidationError(field string, value interface{}, constraint, detail string) *ValidationError {
	return &ValidationError{
		BaseError:  New(ValidationErrorCode, fmt.Sprintf("invalid config: %s", detail)),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// WithSuggestion adds a helpful suggestion, keeping the concrete type
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}
