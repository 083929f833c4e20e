// Package errs provides the standardized error kinds surfaced by the
// affordability engine. Validation failures are detected before any
// computation begins and always report the offending field; lookup
// failures surface the unresolved key.
package errs

import "fmt"

// Kind classifies an engine error for callers that map errors to
// transport-level responses.
type Kind string

const (
	// KindValidation indicates out-of-range or malformed input.
	KindValidation Kind = "VALIDATION_ERROR"

	// KindNotFound indicates an unknown model, trim, or empty candidate set.
	KindNotFound Kind = "NOT_FOUND"

	// KindComputation indicates a numeric guard was triggered mid-computation.
	KindComputation Kind = "COMPUTATION_ERROR"
)

// ValidationError reports an input field that failed validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() Kind { return KindValidation }

// NewValidation constructs a ValidationError for the named field.
func NewValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference-catalog key that could not be resolved.
type NotFoundError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Key)
}

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// NewNotFound constructs a NotFoundError for the unresolved key.
func NewNotFound(key, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Key: key, Message: fmt.Sprintf(format, args...)}
}

// ComputationError reports a numeric guard (e.g. division by zero) that
// prevented a result from being produced.
type ComputationError struct {
	Op      string `json:"op"`
	Message string `json:"message"`
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Kind returns KindComputation.
func (e *ComputationError) Kind() Kind { return KindComputation }

// NewComputation constructs a ComputationError for the named operation.
func NewComputation(op, format string, args ...interface{}) *ComputationError {
	return &ComputationError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// kinder is implemented by all errs error types.
type kinder interface {
	Kind() Kind
}

// KindOf returns the Kind of err, or an empty Kind for foreign errors.
func KindOf(err error) Kind {
	if k, ok := err.(kinder); ok {
		return k.Kind()
	}
	return ""
}
