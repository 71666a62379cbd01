package domain

import "fmt"

// ValidationError marks client-visible bad input: unknown status values,
// negative durations, end dates before start dates. Callers distinguish it
// from infrastructure failures with errors.As.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
