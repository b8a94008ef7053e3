package browser

import (
	"errors"
	"fmt"
)

// Kind classifies a browser failure. The closed set keeps engine-specific
// error types out of the command surface: every failure is mapped to one
// of these kinds at the boundary and rendered as plain text.
type Kind string

const (
	// KindConfiguration covers missing engine driver or browser binary
	KindConfiguration Kind = "ConfigurationError"

	// KindValidation covers malformed input rejected before any engine call
	KindValidation Kind = "ValidationError"

	// KindStorage covers storage-state load/save failures
	KindStorage Kind = "StorageError"

	// KindOperation covers engine-reported failures during page operations
	KindOperation Kind = "OperationError"
)

// Error wraps a failure with its kind for boundary rendering.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates a kinded error without a cause.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapError creates a kinded error wrapping a cause.
func wrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// errorText renders any failure as the command-surface failure string.
// Kinded errors keep their classification; everything else is reported
// as an operation failure.
func errorText(err error) string {
	var kinded *Error
	if errors.As(err, &kinded) {
		return fmt.Sprintf("Error: %s", kinded.Error())
	}
	return fmt.Sprintf("Error: %s: %v", KindOperation, err)
}
