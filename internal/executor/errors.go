package executor

import (
	"errors"
	"fmt"
)

// ErrAllDisabled is the cause of the ExecError returned by Run when no
// mechanism is both present and allowed by the deny-list.
var ErrAllDisabled = errors.New("all execution mechanisms disabled")

// defaultFailureMessage is used when neither captured output nor an
// underlying error describe the failure.
const defaultFailureMessage = "command execution failed"

// ExecError describes a failed execution. It always carries the full command
// line that was run.
type ExecError struct {
	// Command is the fully built command line.
	Command string

	// Message is the captured error text: stderr or stdout depending on the
	// mechanism, or a diagnostic when nothing was captured.
	Message string

	// Code is the exit status, or 0 when the mechanism reports none.
	Code int

	// Err is the underlying error, if any.
	Err error
}

// newExecError builds an ExecError. An empty message falls back to the
// cause's text, then to a generic diagnostic.
func newExecError(command, message string, code int, cause error) *ExecError {
	if message == "" {
		if cause != nil {
			message = cause.Error()
		} else {
			message = defaultFailureMessage
		}
	}
	return &ExecError{
		Command: command,
		Message: message,
		Code:    code,
		Err:     cause,
	}
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("command %q failed with code %d: %s", e.Command, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
