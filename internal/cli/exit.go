package cli

import (
	"errors"
	"fmt"
)

// Exit codes. Scripts distinguish "the input was bad" (2) from "the
// input was fine but the check failed" (1).
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // validation or scenario failure, replay mismatch
	ExitCommandError = 2 // bad arguments, missing files, unreadable database
)

// ExitError carries the process exit code alongside the error.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional cause
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError builds an ExitError with no underlying cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code and context to a cause.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an error to a process exit code. Anything that is
// not an ExitError counts as a plain failure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
