package cli

import (
	"errors"

	"github.com/dhimmel/disease-ontology/internal/builder"
)

// Process exit codes.
const (
	ExitRuntime    = 1
	ExitUsage      = 2
	ExitUnresolved = 3
	ExitCycle      = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
}

// runtimeError picks the exit code for a failure raised while a command ran.
func runtimeError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitRuntime
	switch {
	case errors.Is(err, builder.ErrUnresolvedReference):
		code = ExitUnresolved
	case errors.Is(err, builder.ErrCycle):
		code = ExitCycle
	}
	return &ExitError{Code: code, Message: err.Error(), Err: err}
}
