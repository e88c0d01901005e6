package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures.
const (
	CodeValidationFailed = "MDSITE_COMMAND_INVALID"
	CodeCanceled         = "MDSITE_COMMAND_CANCELED"
	CodeTimedOut         = "MDSITE_COMMAND_TIMEOUT"
	CodeContextFailed    = "MDSITE_COMMAND_CONTEXT"
	CodeExecutionFailed  = "MDSITE_COMMAND_FAILED"
)

// commandError wraps err in CategoryCommand with code. Errors that are already
// categorised, such as page render failures, keep their own.
func commandError(err error, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidationFailed)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return commandError(err, "command cancelled", CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return commandError(err, "command deadline exceeded", CodeTimedOut)
	default:
		return commandError(err, "command context error", CodeContextFailed)
	}
}

func wrapExecuteError(err error) error {
	return commandError(err, "command failed", CodeExecutionFailed)
}
