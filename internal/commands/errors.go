package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to handler failures.
const (
	TextCodeValidation   = "NOTIONMD_COMMAND_INVALID"
	TextCodeCanceled     = "NOTIONMD_COMMAND_CANCELED"
	TextCodeTimeout      = "NOTIONMD_COMMAND_TIMEOUT"
	TextCodeContext      = "NOTIONMD_COMMAND_CONTEXT_ERROR"
	TextCodeExecuteFails = "NOTIONMD_COMMAND_FAILED"
)

// Errors that already carry a go-errors category are returned unchanged.
func wrapValidationError(err error, commandType string) error {
	return wrapCommandError(err, goerrors.CategoryValidation, "command validation failed", TextCodeValidation, commandType)
}

func wrapContextError(err error, commandType string) error {
	switch {
	case errors.Is(err, context.Canceled):
		return wrapCommandError(err, goerrors.CategoryCommand, "command cancelled", TextCodeCanceled, commandType)
	case errors.Is(err, context.DeadlineExceeded):
		return wrapCommandError(err, goerrors.CategoryCommand, "command deadline exceeded", TextCodeTimeout, commandType)
	default:
		return wrapCommandError(err, goerrors.CategoryCommand, "command context error", TextCodeContext, commandType)
	}
}

func wrapExecuteError(err error, commandType string) error {
	return wrapCommandError(err, goerrors.CategoryCommand, "command execution failed", TextCodeExecuteFails, commandType)
}

func wrapCommandError(err error, category goerrors.Category, message, code, commandType string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).
		WithTextCode(code).
		WithMetadata(map[string]any{"command": commandType})
}
