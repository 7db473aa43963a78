package reservation

import (
	"errors"
	"fmt"
)

// Error codes classifying engine failures. Handlers map these to HTTP
// statuses; callers never see underlying storage details.
const (
	CodeValidation   = "validationError"
	CodeNotFound     = "notFoundError"
	CodeConflict     = "conflictError"
	CodeInvalidState = "invalidStateError"
	CodeUnauthorized = "unauthorizedError"
	CodeStorage      = "storageError"
)

// Error is the engine's caller-facing error type.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &Error{Code: CodeInvalidState, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func NewStorageError(msg string) error {
	return &Error{Code: CodeStorage, Message: msg}
}

// CodeOf returns the engine error code carried by err, or an empty string if
// err is not an engine error.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
