package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeStageInUse   ErrorCode = "STAGE_IN_USE"
	ErrCodePrecondition ErrorCode = "PRECONDITION"
	ErrCodeEmpty        ErrorCode = "EMPTY"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FieldError reports a validation failure on a single input field.
func FieldError(field, message string) *Error {
	return &Error{Code: ErrCodeInvalid, Field: field, Message: message}
}

// Common domain errors.
var (
	ErrStageNotFound    = NewError(ErrCodeNotFound, "stage not found")
	ErrLeadNotFound     = NewError(ErrCodeNotFound, "lead not found")
	ErrListNotFound     = NewError(ErrCodeNotFound, "list not found")
	ErrStageInUse       = NewError(ErrCodeStageInUse, "stage still has leads assigned")
	ErrStageReferenced  = NewError(ErrCodePrecondition, "stage is referenced by leads")
	ErrNoStages         = NewError(ErrCodePrecondition, "pipeline has no stages")
	ErrNothingToExport  = NewError(ErrCodeEmpty, "no leads to export")
	ErrInvalidDirection = NewError(ErrCodeInvalid, "unknown reorder direction")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
