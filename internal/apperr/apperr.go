// Package apperr defines the error taxonomy shared by the store, services and
// handlers. Every error carries the HTTP status and stable code the external
// layer reports, while still matching the sentinel errors with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
)

const (
	CodeNotFound   = "not_found"
	CodeInvariant  = "invariant_violation"
	CodeValidation = "validation_error"
	CodeConflict   = "conflict"
	CodeInternal   = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("app error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound reports that no entity of the given kind exists with id.
func NotFound(entity string, id uint) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%w: no %s with id %d", ErrNotFound, entity, id))
}

func Invariant(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeInvariant, fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...)))
}

func Validation(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...)))
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...)))
}

// StatusOf returns the HTTP status associated with err, or 500 when err does
// not carry one.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the stable error code associated with err.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}
	return CodeInternal
}
