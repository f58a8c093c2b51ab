package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal server error")
)

// AppError carries the HTTP status a handler should answer with.
type AppError struct {
	Err        error
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(err error, statusCode int, message string) *AppError {
	return &AppError{Err: err, StatusCode: statusCode, Message: message}
}

func NotFound(format string, args ...any) *AppError {
	return New(ErrNotFound, http.StatusNotFound, fmt.Sprintf(format, args...))
}

func BadRequest(format string, args ...any) *AppError {
	return New(ErrValidation, http.StatusBadRequest, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...any) *AppError {
	return New(ErrConflict, http.StatusConflict, fmt.Sprintf(format, args...))
}

func Internal(err error) *AppError {
	return New(fmt.Errorf("%w: %w", ErrInternal, err), http.StatusInternalServerError, "")
}

// StatusCode returns the status attached to err, 500 for anything untyped.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
