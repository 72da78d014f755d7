package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("creator not found")
	ErrStore            = errors.New("store request failed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrActionInProgress = errors.New("action already in progress")
)

// Error codes carried in API responses
const (
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
	CodeConflict      = "CONFLICT"
	CodeInternalError = "INTERNAL_ERROR"
	CodeStoreError    = "STORE_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrActionInProgress)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// StoreError wraps a failed store call. The message is what users get to see.
func StoreError(message string, err error) *AppError {
	if message == "" {
		message = ErrStore.Error()
	}
	return NewAppError(http.StatusBadGateway, CodeStoreError, message, errors.Join(ErrStore, err))
}

// IsNotFound reports whether err means the creator does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Message returns the human readable text of err, or fallback when there is none.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
