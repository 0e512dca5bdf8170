package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound        = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest      = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer  = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict        = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrTooManyRequests = &AppError{Code: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Any other error
// becomes a 500 carrying fallback, so store details never reach the client.
func GetAppError(err error, fallback string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if fallback == "" {
		fallback = ErrInternalServer.Message
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: fallback,
	}
}
