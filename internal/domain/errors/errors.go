// Package errors defines application errors carried across the API surface.
package errors

import (
	"net/http"

	"geocue/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	ErrRegionNotFound = NewBaseError(
		http.StatusNotFound,
		"REGION_NOT_FOUND",
		"Region not found",
		"",
	)

	ErrRegionCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"REGION_CREATION_FAILED",
		"Failed to create region",
		"",
	)

	ErrRegionUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"REGION_UPDATE_FAILED",
		"Failed to update region",
		"",
	)

	ErrInvalidRadius = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RADIUS",
		"Region radius must be a positive number of meters",
		"",
	)

	ErrHistoryQueryFailed = NewBaseError(
		http.StatusInternalServerError,
		"HISTORY_QUERY_FAILED",
		"Failed to query notification history",
		"",
	)

	ErrDatabaseExecute = NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_EXECUTE_ERROR",
		"Database operation failed",
		"",
	)
)

// NewDatabaseExecuteError creates a database execute error wrapping the cause.
func NewDatabaseExecuteError(cause error, message string) error {
	return errors.Wrap(ErrDatabaseExecute.WithDetails(cause.Error()), message)
}
