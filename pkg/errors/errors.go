// Package errors defines the application error type shared by the services,
// the persistence adapters and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError and decides its HTTP status
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeConflict    ErrorType = "CONFLICT"
	ErrorTypeMethod      ErrorType = "METHOD_NOT_ALLOWED"
	ErrorTypeRateLimited ErrorType = "RATE_LIMITED"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeDatabase    ErrorType = "DATABASE"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeNotFound:    http.StatusNotFound,
	ErrorTypeConflict:    http.StatusConflict,
	ErrorTypeMethod:      http.StatusMethodNotAllowed,
	ErrorTypeRateLimited: http.StatusTooManyRequests,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypeDatabase:    http.StatusInternalServerError,
}

// Status is the HTTP status for the type. Unknown types are 500.
func (t ErrorType) Status() int {
	if status, ok := statusByType[t]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// typeForStatus is the inverse of Status for responses built from a bare
// status code. 500 maps to INTERNAL rather than DATABASE.
func typeForStatus(status int) ErrorType {
	switch status {
	case http.StatusInternalServerError:
		return ErrorTypeInternal
	}
	for t, s := range statusByType {
		if s == status {
			return t
		}
	}
	return ErrorTypeInternal
}

// AppError is an error with a type, a client-facing message and an
// optional cause that is logged but never sent to clients.
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func newError(t ErrorType, message string) *AppError {
	return &AppError{Type: t, Message: message}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Status is the HTTP status of the error
func (e *AppError) Status() int {
	return e.Type.Status()
}

// WithCode attaches a machine-readable code, such as an AWS error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails attaches extra fields for the response body
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause records the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, message)
}

// NewNotFoundError reports that resource does not exist
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, resource+" not found")
}

func NewConflictError(message string) *AppError {
	return newError(ErrorTypeConflict, message)
}

func NewRateLimitedError(message string) *AppError {
	return newError(ErrorTypeRateLimited, message)
}

func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, message)
}

// NewUnavailableError reports that a dependency cannot be reached
func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, service+" is unavailable")
}

// NewDatabaseError wraps a failed storage operation
func NewDatabaseError(operation string, err error) *AppError {
	return newError(ErrorTypeDatabase, fmt.Sprintf("storage operation %s failed", operation)).WithCause(err)
}

// IsAppError reports whether err wraps an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the first AppError in err's chain, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err wraps an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}
