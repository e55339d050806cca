package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed or incomplete input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents resource not found errors
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeRegistry represents failures talking to the function registry
	ErrorTypeRegistry ErrorType = "registry"
	// ErrorTypeDataLayer represents failures talking to the privileged data layer
	ErrorTypeDataLayer ErrorType = "data_layer"
	// ErrorTypeDatabase represents database-related errors
	ErrorTypeDatabase ErrorType = "database"
	// ErrorTypeConfiguration represents invalid configuration
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeInternal represents internal server errors
	ErrorTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Context map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext adds context information to the error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
}

// Wrap wraps an existing error with context. It returns nil when err is nil.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}

	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
		Context: make(map[string]any),
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, errType ErrorType, format string, args ...any) *AppError {
	return Wrap(err, errType, fmt.Sprintf(format, args...))
}

// Is checks if the error is of a specific type
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the type of the outermost AppError in the chain, or
// ErrorTypeInternal when the error is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// GetContext retrieves context information from an error
func GetContext(err error, key string) (any, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		val, ok := appErr.Context[key]
		return val, ok
	}
	return nil, false
}

// Common lookup errors
var (
	ErrMalformedInput   = New(ErrorTypeValidation, "malformed input")
	ErrFunctionNotFound = New(ErrorTypeNotFound, "no such function")
	ErrClientClosed     = New(ErrorTypeDataLayer, "data layer client is closed")
)
