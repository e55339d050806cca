package shttperr

import (
	"encoding/json"
	"errors"
)

// Error is an error that carries the http status and the error code
// returned to the client.
type Error struct {
	error
	status int
	code   string
}

// New creates a new error instance.
func New(status int, msg, code string) *Error {
	return &Error{
		error:  errors.New(msg),
		status: status,
		code:   code,
	}
}

// Status returns the status code.
func (e *Error) Status() int {
	return e.status
}

// Code returns the error code.
func (e *Error) Code() string {
	return e.code
}

// ValidationError maps request fields to their validation messages.
type ValidationError struct {
	Errors map[string]string
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve.Errors == nil {
		return ""
	}

	b, _ := json.Marshal(ve.Errors)
	return string(b)
}

// SetError sets the message of a field.
func (ve *ValidationError) SetError(key, value string) {
	if ve.Errors == nil {
		ve.Errors = map[string]string{}
	}

	ve.Errors[key] = value
}
