package shttp

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/stormkit-io/fnmanagement/src/lib/shttp/shttperr"
)

// Response is the http response.
type Response struct {
	// Status is the status code.
	Status int

	// Data is the payload to return.
	// []byte and string values are written as-is, everything else is json encoded.
	Data any

	// Headers are the response headers.
	Headers http.Header

	// Error is the error that will be logged.
	Error error
}

// String returns the string representation of a response.
func (r *Response) String() string {
	data, _ := json.Marshal(r.Data)
	return string(data)
}

// NotFound returns a not found response.
func NotFound() *Response {
	return &Response{
		Status: http.StatusNotFound,
	}
}

// OK returns an ok response.
func OK() *Response {
	return &Response{
		Status: http.StatusOK,
		Data: map[string]bool{
			"ok": true,
		},
	}
}

// Backoff tells the client to retry in given seconds as
// there are too many requests right now.
func Backoff(retry time.Duration) *Response {
	headers := http.Header{}
	headers.Set("Retry-After", strconv.Itoa(int(retry.Seconds())))

	return &Response{
		Status:  http.StatusTooManyRequests,
		Headers: headers,
		Data: map[string]any{
			"ok":    false,
			"error": "too-many-requests",
		},
	}
}

// Error converts the error into a response. Errors created with shttperr
// keep their status code, every other error is an unexpected error.
func Error(err error) *Response {
	if serr, ok := err.(*shttperr.Error); ok {
		return &Response{
			Status: serr.Status(),
			Error:  serr,
			Data: struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}{serr.Error(), serr.Code()},
		}
	}

	if _, ok := err.(*shttperr.ValidationError); ok {
		return ValidationError(err)
	}

	return UnexpectedError(err)
}

// ValidationError prepares the validation errors in a user-friendly way
// and returns the response object with populated data.
func ValidationError(err error) *Response {
	data := map[string]any{"ok": false}

	if verr, ok := err.(*shttperr.ValidationError); ok {
		data["errors"] = verr.Errors
	}

	return &Response{
		Status: http.StatusBadRequest,
		Data:   data,
	}
}

// UnexpectedError prints a user-friendly error to the end-user
// and it logs the error.
func UnexpectedError(err error) *Response {
	return &Response{
		Status: http.StatusInternalServerError,
		Error:  err,
		Data: map[string]any{
			"ok":    false,
			"error": "unexpected-error",
		},
	}
}
