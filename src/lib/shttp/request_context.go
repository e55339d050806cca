package shttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/shttperr"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
)

// RequestContext is the context for the current request.
type RequestContext struct {
	*http.Request
	writer http.ResponseWriter

	// StartTime is the time when the request was first received.
	StartTime time.Time
}

// NewRequestContext returns a new context object.
func NewRequestContext(req *http.Request) *RequestContext {
	if req == nil {
		req = &http.Request{}
	}

	return &RequestContext{
		Request:   req,
		StartTime: time.Now(),
	}
}

// Http methods
const (
	MethodPost    = http.MethodPost
	MethodGet     = http.MethodGet
	MethodPut     = http.MethodPut
	MethodDelete  = http.MethodDelete
	MethodHead    = http.MethodHead
	MethodOptions = http.MethodOptions
)

// SetWriter allows setting a different writer than http.ResponseWriter.
// It is mostly used for test purposes.
func (r *RequestContext) SetWriter(w http.ResponseWriter) {
	r.writer = w
}

// Writer returns the ResponseWriter object.
func (r *RequestContext) Writer() http.ResponseWriter {
	return r.writer
}

// Vars returns the route parameters.
func (r *RequestContext) Vars() map[string]string {
	return mux.Vars(r.Request)
}

// URL returns the current request's url.
func (r *RequestContext) URL() *url.URL {
	if r.Request.URL == nil {
		return &url.URL{}
	}

	return r.Request.URL
}

// RequestID returns the id attached by the request id middleware.
func (r *RequestContext) RequestID() string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}

	return r.Header.Get(HeaderRequestID)
}

// Decode parses the json request body into out.
func (r *RequestContext) Decode(out any) error {
	if r.Request.Body == nil {
		return &shttperr.ValidationError{Errors: map[string]string{"body": "Request body is required."}}
	}

	contents, err := io.ReadAll(r.Request.Body)

	if err != nil {
		return err
	}

	r.Request.Body = io.NopCloser(bytes.NewBuffer(contents))

	if err = json.Unmarshal(contents, out); err != nil {
		verr := &shttperr.ValidationError{}
		verr.SetError("body", fmt.Sprintf("Cannot unmarshal request: %s", err.Error()))
		return verr
	}

	return nil
}

// Post parses the json request body into out and validates it
// with the struct `validate` tags.
func (r *RequestContext) Post(out any) error {
	if err := r.Decode(out); err != nil {
		return err
	}

	if err := utils.Validator().Struct(out); err != nil {
		if errs, ok := err.(utils.ValidationErrors); ok {
			verr := &shttperr.ValidationError{}

			for _, fe := range errs {
				field := fe.Field()
				verr.SetError(strings.ToLower(field[:1])+field[1:], fmt.Sprintf("Failed on the '%s' rule.", fe.Tag()))
			}

			return verr
		}

		return err
	}

	return nil
}
