package shttptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// Response wraps httptest.ResponseRecorder
type Response struct {
	*httptest.ResponseRecorder
}

// String returns the response as a string.
func (r *Response) String() string {
	b := r.Byte()
	return strings.TrimSpace(string(b))
}

// Byte returns the response as an array of bytes.
func (r *Response) Byte() []byte {
	b, err := io.ReadAll(r.Body)

	if err != nil {
		panic(err)
	}

	return b
}

// Map decodes the json response into a map.
func (r *Response) Map() map[string]any {
	data := map[string]any{}

	if err := json.Unmarshal(r.Byte(), &data); err != nil {
		panic(err)
	}

	return data
}

// Request is used to test a generic endpoint.
func Request(h http.Handler, method, target string, body any) Response {
	return RequestWithHeaders(h, method, target, body, nil)
}

// RequestWithHeaders is used to test a generic endpoint. Body values of type
// string or []byte are sent as-is, everything else is json encoded.
func RequestWithHeaders(h http.Handler, method, target string, body any, headers map[string]string) Response {
	var httpBody io.Reader
	httpHeaders := make(http.Header)

	for k, v := range headers {
		httpHeaders.Add(k, v)
	}

	if httpHeaders.Get("Content-Type") == "" {
		httpHeaders.Set("Content-Type", "application/json")
	}

	switch data := body.(type) {
	case nil:
	case string:
		httpBody = strings.NewReader(data)
	case []byte:
		httpBody = bytes.NewReader(data)
	default:
		b, err := json.Marshal(body)

		if err != nil {
			panic("Was expecting to marshal request data but could not")
		}

		httpBody = bytes.NewReader(b)
	}

	r := httptest.NewRequest(method, target, httpBody)
	w := httptest.NewRecorder()

	r.Header = httpHeaders

	h.ServeHTTP(w, r)
	return Response{w}
}
