package shttp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/NYTimes/gziphandler"
	"github.com/google/uuid"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/limiter"
)

// HeaderRequestID is the header carrying the request id.
const HeaderRequestID = "X-Request-Id"

type requestIDKey struct{}

// requestIDHandler reuses the incoming request id or generates a new one,
// stores it in the request context and echoes it in the response.
func requestIDHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)

		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, id)
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// gzipHandler performs a gzip compression whenever the client can handle it.
func gzipHandler(h http.Handler) http.Handler {
	return gziphandler.GzipHandler(h)
}

// WithRateLimit limits a given endpoint.
// Limit is the number of events that this endpoint can handle for a given visitor
// during Duration. Burst is the maximum number of tokens a visitor can accumulate.
// Once the visitor is out of tokens, a 429 response is returned.
func WithRateLimit(handler RequestFunc, options ...*limiter.Options) RequestFunc {
	var opts *limiter.Options

	if len(options) > 0 {
		opts = options[0]
	}

	store := limiter.NewStore(opts)
	limit := fmt.Sprintf("%d/%s", store.Limit, store.Duration.String())

	return func(req *RequestContext) *Response {
		visit, resetAt := store.Get(limiter.Key(req.Request, store.Hash))
		reset := strconv.FormatInt(resetAt.Unix(), 10)

		if !visit.Limiter.Allow() {
			res := Backoff(store.Duration)
			res.Headers.Set("X-RateLimit-Limit", limit)
			res.Headers.Set("X-RateLimit-Reset", reset)
			res.Headers.Set("X-RateLimit-Remaining", "0")
			return res
		}

		if req.writer != nil {
			remaining := int(visit.Limiter.Tokens())

			req.writer.Header().Set("X-RateLimit-Limit", limit)
			req.writer.Header().Set("X-RateLimit-Reset", reset)
			req.writer.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		return handler(req)
	}
}
