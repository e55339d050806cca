package shttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

// ServiceFunc represents a service function signature.
type ServiceFunc func(r *Router) *Service

// RequestFunc represents a request function signature.
type RequestFunc func(*RequestContext) *Response

// Service is a service wrapper for the given endpoints.
type Service struct {
	router   *Router
	handlers map[string]RequestFunc
}

// NewEndpoint returns a new endpoint handler.
// The returned instance can be used to attach handlers to various endpoints.
func (s *Service) NewEndpoint(ep string) *ServiceEndpoint {
	return &ServiceEndpoint{
		service: s,
		prefix:  ep,
	}
}

// Handlers returns the registered handler endpoints.
func (s *Service) Handlers() []string {
	handlers := []string{}

	for k := range s.handlers {
		handlers = append(handlers, k)
	}

	sort.Strings(handlers)

	return handlers
}

// HandlerFuncs returns the registered handler endpoints, mapped to their functions.
func (s *Service) HandlerFuncs() map[string]RequestFunc {
	return s.handlers
}

// Router returns the associated router.
func (s *Service) Router() *Router {
	return s.router
}

// ServiceEndpoint is a handler for endpoints. It allows attaching
// handlers to various endpoints
type ServiceEndpoint struct {
	service     *Service
	prefix      string
	middlewares []RequestFunc
}

// Middleware registers a function which runs before every handler of the endpoint.
// Returning a non-nil response terminates the request.
func (se *ServiceEndpoint) Middleware(handler RequestFunc) *ServiceEndpoint {
	se.middlewares = append(se.middlewares, handler)
	return se
}

// Handler is a middleware for generic routes.
func (se *ServiceEndpoint) Handler(method, path string, handler RequestFunc) *ServiceEndpoint {
	endpoint := se.prefix + path
	wrapper := func(req *RequestContext) *Response {
		for _, mw := range se.middlewares {
			if res := mw(req); res != nil {
				return res
			}
		}

		return handler(req)
	}

	se.service.router.mux.HandleFunc(
		endpoint,
		func(w http.ResponseWriter, r *http.Request) {
			req := requestContext(w, r)
			res := wrapper(req)
			se.Send(w, req, res)
		},
	).Methods(method)

	if se.service.handlers == nil {
		se.service.handlers = map[string]RequestFunc{}
	}

	se.service.handlers[fmt.Sprintf("%s:%s", method, endpoint)] = wrapper

	return se
}

// Send writes the response to the client.
func (se *ServiceEndpoint) Send(w http.ResponseWriter, req *RequestContext, res *Response) {
	if res == nil {
		return
	}

	if res.Error != nil {
		slog.Errorf("request failed: method=%s path=%s err=%v", req.Method, req.URL().Path, res.Error)
	}

	for k, v := range res.Headers {
		for _, h := range v {
			w.Header().Add(k, h)
		}
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	if res.Status == 0 {
		res.Status = http.StatusOK
	}

	slog.Debug(slog.LogOpts{
		Msg:   "request served",
		Level: slog.DL3,
		Payload: []zap.Field{
			zap.String("request_id", req.RequestID()),
			zap.String("method", req.Method),
			zap.String("path", req.URL().Path),
			zap.Int("status", res.Status),
			zap.Duration("duration", time.Since(req.StartTime)),
		},
	})

	w.WriteHeader(res.Status)

	switch data := res.Data.(type) {
	case []byte:
		w.Write(data)
	case string:
		w.Write([]byte(data))
	case nil:
	default:
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error(err.Error())
		}
	}
}

func requestContext(w http.ResponseWriter, r *http.Request) *RequestContext {
	return &RequestContext{
		writer:    w,
		Request:   r,
		StartTime: time.Now(),
	}
}
