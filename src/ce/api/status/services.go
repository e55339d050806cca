package status

import (
	"net/http"

	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/rediscache"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
)

// Services installs the api-status handlers.
func Services(r *shttp.Router) *shttp.Service {
	s := r.NewService()
	e := s.NewEndpoint("/")

	e.Handler(shttp.MethodGet, "", handlerAPIStatus)
	e.Handler(shttp.MethodHead, "", handlerAPIStatus)
	e.Handler(shttp.MethodGet, "health", handlerAPIHealth)

	return s
}

func handlerAPIStatus(req *shttp.RequestContext) *shttp.Response {
	return &shttp.Response{
		Status: http.StatusOK,
		Data: map[string]string{
			"version": config.Get().Version,
		},
	}
}

func handlerAPIHealth(req *shttp.RequestContext) *shttp.Response {
	if err := rediscache.Ping(req.Context()); err != nil {
		slog.Errorf("health check failed: %s", err.Error())

		return &shttp.Response{
			Status: http.StatusServiceUnavailable,
			Data:   map[string]string{"redis": "error"},
		}
	}

	return &shttp.Response{
		Status: http.StatusOK,
		Data:   map[string]string{"redis": "ok"},
	}
}
