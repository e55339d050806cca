package functionhandlers

import (
	"sync"

	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/sapi"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/limiter"
)

// DefaultAPI is the platform API used by the handlers. When nil, it is
// built from the configuration on first use.
var DefaultAPI sapi.API

var apiMux sync.Mutex

// Services sets the Handlers for this service.
func Services(r *shttp.Router) *shttp.Service {
	s := r.NewService()

	s.NewEndpoint("/function").
		Handler(shttp.MethodPost, "/environment-variables", shttp.WithRateLimit(handlerFunctionEnvGet, rateLimitOptions()))

	return s
}

func rateLimitOptions() *limiter.Options {
	cnf := config.Get().RateLimit

	if cnf == nil {
		return nil
	}

	return &limiter.Options{
		Limit:    cnf.Limit,
		Burst:    cnf.Burst,
		Duration: cnf.Duration,
		Hash:     []string{"ip", "path"},
	}
}

func platformAPI() (sapi.API, error) {
	apiMux.Lock()
	defer apiMux.Unlock()

	if DefaultAPI == nil {
		api, err := sapi.FromConfig(config.Get())

		if err != nil {
			return nil, err
		}

		DefaultAPI = api
	}

	return DefaultAPI, nil
}
