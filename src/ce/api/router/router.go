package router

import (
	"github.com/stormkit-io/fnmanagement/src/ce/api/function/functionhandlers"
	"github.com/stormkit-io/fnmanagement/src/ce/api/status"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp"
)

// Get returns the api router with every service and middleware registered.
func Get() *shttp.Router {
	r := shttp.NewRouter()
	r.RegisterMiddleware(WithCors)
	r.RegisterMiddleware(WithTimeout)

	Cors()

	r.RegisterService(status.Services)
	r.RegisterService(functionhandlers.Services)

	return r.WithGzip().WithRequestID()
}
