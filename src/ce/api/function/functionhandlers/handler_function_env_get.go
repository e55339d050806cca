package functionhandlers

import (
	"net/http"
	"time"

	"github.com/stormkit-io/fnmanagement/src/ce/api/function/functionenv"
	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp"
	"github.com/stormkit-io/fnmanagement/src/lib/shttp/shttperr"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"github.com/stormkit-io/fnmanagement/src/lib/tracking"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
)

func handlerFunctionEnvGet(req *shttp.RequestContext) *shttp.Response {
	data := &functionenv.Request{}

	if err := req.Decode(data); err != nil {
		return shttp.Error(err)
	}

	api, err := platformAPI()

	if err != nil {
		slog.Errorf("cannot build platform api: %s", err.Error())
		return shttp.Error(shttperr.New(http.StatusServiceUnavailable, "Platform API is unavailable.", "api-unavailable"))
	}

	var res *functionenv.Response

	if err := utils.Validator().Struct(data); err != nil {
		res = functionenv.Failure(errors.Wrap(errors.ErrMalformedInput, errors.ErrorTypeValidation, err.Error()))
	} else {
		res = functionenv.Handle(req.Context(), data, api)
	}

	tracking.RecordLookup(res.Status, time.Since(req.StartTime))

	return &shttp.Response{
		Status: http.StatusOK,
		Data:   res,
	}
}
