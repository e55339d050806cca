package functionenv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stormkit-io/fnmanagement/src/lib/errors"
	"github.com/stormkit-io/fnmanagement/src/lib/sapi"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"go.uber.org/zap"
)

// Handle retrieves the environment variables of the requested function.
// It never fails: every error is reported through the response status.
func Handle(ctx context.Context, req *Request, api sapi.API) (res *Response) {
	if req == nil {
		req = &Request{}
	}

	api.Log("function environment variables requested", zap.Any("function", req.Function))

	defer func() {
		if r := recover(); r != nil {
			err := errors.New(errors.ErrorTypeInternal, fmt.Sprintf("recovered from panic: %v", r))
			api.Log("function environment variables lookup panicked", zap.Error(err))
			res = Failure(err)
		}

		api.Log("function environment variables response", zap.Any("response", res))
	}()

	id, err := functionID(req)

	if err != nil {
		return Failure(err)
	}

	if err := lookupFunction(ctx, api, req.Email, id); err != nil {
		return Failure(err)
	}

	vars, err := environmentVariables(ctx, api, req.StorageUserID, id)

	if err != nil {
		return Failure(err)
	}

	return Success(id, vars)
}

func functionID(req *Request) (string, error) {
	if req.Function == nil {
		return "", errors.Wrap(errors.ErrMalformedInput, errors.ErrorTypeValidation, "function is missing")
	}

	if req.Function.foreignID {
		return "", errors.Wrap(errors.ErrFunctionNotFound, errors.ErrorTypeNotFound, "function id is not a string")
	}

	if req.Function.ID == nil {
		return "", errors.Wrap(errors.ErrMalformedInput, errors.ErrorTypeValidation, "function id is missing")
	}

	return *req.Function.ID, nil
}

// lookupFunction checks that the function id is one of the values registered
// for the caller. Registry keys are labels and are not matched.
func lookupFunction(ctx context.Context, api sapi.API, email, id string) error {
	raw, found, err := api.Get(ctx, RegistryKey(email), true)

	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeRegistry, "cannot list functions")
	}

	if !found || raw == "" {
		return errors.ErrFunctionNotFound
	}

	functions := map[string]any{}

	if err := json.Unmarshal([]byte(raw), &functions); err != nil {
		api.Log("function registry entry is not a json object", zap.String("email", email), zap.Error(err))
		return errors.Wrap(err, errors.ErrorTypeNotFound, "unreadable function registry")
	}

	ids := []string{}

	for _, v := range functions {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}

	if !utils.InSliceStringCS(ids, id) {
		return errors.New(errors.ErrorTypeNotFound, "no such function").WithContext("function_id", id)
	}

	return nil
}

// environmentVariables reads the stored environment variables. A missing
// value and a failed read both yield an empty string.
func environmentVariables(ctx context.Context, api sapi.API, storageUserID, id string) (string, error) {
	dlc, err := api.PrivilegedDataLayerClient(ctx, storageUserID)

	if err != nil {
		return "", err
	}

	defer func() {
		if err := dlc.Shutdown(); err != nil {
			api.Log("cannot shut down data layer client", zap.Error(err))
		}
	}()

	vars, found, err := dlc.Get(ctx, EnvironmentVariablesKey(id))

	if err != nil {
		api.Log("cannot read function environment variables", zap.String("function_id", id), zap.Error(err))
		return "", nil
	}

	if !found {
		return "", nil
	}

	return vars, nil
}
