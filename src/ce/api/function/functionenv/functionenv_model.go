package functionenv

import (
	"encoding/json"
	"fmt"
)

// Response statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// EnvironmentVariablesKeyPrefix is the data layer key prefix under which
// the serialized environment variables of a function are stored.
const EnvironmentVariablesKeyPrefix = "grain_environment_variables_"

// RegistryKeySuffix is appended to the caller identity to build the
// registry key which lists the caller's functions.
const RegistryKeySuffix = "_list_grains"

// EnvironmentVariablesKey returns the data layer key for the given function id.
func EnvironmentVariablesKey(functionID string) string {
	return EnvironmentVariablesKeyPrefix + functionID
}

// RegistryKey returns the registry key holding the functions of the caller.
func RegistryKey(email string) string {
	return email + RegistryKeySuffix
}

// FunctionRef references a function by id.
type FunctionRef struct {
	ID *string `json:"id,omitempty"`

	// foreignID is set when the id is present but is not a string.
	// Such an id never matches a registered function.
	foreignID bool
}

// UnmarshalJSON decodes the reference. An id of any json type other than
// a string is accepted and marked as foreign instead of failing the decode.
func (f *FunctionRef) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}

	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*f = FunctionRef{}

	raw, ok := fields["id"]

	if !ok {
		return nil
	}

	var id string

	if err := json.Unmarshal(raw, &id); err != nil || string(raw) == "null" {
		f.foreignID = true
		return nil
	}

	f.ID = &id
	return nil
}

// Request is the input of the lookup handler.
type Request struct {
	// Email is the identity of the caller.
	Email string `json:"email" validate:"required,notblank"`

	// StorageUserID scopes the privileged data layer access.
	StorageUserID string `json:"storage_userid" validate:"required,notblank"`

	// Function is the function whose environment variables are requested.
	Function *FunctionRef `json:"function,omitempty"`
}

// FunctionEnv holds the environment variables of a function.
type FunctionEnv struct {
	EnvironmentVariables string `json:"environment_variables"`
}

// ResponseData is the payload of a Response.
type ResponseData struct {
	Function *FunctionEnv `json:"function,omitempty"`
	Message  string       `json:"message"`
}

// Response is the output of the lookup handler.
type Response struct {
	Status string       `json:"status"`
	Data   ResponseData `json:"data"`
}

// IsSuccess returns true when the lookup succeeded.
func (r *Response) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Success returns a success response carrying the environment variables.
func Success(functionID, vars string) *Response {
	return &Response{
		Status: StatusSuccess,
		Data: ResponseData{
			Function: &FunctionEnv{EnvironmentVariables: vars},
			Message:  fmt.Sprintf("Retrieved environment variables for function %s.", functionID),
		},
	}
}

// Failure returns a failure response with the message matching the error.
func Failure(err error) *Response {
	return &Response{
		Status: StatusFailure,
		Data: ResponseData{
			Message: FailureMessage(err),
		},
	}
}
