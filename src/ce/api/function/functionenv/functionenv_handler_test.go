package functionenv_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stormkit-io/fnmanagement/src/ce/api/function/functionenv"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"github.com/stormkit-io/fnmanagement/src/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerSuite struct {
	suite.Suite
	api *mocks.API
	dlc *mocks.DataLayerClient
	ctx context.Context
}

func (s *HandlerSuite) BeforeTest(_, _ string) {
	s.ctx = context.Background()
	s.api = mocks.NewAPI(s.T())
	s.dlc = mocks.NewDataLayerClient(s.T())

	s.api.On("Log", mock.Anything, mock.Anything).Maybe()
	s.api.On("Log", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func (s *HandlerSuite) request(id *string) *functionenv.Request {
	return &functionenv.Request{
		Email:         "u1",
		StorageUserID: "s1",
		Function:      &functionenv.FunctionRef{ID: id},
	}
}

func (s *HandlerSuite) registry(value string, found bool, err error) {
	s.api.On("Get", s.ctx, "u1_list_grains", true).Return(value, found, err).Once()
}

func (s *HandlerSuite) toJSON(res *functionenv.Response) string {
	data, err := json.Marshal(res)
	s.NoError(err)
	return string(data)
}

func (s *HandlerSuite) Test_NonStringID() {
	req := &functionenv.Request{}
	s.NoError(json.Unmarshal([]byte(`{"email":"u1","storage_userid":"s1","function":{"id":123}}`), req))

	res := functionenv.Handle(s.ctx, req, s.api)

	s.JSONEq(`{"status":"failure","data":{"message":"Couldn't retrieve function environment variables; no such function."}}`, s.toJSON(res))
	s.api.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
	s.api.AssertNotCalled(s.T(), "PrivilegedDataLayerClient", mock.Anything, mock.Anything)
}

func (s *HandlerSuite) Test_Success() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(s.dlc, nil).Once()
	s.dlc.On("Get", s.ctx, "grain_environment_variables_fn-123").Return("FOO=bar", true, nil).Once()
	s.dlc.On("Shutdown").Return(nil).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.True(res.IsSuccess())
	s.JSONEq(
		`{"status":"success","data":{"function":{"environment_variables":"FOO=bar"},"message":"Retrieved environment variables for function fn-123."}}`,
		s.toJSON(res),
	)
}

func (s *HandlerSuite) Test_Success_NoBlob() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(s.dlc, nil).Once()
	s.dlc.On("Get", s.ctx, "grain_environment_variables_fn-123").Return("", false, nil).Once()
	s.dlc.On("Shutdown").Return(nil).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.JSONEq(
		`{"status":"success","data":{"function":{"environment_variables":""},"message":"Retrieved environment variables for function fn-123."}}`,
		s.toJSON(res),
	)
}

func (s *HandlerSuite) Test_Success_ReadErrorDegradesToEmpty() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(s.dlc, nil).Once()
	s.dlc.On("Get", s.ctx, "grain_environment_variables_fn-123").Return("", false, errors.New("connection reset")).Once()
	s.dlc.On("Shutdown").Return(nil).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.Equal(functionenv.StatusSuccess, res.Status)
	s.Equal("", res.Data.Function.EnvironmentVariables)
	s.dlc.AssertNumberOfCalls(s.T(), "Shutdown", 1)
}

func (s *HandlerSuite) Test_Success_ShutdownErrorIsIgnored() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(s.dlc, nil).Once()
	s.dlc.On("Get", s.ctx, "grain_environment_variables_fn-123").Return("FOO=bar", true, nil).Once()
	s.dlc.On("Shutdown").Return(errors.New("already closed")).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.True(res.IsSuccess())
	s.Equal("FOO=bar", res.Data.Function.EnvironmentVariables)
}

func (s *HandlerSuite) Test_Failure_ReadPanics() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(s.dlc, nil).Once()
	s.dlc.On("Get", s.ctx, "grain_environment_variables_fn-123").Panic("driver exploded").Once()
	s.dlc.On("Shutdown").Return(nil).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.JSONEq(
		`{"status":"failure","data":{"message":"Couldn't retrieve function environment variables; internal error."}}`,
		s.toJSON(res),
	)

	s.dlc.AssertNumberOfCalls(s.T(), "Shutdown", 1)
}

func (s *HandlerSuite) Test_Failure_AcquisitionError() {
	s.registry(`{"a":"fn-123"}`, true, nil)
	s.api.On("PrivilegedDataLayerClient", s.ctx, "s1").Return(nil, errors.New("unauthorized")).Once()

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)

	s.Equal(functionenv.StatusFailure, res.Status)
	s.Equal(functionenv.MessageInternalError, res.Data.Message)
	s.Nil(res.Data.Function)
	s.dlc.AssertNotCalled(s.T(), "Shutdown")
}

func (s *HandlerSuite) Test_Failure_MissingFunction() {
	req := &functionenv.Request{Email: "u1", StorageUserID: "s1"}
	res := functionenv.Handle(s.ctx, req, s.api)

	s.JSONEq(
		`{"status":"failure","data":{"message":"Couldn't retrieve function environment variables; malformed input."}}`,
		s.toJSON(res),
	)

	s.api.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerSuite) Test_Failure_MissingFunctionID() {
	res := functionenv.Handle(s.ctx, s.request(nil), s.api)

	s.Equal(functionenv.StatusFailure, res.Status)
	s.Equal(functionenv.MessageMalformedInput, res.Data.Message)
	s.api.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerSuite) Test_Failure_NilRequest() {
	res := functionenv.Handle(s.ctx, nil, s.api)
	s.Equal(functionenv.MessageMalformedInput, res.Data.Message)
}

func (s *HandlerSuite) Test_Failure_NoSuchFunction() {
	s.registry(`{"a":"fn-123"}`, true, nil)

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-999")), s.api)

	s.JSONEq(
		`{"status":"failure","data":{"message":"Couldn't retrieve function environment variables; no such function."}}`,
		s.toJSON(res),
	)

	s.api.AssertNotCalled(s.T(), "PrivilegedDataLayerClient", mock.Anything, mock.Anything)
}

func (s *HandlerSuite) Test_Failure_RegistryKeysAreNotMatched() {
	s.registry(`{"fn-123":"fn-456"}`, true, nil)

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)
	s.Equal(functionenv.MessageNoSuchFunction, res.Data.Message)
}

func (s *HandlerSuite) Test_Failure_EmptyRegistry() {
	registries := []struct {
		value string
		found bool
	}{
		{value: "", found: false},
		{value: "", found: true},
		{value: "{}", found: true},
		{value: "not-json", found: true},
		{value: `["fn-123"]`, found: true},
	}

	for _, r := range registries {
		s.registry(r.value, r.found, nil)

		res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)
		s.Equal(functionenv.StatusFailure, res.Status, r.value)
		s.Equal(functionenv.MessageNoSuchFunction, res.Data.Message, r.value)
	}
}

func (s *HandlerSuite) Test_Failure_RegistryError() {
	s.registry("", false, errors.New("i/o timeout"))

	res := functionenv.Handle(s.ctx, s.request(utils.Ptr("fn-123")), s.api)
	s.Equal(functionenv.StatusFailure, res.Status)
	s.Equal(functionenv.MessageInternalError, res.Data.Message)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, &HandlerSuite{})
}
