// Package testutil provides testify mocks for channel collaborators.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
)

// MockResult is a mock implementation of channel.Result.
type MockResult struct {
	mock.Mock
}

// Success mocks the Success method.
func (m *MockResult) Success(result interface{}) {
	m.Called(result)
}

// Error mocks the Error method.
func (m *MockResult) Error(code, message string, details interface{}) {
	m.Called(code, message, details)
}

// NotImplemented mocks the NotImplemented method.
func (m *MockResult) NotImplemented() {
	m.Called()
}

// MockHandler is a mock implementation of channel.Handler.
type MockHandler struct {
	mock.Mock
}

// OnMethodCall mocks the OnMethodCall method.
func (m *MockHandler) OnMethodCall(call channel.MethodCall, result channel.Result) {
	m.Called(call, result)
}

// NewMockResult creates a mock result whose expectations are asserted when
// the test ends.
func NewMockResult(t *testing.T) *MockResult {
	t.Helper()
	m := new(MockResult)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewMockHandler creates a mock handler that answers every call with value.
func NewMockHandler(t *testing.T, value interface{}) *MockHandler {
	t.Helper()
	m := new(MockHandler)

	m.On("OnMethodCall", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(channel.Result).Success(value)
		}).
		Maybe()

	return m
}
