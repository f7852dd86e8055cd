// Mocks for the interfaces in client.go, in the layout mockgen produces.
// Regenerate with go generate; see the directive in client.go.

package eas

import (
	context "context"
	reflect "reflect"
	time "time"

	gomock "go.uber.org/mock/gomock"
)

// MockTransport is a mock of Transport interface.
type MockTransport struct {
	ctrl     *gomock.Controller
	recorder *MockTransportMockRecorder
	isgomock struct{}
}

// MockTransportMockRecorder is the mock recorder for MockTransport.
type MockTransportMockRecorder struct {
	mock *MockTransport
}

// NewMockTransport creates a new mock instance.
func NewMockTransport(ctrl *gomock.Controller) *MockTransport {
	mock := &MockTransport{ctrl: ctrl}
	mock.recorder = &MockTransportMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransport) EXPECT() *MockTransportMockRecorder {
	return m.recorder
}

// FolderSync mocks base method.
func (m *MockTransport) FolderSync(ctx context.Context, req *FolderSync) (*FolderSync, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FolderSync", ctx, req)
	ret0, _ := ret[0].(*FolderSync)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FolderSync indicates an expected call of FolderSync.
func (mr *MockTransportMockRecorder) FolderSync(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FolderSync", reflect.TypeOf((*MockTransport)(nil).FolderSync), ctx, req)
}

// MoveItems mocks base method.
func (m *MockTransport) MoveItems(ctx context.Context, req *MoveItems) (*MoveItemsResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MoveItems", ctx, req)
	ret0, _ := ret[0].(*MoveItemsResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MoveItems indicates an expected call of MoveItems.
func (mr *MockTransportMockRecorder) MoveItems(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MoveItems", reflect.TypeOf((*MockTransport)(nil).MoveItems), ctx, req)
}

// Ping mocks base method.
func (m *MockTransport) Ping(ctx context.Context, req *PingRequest, timeout time.Duration) (*PingResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Ping", ctx, req, timeout)
	ret0, _ := ret[0].(*PingResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Ping indicates an expected call of Ping.
func (mr *MockTransportMockRecorder) Ping(ctx, req, timeout any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Ping", reflect.TypeOf((*MockTransport)(nil).Ping), ctx, req, timeout)
}

// Provision mocks base method.
func (m *MockTransport) Provision(ctx context.Context, req *Provision) (*Provision, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Provision", ctx, req)
	ret0, _ := ret[0].(*Provision)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Provision indicates an expected call of Provision.
func (mr *MockTransportMockRecorder) Provision(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Provision", reflect.TypeOf((*MockTransport)(nil).Provision), ctx, req)
}

// SendMail mocks base method.
func (m *MockTransport) SendMail(ctx context.Context, message []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendMail", ctx, message)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendMail indicates an expected call of SendMail.
func (mr *MockTransportMockRecorder) SendMail(ctx, message any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendMail", reflect.TypeOf((*MockTransport)(nil).SendMail), ctx, message)
}

// Sync mocks base method.
func (m *MockTransport) Sync(ctx context.Context, req *Sync) (*Sync, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sync", ctx, req)
	ret0, _ := ret[0].(*Sync)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Sync indicates an expected call of Sync.
func (mr *MockTransportMockRecorder) Sync(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sync", reflect.TypeOf((*MockTransport)(nil).Sync), ctx, req)
}
