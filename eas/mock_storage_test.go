// Mocks for the interfaces in storage.go, in the layout mockgen produces.
// Regenerate with go generate; see the directive in storage.go.

package eas

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockFolderStore is a mock of FolderStore interface.
type MockFolderStore struct {
	ctrl     *gomock.Controller
	recorder *MockFolderStoreMockRecorder
	isgomock struct{}
}

// MockFolderStoreMockRecorder is the mock recorder for MockFolderStore.
type MockFolderStoreMockRecorder struct {
	mock *MockFolderStore
}

// NewMockFolderStore creates a new mock instance.
func NewMockFolderStore(ctrl *gomock.Controller) *MockFolderStore {
	mock := &MockFolderStore{ctrl: ctrl}
	mock.recorder = &MockFolderStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockFolderStore) EXPECT() *MockFolderStoreMockRecorder {
	return m.recorder
}

// ChangeFolder mocks base method.
func (m *MockFolderStore) ChangeFolder(serverID string, name string, folderType FolderType) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChangeFolder", serverID, name, folderType)
	ret0, _ := ret[0].(error)
	return ret0
}

// ChangeFolder indicates an expected call of ChangeFolder.
func (mr *MockFolderStoreMockRecorder) ChangeFolder(serverID, name, folderType any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChangeFolder", reflect.TypeOf((*MockFolderStore)(nil).ChangeFolder), serverID, name, folderType)
}

// CreateFolders mocks base method.
func (m *MockFolderStore) CreateFolders(folders []FolderInfo) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateFolders", folders)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateFolders indicates an expected call of CreateFolders.
func (mr *MockFolderStoreMockRecorder) CreateFolders(folders any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateFolders", reflect.TypeOf((*MockFolderStore)(nil).CreateFolders), folders)
}

// DeleteFolders mocks base method.
func (m *MockFolderStore) DeleteFolders(serverIDs []string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteFolders", serverIDs)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteFolders indicates an expected call of DeleteFolders.
func (mr *MockFolderStoreMockRecorder) DeleteFolders(serverIDs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteFolders", reflect.TypeOf((*MockFolderStore)(nil).DeleteFolders), serverIDs)
}

// ExtraString mocks base method.
func (m *MockFolderStore) ExtraString(key string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExtraString", key)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExtraString indicates an expected call of ExtraString.
func (mr *MockFolderStoreMockRecorder) ExtraString(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExtraString", reflect.TypeOf((*MockFolderStore)(nil).ExtraString), key)
}

// Folder mocks base method.
func (m *MockFolderStore) Folder(serverID string) (MessageFolder, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Folder", serverID)
	ret0, _ := ret[0].(MessageFolder)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Folder indicates an expected call of Folder.
func (mr *MockFolderStoreMockRecorder) Folder(serverID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Folder", reflect.TypeOf((*MockFolderStore)(nil).Folder), serverID)
}

// SetExtraString mocks base method.
func (m *MockFolderStore) SetExtraString(key string, value string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetExtraString", key, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetExtraString indicates an expected call of SetExtraString.
func (mr *MockFolderStoreMockRecorder) SetExtraString(key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetExtraString", reflect.TypeOf((*MockFolderStore)(nil).SetExtraString), key, value)
}

// MockMessageFolder is a mock of MessageFolder interface.
type MockMessageFolder struct {
	ctrl     *gomock.Controller
	recorder *MockMessageFolderMockRecorder
	isgomock struct{}
}

// MockMessageFolderMockRecorder is the mock recorder for MockMessageFolder.
type MockMessageFolderMockRecorder struct {
	mock *MockMessageFolder
}

// NewMockMessageFolder creates a new mock instance.
func NewMockMessageFolder(ctrl *gomock.Controller) *MockMessageFolder {
	mock := &MockMessageFolder{ctrl: ctrl}
	mock.recorder = &MockMessageFolderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMessageFolder) EXPECT() *MockMessageFolderMockRecorder {
	return m.recorder
}

// DestroyMessages mocks base method.
func (m *MockMessageFolder) DestroyMessages(serverIDs []string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DestroyMessages", serverIDs)
	ret0, _ := ret[0].(error)
	return ret0
}

// DestroyMessages indicates an expected call of DestroyMessages.
func (mr *MockMessageFolderMockRecorder) DestroyMessages(serverIDs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DestroyMessages", reflect.TypeOf((*MockMessageFolder)(nil).DestroyMessages), serverIDs)
}

// FolderExtraString mocks base method.
func (m *MockMessageFolder) FolderExtraString(key string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FolderExtraString", key)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FolderExtraString indicates an expected call of FolderExtraString.
func (mr *MockMessageFolderMockRecorder) FolderExtraString(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FolderExtraString", reflect.TypeOf((*MockMessageFolder)(nil).FolderExtraString), key)
}

// SaveCompleteMessage mocks base method.
func (m *MockMessageFolder) SaveCompleteMessage(msg Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SaveCompleteMessage", msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// SaveCompleteMessage indicates an expected call of SaveCompleteMessage.
func (mr *MockMessageFolderMockRecorder) SaveCompleteMessage(msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SaveCompleteMessage", reflect.TypeOf((*MockMessageFolder)(nil).SaveCompleteMessage), msg)
}

// SavePartialMessage mocks base method.
func (m *MockMessageFolder) SavePartialMessage(msg Message) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SavePartialMessage", msg)
	ret0, _ := ret[0].(error)
	return ret0
}

// SavePartialMessage indicates an expected call of SavePartialMessage.
func (mr *MockMessageFolderMockRecorder) SavePartialMessage(msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SavePartialMessage", reflect.TypeOf((*MockMessageFolder)(nil).SavePartialMessage), msg)
}

// SetFolderExtraString mocks base method.
func (m *MockMessageFolder) SetFolderExtraString(key string, value string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetFolderExtraString", key, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetFolderExtraString indicates an expected call of SetFolderExtraString.
func (mr *MockMessageFolderMockRecorder) SetFolderExtraString(key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetFolderExtraString", reflect.TypeOf((*MockMessageFolder)(nil).SetFolderExtraString), key, value)
}

// SetMessageFlag mocks base method.
func (m *MockMessageFolder) SetMessageFlag(serverID string, flag Flag, value bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMessageFlag", serverID, flag, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetMessageFlag indicates an expected call of SetMessageFlag.
func (mr *MockMessageFolderMockRecorder) SetMessageFlag(serverID, flag, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMessageFlag", reflect.TypeOf((*MockMessageFolder)(nil).SetMessageFlag), serverID, flag, value)
}

// MockPolicyStore is a mock of PolicyStore interface.
type MockPolicyStore struct {
	ctrl     *gomock.Controller
	recorder *MockPolicyStoreMockRecorder
	isgomock struct{}
}

// MockPolicyStoreMockRecorder is the mock recorder for MockPolicyStore.
type MockPolicyStoreMockRecorder struct {
	mock *MockPolicyStore
}

// NewMockPolicyStore creates a new mock instance.
func NewMockPolicyStore(ctrl *gomock.Controller) *MockPolicyStore {
	mock := &MockPolicyStore{ctrl: ctrl}
	mock.recorder = &MockPolicyStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPolicyStore) EXPECT() *MockPolicyStoreMockRecorder {
	return m.recorder
}

// PolicyKey mocks base method.
func (m *MockPolicyStore) PolicyKey() (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PolicyKey")
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PolicyKey indicates an expected call of PolicyKey.
func (mr *MockPolicyStoreMockRecorder) PolicyKey() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PolicyKey", reflect.TypeOf((*MockPolicyStore)(nil).PolicyKey))
}

// SetPolicyKey mocks base method.
func (m *MockPolicyStore) SetPolicyKey(key string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPolicyKey", key)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetPolicyKey indicates an expected call of SetPolicyKey.
func (mr *MockPolicyStoreMockRecorder) SetPolicyKey(key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPolicyKey", reflect.TypeOf((*MockPolicyStore)(nil).SetPolicyKey), key)
}

// MockSyncListener is a mock of SyncListener interface.
type MockSyncListener struct {
	ctrl     *gomock.Controller
	recorder *MockSyncListenerMockRecorder
	isgomock struct{}
}

// MockSyncListenerMockRecorder is the mock recorder for MockSyncListener.
type MockSyncListenerMockRecorder struct {
	mock *MockSyncListener
}

// NewMockSyncListener creates a new mock instance.
func NewMockSyncListener(ctrl *gomock.Controller) *MockSyncListener {
	mock := &MockSyncListener{ctrl: ctrl}
	mock.recorder = &MockSyncListenerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSyncListener) EXPECT() *MockSyncListenerMockRecorder {
	return m.recorder
}

// SyncFinished mocks base method.
func (m *MockSyncListener) SyncFinished(folderID string, count int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SyncFinished", folderID, count)
}

// SyncFinished indicates an expected call of SyncFinished.
func (mr *MockSyncListenerMockRecorder) SyncFinished(folderID, count any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SyncFinished", reflect.TypeOf((*MockSyncListener)(nil).SyncFinished), folderID, count)
}

// SyncFlagChanged mocks base method.
func (m *MockSyncListener) SyncFlagChanged(folderID string, serverID string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SyncFlagChanged", folderID, serverID)
}

// SyncFlagChanged indicates an expected call of SyncFlagChanged.
func (mr *MockSyncListenerMockRecorder) SyncFlagChanged(folderID, serverID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SyncFlagChanged", reflect.TypeOf((*MockSyncListener)(nil).SyncFlagChanged), folderID, serverID)
}

// SyncNewMessage mocks base method.
func (m *MockSyncListener) SyncNewMessage(folderID string, serverID string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SyncNewMessage", folderID, serverID)
}

// SyncNewMessage indicates an expected call of SyncNewMessage.
func (mr *MockSyncListenerMockRecorder) SyncNewMessage(folderID, serverID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SyncNewMessage", reflect.TypeOf((*MockSyncListener)(nil).SyncNewMessage), folderID, serverID)
}

// SyncRemovedMessage mocks base method.
func (m *MockSyncListener) SyncRemovedMessage(folderID string, serverID string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SyncRemovedMessage", folderID, serverID)
}

// SyncRemovedMessage indicates an expected call of SyncRemovedMessage.
func (mr *MockSyncListenerMockRecorder) SyncRemovedMessage(folderID, serverID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SyncRemovedMessage", reflect.TypeOf((*MockSyncListener)(nil).SyncRemovedMessage), folderID, serverID)
}

// MockPushReceiver is a mock of PushReceiver interface.
type MockPushReceiver struct {
	ctrl     *gomock.Controller
	recorder *MockPushReceiverMockRecorder
	isgomock struct{}
}

// MockPushReceiverMockRecorder is the mock recorder for MockPushReceiver.
type MockPushReceiverMockRecorder struct {
	mock *MockPushReceiver
}

// NewMockPushReceiver creates a new mock instance.
func NewMockPushReceiver(ctrl *gomock.Controller) *MockPushReceiver {
	mock := &MockPushReceiver{ctrl: ctrl}
	mock.recorder = &MockPushReceiverMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPushReceiver) EXPECT() *MockPushReceiverMockRecorder {
	return m.recorder
}

// AuthenticationFailed mocks base method.
func (m *MockPushReceiver) AuthenticationFailed() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AuthenticationFailed")
}

// AuthenticationFailed indicates an expected call of AuthenticationFailed.
func (mr *MockPushReceiverMockRecorder) AuthenticationFailed() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AuthenticationFailed", reflect.TypeOf((*MockPushReceiver)(nil).AuthenticationFailed))
}

// PushError mocks base method.
func (m *MockPushReceiver) PushError(message string, err error) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PushError", message, err)
}

// PushError indicates an expected call of PushError.
func (mr *MockPushReceiverMockRecorder) PushError(message, err any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PushError", reflect.TypeOf((*MockPushReceiver)(nil).PushError), message, err)
}

// SetPushActive mocks base method.
func (m *MockPushReceiver) SetPushActive(folderID string, active bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetPushActive", folderID, active)
}

// SetPushActive indicates an expected call of SetPushActive.
func (mr *MockPushReceiverMockRecorder) SetPushActive(folderID, active any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPushActive", reflect.TypeOf((*MockPushReceiver)(nil).SetPushActive), folderID, active)
}

// SyncFolder mocks base method.
func (m *MockPushReceiver) SyncFolder(folderID string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SyncFolder", folderID)
}

// SyncFolder indicates an expected call of SyncFolder.
func (mr *MockPushReceiverMockRecorder) SyncFolder(folderID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SyncFolder", reflect.TypeOf((*MockPushReceiver)(nil).SyncFolder), folderID)
}
