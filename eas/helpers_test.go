package eas

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"
)

var (
	_ Transport     = (*MockTransport)(nil)
	_ FolderStore   = (*MockFolderStore)(nil)
	_ MessageFolder = (*MockMessageFolder)(nil)
	_ PolicyStore   = (*MockPolicyStore)(nil)
	_ SyncListener  = (*MockSyncListener)(nil)
	_ PushReceiver  = (*MockPushReceiver)(nil)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// provisionedSession returns a session that already holds a policy key
// so RunProvisioned goes straight to the operation.
func provisionedSession() *Session {
	s := NewSession()
	s.SetPolicyKey("policy-1")
	return s
}

type engineFixture struct {
	engine    *SyncEngine
	transport *MockTransport
	store     *MockFolderStore
	folder    *MockMessageFolder
	listener  *MockSyncListener
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	transport := NewMockTransport(ctrl)
	store := NewMockFolderStore(ctrl)
	policies := NewMockPolicyStore(ctrl)
	logger := testLogger()

	prov := NewProvisioner(transport, provisionedSession(), policies, logger)
	engine := NewSyncEngine(transport, prov, store, logger)
	engine.newClientID = func() string { return "client-1" }

	return &engineFixture{
		engine:    engine,
		transport: transport,
		store:     store,
		folder:    NewMockMessageFolder(ctrl),
		listener:  NewMockSyncListener(ctrl),
	}
}

// expectFolder makes the store hand out the fixture folder for id.
func (f *engineFixture) expectFolder(id string) {
	f.store.EXPECT().Folder(id).Return(f.folder, nil).AnyTimes()
}

func syncResponse(col SyncCollection) *Sync {
	return &Sync{Status: StatusSuccess, Collections: &SyncCollections{Collection: []SyncCollection{col}}}
}

func syncRequest(col SyncCollection) *Sync {
	return &Sync{Collections: &SyncCollections{Collection: []SyncCollection{col}}}
}
