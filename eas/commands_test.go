package eas

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func commandRequest(key string, options *SyncOptions, cmds *SyncCommands) *Sync {
	return syncRequest(SyncCollection{
		Class:          classEmail,
		SyncKey:        key,
		CollectionID:   "col0",
		DeletesAsMoves: intPtr(0),
		GetChanges:     intPtr(0),
		Options:        options,
		Commands:       cmds,
	})
}

func fetchOptions() *SyncOptions {
	return &SyncOptions{MIMESupport: intPtr(mimeSupportAll), BodyPreference: &BodyPreference{Type: bodyTypeMIME}}
}

// --- SetFlag ---

func TestSetFlag_SendsChangeCommand(t *testing.T) {
	tests := []struct {
		name  string
		flag  Flag
		value bool
		data  ApplicationData
	}{
		{"flagged true", FlagFlagged, true, ApplicationData{Flag: &EmailFlag{FlagStatus: intPtr(2)}}},
		{"flagged false", FlagFlagged, false, ApplicationData{Flag: &EmailFlag{FlagStatus: intPtr(0)}}},
		{"seen true", FlagSeen, true, ApplicationData{Read: intPtr(1)}},
		{"seen false", FlagSeen, false, ApplicationData{Read: intPtr(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			f.expectFolder("col0")

			data := tt.data
			gomock.InOrder(
				f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil),
				f.transport.EXPECT().Sync(gomock.Any(), commandRequest("key0", nil, &SyncCommands{
					Change: []SyncItem{{ServerID: "id0", ApplicationData: &data}},
				})).Return(syncResponse(SyncCollection{SyncKey: "A2", Status: 1}), nil),
				f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "A2").Return(nil),
			)

			require.NoError(t, f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, tt.flag, tt.value))
		})
	}
}

func TestSetFlag_MultipleMessages(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	gomock.InOrder(
		f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil),
		f.transport.EXPECT().Sync(gomock.Any(), commandRequest("key0", nil, &SyncCommands{
			Change: []SyncItem{
				{ServerID: "a", ApplicationData: &ApplicationData{Read: intPtr(1)}},
				{ServerID: "b", ApplicationData: &ApplicationData{Read: intPtr(1)}},
			},
		})).Return(syncResponse(SyncCollection{SyncKey: "key1", Status: 1}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil),
	)

	require.NoError(t, f.engine.SetFlag(context.Background(), "col0", []string{"a", "b"}, FlagSeen, true))
}

func TestSetFlag_OtherFlagReturnsEarly(t *testing.T) {
	f := newEngineFixture(t)
	// No expectations: any store or transport call fails the test.
	require.NoError(t, f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, FlagAnswered, true))
	require.NoError(t, f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, FlagDeleted, true))
}

func TestSetFlag_StatusNotOK(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil)
	f.transport.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(syncResponse(SyncCollection{SyncKey: "key1", Status: 2}), nil)

	err := f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, FlagSeen, true)
	assert.Equal(t, 2, StatusOf(err))
}

func TestSetFlag_TransportError(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil)
	f.transport.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	err := f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, FlagSeen, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSetFlag_BootstrapsUnsyncedFolder(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	gomock.InOrder(
		f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("", nil),
		f.transport.EXPECT().Sync(gomock.Any(), syncRequest(SyncCollection{Class: classEmail, SyncKey: "0", CollectionID: "col0"})).
			Return(syncResponse(SyncCollection{SyncKey: "b1", Status: 1}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "b1").Return(nil),
		f.transport.EXPECT().Sync(gomock.Any(), commandRequest("b1", nil, &SyncCommands{
			Change: []SyncItem{{ServerID: "id0", ApplicationData: &ApplicationData{Read: intPtr(1)}}},
		})).Return(syncResponse(SyncCollection{SyncKey: "b2", Status: 1}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "b2").Return(nil),
	)

	require.NoError(t, f.engine.SetFlag(context.Background(), "col0", []string{"id0"}, FlagSeen, true))
}

// --- DeleteMessages ---

func TestDeleteMessages(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	gomock.InOrder(
		f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil),
		f.transport.EXPECT().Sync(gomock.Any(), commandRequest("key0", nil, &SyncCommands{
			Delete: []SyncItem{{ServerID: "x"}, {ServerID: "y"}},
		})).Return(syncResponse(SyncCollection{SyncKey: "key1", Status: 1}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil),
	)

	require.NoError(t, f.engine.DeleteMessages(context.Background(), "col0", []string{"x", "y"}))
}

func TestDeleteMessages_EmptyIsNoop(t *testing.T) {
	f := newEngineFixture(t)
	require.NoError(t, f.engine.DeleteMessages(context.Background(), "col0", nil))
}

// --- FetchMessage ---

func TestFetchMessage(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	item := addItem("id0")
	item.ApplicationData.Read = intPtr(1)
	gomock.InOrder(
		f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil),
		f.transport.EXPECT().Sync(gomock.Any(), commandRequest("key0", fetchOptions(), &SyncCommands{
			Fetch: []SyncItem{{ServerID: "id0"}},
		})).Return(syncResponse(SyncCollection{
			SyncKey: "key1", Status: 1,
			Responses: &SyncResponses{Fetch: []SyncItem{item}},
		}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil),
	)

	msg, err := f.engine.FetchMessage(context.Background(), "col0", "id0")
	require.NoError(t, err)
	assert.Equal(t, "id0", msg.ServerID)
	assert.Equal(t, "col0", msg.FolderID)
	assert.Equal(t, "Subject id0", msg.Subject)
	assert.True(t, msg.Seen)
	assert.Equal(t, []byte("MIME id0"), msg.Body)
	assert.False(t, msg.Partial)
}

func TestFetchMessage_EmptyResponses(t *testing.T) {
	for name, responses := range map[string]*SyncResponses{
		"no responses":    nil,
		"empty responses": {},
		"other item":      {Fetch: []SyncItem{{ServerID: "other"}}},
	} {
		t.Run(name, func(t *testing.T) {
			f := newEngineFixture(t)
			f.expectFolder("col0")
			f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil)
			f.transport.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(syncResponse(SyncCollection{
				SyncKey: "key1", Status: 1, Responses: responses,
			}), nil)
			f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil)

			_, err := f.engine.FetchMessage(context.Background(), "col0", "id0")
			assert.ErrorIs(t, err, ErrMissingItem)
		})
	}
}

func TestFetchMessage_ItemStatus(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")
	f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil)
	f.transport.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(syncResponse(SyncCollection{
		SyncKey: "key1", Status: 1,
		Responses: &SyncResponses{Fetch: []SyncItem{{ServerID: "id0", Status: 8}}},
	}), nil)
	f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil)

	_, err := f.engine.FetchMessage(context.Background(), "col0", "id0")
	assert.Equal(t, 8, StatusOf(err))
}

// --- UploadMessage ---

func TestUploadMessage(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")

	gomock.InOrder(
		f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil),
		f.transport.EXPECT().Sync(gomock.Any(), commandRequest("key0", nil, &SyncCommands{
			Add: []SyncItem{{ClientID: "client-1", ApplicationData: &ApplicationData{
				Body: &Body{Type: bodyTypeMIME, Data: "raw mime"},
			}}},
		})).Return(syncResponse(SyncCollection{
			SyncKey: "key1", Status: 1,
			Responses: &SyncResponses{Add: []SyncItem{{ClientID: "client-1", ServerID: "srv-9", Status: 1}}},
		}), nil),
		f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil),
	)

	id, err := f.engine.UploadMessage(context.Background(), "col0", []byte("raw mime"))
	require.NoError(t, err)
	assert.Equal(t, "srv-9", id)
}

func TestUploadMessage_Rejected(t *testing.T) {
	f := newEngineFixture(t)
	f.expectFolder("col0")
	f.folder.EXPECT().FolderExtraString(ExtraSyncKey).Return("key0", nil)
	f.transport.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(syncResponse(SyncCollection{
		SyncKey: "key1", Status: 1,
		Responses: &SyncResponses{Add: []SyncItem{{ClientID: "client-1", Status: 6}}},
	}), nil)
	f.folder.EXPECT().SetFolderExtraString(ExtraSyncKey, "key1").Return(nil)

	_, err := f.engine.UploadMessage(context.Background(), "col0", []byte("x"))
	assert.Equal(t, 6, StatusOf(err))
}

func TestNewULID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newULID()
		assert.Len(t, id, 26)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

// --- MoveMessages ---

func TestMoveMessages(t *testing.T) {
	f := newEngineFixture(t)

	f.transport.EXPECT().MoveItems(gomock.Any(), &MoveItems{Move: []Move{
		{SrcMsgID: "a", SrcFldID: "inbox", DstFldID: "archive"},
		{SrcMsgID: "b", SrcFldID: "inbox", DstFldID: "archive"},
	}}).Return(&MoveItemsResponse{Response: []MoveResponse{
		{SrcMsgID: "a", Status: 3, DstMsgID: "a2"},
		{SrcMsgID: "b", Status: 3, DstMsgID: "b2"},
	}}, nil)

	moved, err := f.engine.MoveMessages(context.Background(), "inbox", "archive", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "a2", "b": "b2"}, moved)
}

func TestMoveMessages_PartialFailure(t *testing.T) {
	f := newEngineFixture(t)

	f.transport.EXPECT().MoveItems(gomock.Any(), gomock.Any()).Return(&MoveItemsResponse{Response: []MoveResponse{
		{SrcMsgID: "a", Status: 3, DstMsgID: "a2"},
		{SrcMsgID: "b", Status: 1},
	}}, nil)

	moved, err := f.engine.MoveMessages(context.Background(), "inbox", "archive", []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, 1, StatusOf(err))
	assert.Equal(t, map[string]string{"a": "a2"}, moved)
}

// --- SendMessage ---

func TestSendMessage(t *testing.T) {
	f := newEngineFixture(t)
	f.transport.EXPECT().SendMail(gomock.Any(), []byte("Subject: hi\n\nbody")).Return(nil)

	require.NoError(t, f.engine.SendMessage(context.Background(), []byte("Subject: hi\n\nbody")))
}

func TestSendMessage_AuthFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.transport.EXPECT().SendMail(gomock.Any(), gomock.Any()).Return(ErrAuthentication)

	err := f.engine.SendMessage(context.Background(), []byte("x"))
	assert.True(t, IsAuthentication(err))
}
