package eas

//go:generate mockgen -source=storage.go -destination=mock_storage_test.go -package=eas

// FolderType is the local classification of a server folder.
type FolderType int

const (
	FolderRegular FolderType = iota
	FolderInbox
	FolderDrafts
	FolderTrash
	FolderSent
	FolderOutbox
)

var folderTypeNames = [...]string{"regular", "inbox", "drafts", "trash", "sent", "outbox"}

func (t FolderType) String() string {
	if t >= 0 && int(t) < len(folderTypeNames) {
		return folderTypeNames[t]
	}
	return "regular"
}

// folderTypeFromCode maps a FolderHierarchy type code.
func folderTypeFromCode(code int) FolderType {
	switch code {
	case 2:
		return FolderInbox
	case 3:
		return FolderDrafts
	case 4:
		return FolderTrash
	case 5:
		return FolderSent
	case 6:
		return FolderOutbox
	default:
		return FolderRegular
	}
}

// FolderInfo describes a folder created by a folder list refresh.
type FolderInfo struct {
	ServerID string
	ParentID string
	Name     string
	Type     FolderType
}

// Flag is a message flag the engine can synchronise.
type Flag int

const (
	FlagSeen Flag = iota
	FlagFlagged
	FlagAnswered
	FlagForwarded
	FlagDeleted
)

var flagNames = [...]string{"seen", "flagged", "answered", "forwarded", "deleted"}

func (f Flag) String() string {
	if f >= 0 && int(f) < len(flagNames) {
		return flagNames[f]
	}
	return "unknown"
}

// Message is a synchronised email. Body is the MIME message as returned
// by the server and is not parsed.
type Message struct {
	ServerID     string
	FolderID     string
	Subject      string
	From         string
	To           string
	Cc           string
	ReplyTo      string
	DateReceived string
	Seen         bool
	Flagged      bool
	Body         []byte
	// Partial is set when the server truncated Body.
	Partial bool
}

// FolderStore persists the folder list and account-wide sync values.
type FolderStore interface {
	CreateFolders(folders []FolderInfo) error
	DeleteFolders(serverIDs []string) error
	ChangeFolder(serverID, name string, folderType FolderType) error
	ExtraString(key string) (string, error)
	SetExtraString(key, value string) error
	Folder(serverID string) (MessageFolder, error)
}

// MessageFolder persists the messages and per-folder values of one folder.
type MessageFolder interface {
	FolderExtraString(key string) (string, error)
	SetFolderExtraString(key, value string) error
	SaveCompleteMessage(msg Message) error
	SavePartialMessage(msg Message) error
	DestroyMessages(serverIDs []string) error
	SetMessageFlag(serverID string, flag Flag, value bool) error
}

// PolicyStore persists the final policy key between runs.
type PolicyStore interface {
	PolicyKey() (string, error)
	SetPolicyKey(key string) error
}

// SyncListener receives progress of a folder sync.
type SyncListener interface {
	SyncNewMessage(folderID, serverID string)
	SyncRemovedMessage(folderID, serverID string)
	SyncFlagChanged(folderID, serverID string)
	SyncFinished(folderID string, count int)
}

// PushReceiver is notified by the push loop. Callbacks run on the loop's
// goroutine and must not call Pusher.Stop.
type PushReceiver interface {
	SetPushActive(folderID string, active bool)
	SyncFolder(folderID string)
	AuthenticationFailed()
	PushError(message string, err error)
}

// Keys used with FolderStore.ExtraString and MessageFolder.FolderExtraString.
const (
	ExtraFolderSyncKey = "folderSyncKey"
	ExtraSyncKey       = "syncKey"
)
