package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alexjbarnes/eas-sync/eas"
	bolt "go.etcd.io/bbolt"
)

const (
	// stateDirPerm is the permission mode for the state directory (~/.eas-sync/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt database lock.
	stateOpenTimeout = 5 * time.Second
)

var (
	appBucket     = []byte("app")
	foldersBucket = []byte("folders")
	policyKey     = []byte("policy_key")
)

// ErrUnknownFolder is returned when a folder id is not in the folder list.
var ErrUnknownFolder = errors.New("state: unknown folder")

func extraKey(key string) []byte {
	return []byte("extra:" + key)
}

func folderExtraBucket(folderID string) []byte {
	return []byte("folder:" + folderID + ":extra")
}

func folderMessagesBucket(folderID string) []byte {
	return []byte("folder:" + folderID + ":messages")
}

// FolderRecord is the stored form of one server folder.
type FolderRecord struct {
	ServerID string         `json:"server_id"`
	ParentID string         `json:"parent_id"`
	Name     string         `json:"name"`
	Type     eas.FolderType `json:"type"`
}

// MessageRecord is the stored form of one message. Answered, Forwarded
// and Deleted only change locally; the server has no field for them.
type MessageRecord struct {
	ServerID     string `json:"server_id"`
	Subject      string `json:"subject"`
	From         string `json:"from"`
	To           string `json:"to"`
	Cc           string `json:"cc,omitempty"`
	ReplyTo      string `json:"reply_to,omitempty"`
	DateReceived string `json:"date_received"`
	Seen         bool   `json:"seen"`
	Flagged      bool   `json:"flagged"`
	Answered     bool   `json:"answered,omitempty"`
	Forwarded    bool   `json:"forwarded,omitempty"`
	Deleted      bool   `json:"deleted,omitempty"`
	Partial      bool   `json:"partial"`
	Body         []byte `json:"body"`
}

func recordFromMessage(msg eas.Message, partial bool) MessageRecord {
	return MessageRecord{
		ServerID:     msg.ServerID,
		Subject:      msg.Subject,
		From:         msg.From,
		To:           msg.To,
		Cc:           msg.Cc,
		ReplyTo:      msg.ReplyTo,
		DateReceived: msg.DateReceived,
		Seen:         msg.Seen,
		Flagged:      msg.Flagged,
		Partial:      partial,
		Body:         msg.Body,
	}
}

// State wraps a bbolt database for all persistent client state: the
// policy key, the folder list, sync cursors and messages.
type State struct {
	db *bolt.DB
}

// DefaultPath returns ~/.eas-sync/state.db.
func DefaultPath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(dir, ".eas-sync", "state.db"), nil
}

// LoadAt opens a state database at the given path, creating it if it
// does not exist.
func LoadAt(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(appBucket); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists(foldersBucket)

		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &State{db: db}, nil
}

// Close closes the database.
func (s *State) Close() error {
	return s.db.Close()
}

// PolicyKey returns the persisted policy key, or empty string.
func (s *State) PolicyKey() (string, error) {
	var key string

	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(appBucket).Get(policyKey); v != nil {
			key = string(v)
		}

		return nil
	})

	return key, err
}

// SetPolicyKey persists the policy key. An empty key removes it.
func (s *State) SetPolicyKey(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)
		if key == "" {
			return b.Delete(policyKey)
		}

		return b.Put(policyKey, []byte(key))
	})
}

// ExtraString returns an account-wide value, or empty string.
func (s *State) ExtraString(key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(appBucket).Get(extraKey(key)); v != nil {
			value = string(v)
		}

		return nil
	})

	return value, err
}

// SetExtraString persists an account-wide value.
func (s *State) SetExtraString(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put(extraKey(key), []byte(value))
	})
}

// CreateFolders adds folders to the folder list. Existing entries with
// the same server id are replaced; their messages are kept.
func (s *State) CreateFolders(folders []eas.FolderInfo) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(foldersBucket)

		for _, f := range folders {
			data, err := json.Marshal(FolderRecord{
				ServerID: f.ServerID,
				ParentID: f.ParentID,
				Name:     f.Name,
				Type:     f.Type,
			})
			if err != nil {
				return err
			}

			if err := b.Put([]byte(f.ServerID), data); err != nil {
				return err
			}

			if _, err := tx.CreateBucketIfNotExists(folderExtraBucket(f.ServerID)); err != nil {
				return err
			}

			if _, err := tx.CreateBucketIfNotExists(folderMessagesBucket(f.ServerID)); err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteFolders removes folders together with their cursors and
// messages. Unknown ids are ignored.
func (s *State) DeleteFolders(serverIDs []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(foldersBucket)

		for _, id := range serverIDs {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}

			for _, name := range [][]byte{folderExtraBucket(id), folderMessagesBucket(id)} {
				if tx.Bucket(name) == nil {
					continue
				}

				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// ChangeFolder renames or reclassifies a folder.
func (s *State) ChangeFolder(serverID, name string, folderType eas.FolderType) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(foldersBucket)

		v := b.Get([]byte(serverID))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrUnknownFolder, serverID)
		}

		var rec FolderRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}

		rec.Name = name
		rec.Type = folderType

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return b.Put([]byte(serverID), data)
	})
}

// GetFolder returns the folder record for an id, or nil if not found.
func (s *State) GetFolder(serverID string) (*FolderRecord, error) {
	var rec *FolderRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(foldersBucket).Get([]byte(serverID))
		if v == nil {
			return nil
		}

		rec = &FolderRecord{}

		return json.Unmarshal(v, rec)
	})

	return rec, err
}

// AllFolders returns the folder list ordered by name.
func (s *State) AllFolders() ([]FolderRecord, error) {
	var folders []FolderRecord

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(foldersBucket).ForEach(func(k, v []byte) error {
			var rec FolderRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			folders = append(folders, rec)

			return nil
		})
	})

	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ServerID < folders[j].ServerID
	})

	return folders, err
}

// FolderByType returns the first folder of the given type, or nil.
func (s *State) FolderByType(t eas.FolderType) (*FolderRecord, error) {
	folders, err := s.AllFolders()
	if err != nil {
		return nil, err
	}

	for i := range folders {
		if folders[i].Type == t {
			return &folders[i], nil
		}
	}

	return nil, nil
}

// Folder returns the message store of a known folder.
func (s *State) Folder(serverID string) (eas.MessageFolder, error) {
	return s.MessageFolder(serverID)
}

// MessageFolder is Folder with the concrete return type.
func (s *State) MessageFolder(serverID string) (*Folder, error) {
	rec, err := s.GetFolder(serverID)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, serverID)
	}

	return &Folder{db: s.db, id: serverID}, nil
}

// Folder is the message store of one folder.
type Folder struct {
	db *bolt.DB
	id string
}

// ID returns the folder's server id.
func (f *Folder) ID() string { return f.id }

func (f *Folder) messages(tx *bolt.Tx) (*bolt.Bucket, error) {
	b := tx.Bucket(folderMessagesBucket(f.id))
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, f.id)
	}

	return b, nil
}

// FolderExtraString returns a per-folder value, or empty string.
func (f *Folder) FolderExtraString(key string) (string, error) {
	var value string

	err := f.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(folderExtraBucket(f.id))
		if b == nil {
			return nil
		}

		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
		}

		return nil
	})

	return value, err
}

// SetFolderExtraString persists a per-folder value.
func (f *Folder) SetFolderExtraString(key, value string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(folderExtraBucket(f.id))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrUnknownFolder, f.id)
		}

		return b.Put([]byte(key), []byte(value))
	})
}

// SaveCompleteMessage stores a message whose body is complete.
func (f *Folder) SaveCompleteMessage(msg eas.Message) error {
	return f.put(recordFromMessage(msg, false))
}

// SavePartialMessage stores a message whose body was truncated. A
// complete copy already on disk is not downgraded.
func (f *Folder) SavePartialMessage(msg eas.Message) error {
	existing, err := f.Message(msg.ServerID)
	if err != nil {
		return err
	}

	if existing != nil && !existing.Partial {
		existing.Seen = msg.Seen
		existing.Flagged = msg.Flagged

		return f.put(*existing)
	}

	return f.put(recordFromMessage(msg, true))
}

func (f *Folder) put(rec MessageRecord) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return b.Put([]byte(rec.ServerID), data)
	})
}

// DestroyMessages removes messages. Unknown ids are ignored.
func (f *Folder) DestroyMessages(serverIDs []string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		for _, id := range serverIDs {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}

		return nil
	})
}

// SetMessageFlag changes one flag of a stored message. Messages that
// were never downloaded are skipped.
func (f *Folder) SetMessageFlag(serverID string, flag eas.Flag, value bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		v := b.Get([]byte(serverID))
		if v == nil {
			return nil
		}

		var rec MessageRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}

		switch flag {
		case eas.FlagSeen:
			rec.Seen = value
		case eas.FlagFlagged:
			rec.Flagged = value
		case eas.FlagAnswered:
			rec.Answered = value
		case eas.FlagForwarded:
			rec.Forwarded = value
		case eas.FlagDeleted:
			rec.Deleted = value
		default:
			return fmt.Errorf("unsupported flag %d", flag)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return b.Put([]byte(serverID), data)
	})
}

// Message returns a stored message, or nil if not found.
func (f *Folder) Message(serverID string) (*MessageRecord, error) {
	var rec *MessageRecord

	err := f.db.View(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		v := b.Get([]byte(serverID))
		if v == nil {
			return nil
		}

		rec = &MessageRecord{}

		return json.Unmarshal(v, rec)
	})

	return rec, err
}

// AllMessages returns every stored message keyed by server id.
func (f *Folder) AllMessages() (map[string]MessageRecord, error) {
	result := make(map[string]MessageRecord)

	err := f.db.View(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var rec MessageRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			result[string(k)] = rec

			return nil
		})
	})

	return result, err
}

// Count returns the number of stored messages.
func (f *Folder) Count() (int, error) {
	count := 0

	err := f.db.View(func(tx *bolt.Tx) error {
		b, err := f.messages(tx)
		if err != nil {
			return err
		}

		count = b.Stats().KeyN

		return nil
	})

	return count, err
}
