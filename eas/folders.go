package eas

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"golang.org/x/text/unicode/norm"
)

// SyncEngine runs folder list refreshes, folder syncs and single
// commands against one account.
type SyncEngine struct {
	transport   Transport
	provisioner *Provisioner
	store       FolderStore
	logger      *slog.Logger

	newClientID func() string
}

// NewSyncEngine creates an engine. The provisioner must share the
// transport's session.
func NewSyncEngine(transport Transport, provisioner *Provisioner, store FolderStore, logger *slog.Logger) *SyncEngine {
	return &SyncEngine{
		transport:   transport,
		provisioner: provisioner,
		store:       store,
		logger:      logger,
		newClientID: newULID,
	}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// newULID returns a client id for Sync adds. Monotonic entropy is not
// safe for concurrent use, hence the lock.
func newULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// RefreshFolders pulls the folder hierarchy changes since the last
// refresh and applies them to the store.
func (e *SyncEngine) RefreshFolders(ctx context.Context) error {
	key, err := e.store.ExtraString(ExtraFolderSyncKey)
	if err != nil {
		return fmt.Errorf("loading folder sync key: %w", err)
	}
	if key == "" {
		key = SyncKeyInitial
	}

	resp, err := RunProvisioned(ctx, e.provisioner, func(ctx context.Context) (*FolderSync, error) {
		return e.transport.FolderSync(ctx, &FolderSync{SyncKey: key})
	})
	if err != nil {
		return fmt.Errorf("folder sync: %w", err)
	}

	if resp.Status != StatusSuccess {
		if resp.Status == folderSyncStatusInvalidKey {
			e.logger.Warn("folder sync key rejected, resetting")
			if err := e.store.SetExtraString(ExtraFolderSyncKey, SyncKeyInitial); err != nil {
				return fmt.Errorf("resetting folder sync key: %w", err)
			}
		}
		return &ProtocolStatusError{Command: "FolderSync", Status: resp.Status}
	}

	if resp.SyncKey != "" {
		if err := e.store.SetExtraString(ExtraFolderSyncKey, resp.SyncKey); err != nil {
			return fmt.Errorf("saving folder sync key: %w", err)
		}
	}

	changes := resp.Changes
	if changes == nil {
		return nil
	}

	if len(changes.Add) > 0 {
		folders := make([]FolderInfo, 0, len(changes.Add))
		for _, a := range changes.Add {
			folders = append(folders, FolderInfo{
				ServerID: a.ServerID,
				ParentID: a.ParentID,
				Name:     norm.NFC.String(a.DisplayName),
				Type:     folderTypeFromCode(a.Type),
			})
		}
		if err := e.store.CreateFolders(folders); err != nil {
			return fmt.Errorf("creating folders: %w", err)
		}
	}

	if len(changes.Delete) > 0 {
		ids := make([]string, 0, len(changes.Delete))
		for _, d := range changes.Delete {
			ids = append(ids, d.ServerID)
		}
		if err := e.store.DeleteFolders(ids); err != nil {
			return fmt.Errorf("deleting folders: %w", err)
		}
	}

	for _, u := range changes.Update {
		if err := e.store.ChangeFolder(u.ServerID, norm.NFC.String(u.DisplayName), folderTypeFromCode(u.Type)); err != nil {
			return fmt.Errorf("updating folder %s: %w", u.ServerID, err)
		}
	}

	e.logger.Info("folder list refreshed",
		slog.Int("added", len(changes.Add)),
		slog.Int("deleted", len(changes.Delete)),
		slog.Int("updated", len(changes.Update)),
	)
	return nil
}
