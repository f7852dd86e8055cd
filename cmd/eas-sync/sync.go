package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexjbarnes/eas-sync/internal/state"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [folder-id...]",
		Short: "Download new mail and changes",
		Long:  "Refreshes the folder list, then syncs the given folders, or every folder when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if err := a.engine.RefreshFolders(ctx); err != nil {
				return fmt.Errorf("refreshing folders: %w", err)
			}

			ids := args
			if len(ids) == 0 {
				ids, err = allFolderIDs(a.state)
				if err != nil {
					return err
				}
			}

			listener := newProgressListener(cmd.OutOrStdout(), a.logger)
			for _, id := range ids {
				if err := a.engine.SyncFolder(ctx, id, a.cfg.SyncConfig(), listener); err != nil {
					return fmt.Errorf("syncing folder %s: %w", id, err)
				}
			}

			return nil
		},
	}
}

func allFolderIDs(st *state.State) ([]string, error) {
	folders, err := st.AllFolders()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, f.ServerID)
	}

	return ids, nil
}

type folderCounts struct {
	removed, changed int
}

// progressListener counts sync events per folder and prints one summary
// line when a folder finishes. A nil writer only logs.
type progressListener struct {
	w      io.Writer
	logger *slog.Logger

	mu     sync.Mutex
	counts map[string]*folderCounts
}

func newProgressListener(w io.Writer, logger *slog.Logger) *progressListener {
	return &progressListener{
		w:      w,
		logger: logger,
		counts: make(map[string]*folderCounts),
	}
}

func (l *progressListener) get(folderID string) *folderCounts {
	c, ok := l.counts[folderID]
	if !ok {
		c = &folderCounts{}
		l.counts[folderID] = c
	}

	return c
}

func (l *progressListener) SyncNewMessage(folderID, serverID string) {
	l.logger.Debug("new message", slog.String("folder", folderID), slog.String("id", serverID))
}

func (l *progressListener) SyncRemovedMessage(folderID, serverID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.get(folderID).removed++
	l.logger.Debug("message removed", slog.String("folder", folderID), slog.String("id", serverID))
}

func (l *progressListener) SyncFlagChanged(folderID, serverID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.get(folderID).changed++
	l.logger.Debug("flags changed", slog.String("folder", folderID), slog.String("id", serverID))
}

func (l *progressListener) SyncFinished(folderID string, added int) {
	l.mu.Lock()
	c := *l.get(folderID)
	delete(l.counts, folderID)
	l.mu.Unlock()

	l.logger.Info("folder synced",
		slog.String("folder", folderID),
		slog.Int("added", added),
		slog.Int("removed", c.removed),
		slog.Int("changed", c.changed),
	)

	if l.w != nil {
		fmt.Fprintf(l.w, "%s: %d new, %d removed, %d changed\n", folderID, added, c.removed, c.changed)
	}
}
