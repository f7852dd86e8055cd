package eas

import (
	"context"
	"fmt"
	"log/slog"
)

// maxWindowSize caps the number of changes requested per Sync round.
const maxWindowSize = 30

// SyncConfig controls one folder sync.
type SyncConfig struct {
	// MaxAgeDays limits downloads to recent mail; negative means no limit.
	MaxAgeDays int
	// SyncRemoteDeletions applies server-side deletes locally.
	SyncRemoteDeletions bool
	// MaxDownloadSize is the body truncation size in bytes; 0 means none.
	MaxDownloadSize int
	// MessageLimit caps the messages added per call; 0 means no cap.
	MessageLimit int
}

// filterTypeForAge maps a maximum message age in days to the Sync
// FilterType. Ages without an exact bucket get no filter.
func filterTypeForAge(days int) int {
	switch days {
	case 0:
		return 1
	case 1, 2:
		return 2
	case 7:
		return 3
	case 14:
		return 4
	case 21, 28:
		return 5
	default:
		return 0
	}
}

// SyncFolder downloads the changes of one folder until the server has
// nothing more or the message limit is reached.
func (e *SyncEngine) SyncFolder(ctx context.Context, folderID string, cfg SyncConfig, listener SyncListener) error {
	folder, err := e.store.Folder(folderID)
	if err != nil {
		return fmt.Errorf("opening folder %s: %w", folderID, err)
	}

	key, err := e.syncKey(ctx, folder, folderID)
	if err != nil {
		return err
	}

	options := &SyncOptions{
		FilterType:     intPtr(filterTypeForAge(cfg.MaxAgeDays)),
		BodyPreference: &BodyPreference{Type: bodyTypeMIME, TruncationSize: cfg.MaxDownloadSize},
		MIMESupport:    intPtr(mimeSupportAll),
	}

	count := 0
	for {
		window := maxWindowSize
		if cfg.MessageLimit > 0 {
			remaining := cfg.MessageLimit - count
			if remaining <= 0 {
				break
			}
			window = min(window, remaining)
		}

		req := &Sync{Collections: &SyncCollections{Collection: []SyncCollection{{
			Class:          classEmail,
			SyncKey:        key,
			CollectionID:   folderID,
			DeletesAsMoves: intPtr(1),
			GetChanges:     intPtr(1),
			WindowSize:     window,
			Options:        options,
		}}}}

		col, err := e.sync(ctx, folder, folderID, req)
		if err != nil {
			return err
		}
		key = col.SyncKey

		added, err := e.applyCommands(folder, folderID, col.Commands, cfg, listener)
		if err != nil {
			return err
		}
		count += added

		if !col.MoreAvailable {
			break
		}
	}

	// Servers may send more adds than the window asked for; the
	// reported count never exceeds the quota.
	if cfg.MessageLimit > 0 {
		count = min(count, cfg.MessageLimit)
	}

	e.logger.Debug("folder synced",
		slog.String("folder", folderID),
		slog.Int("added", count),
	)
	listener.SyncFinished(folderID, count)
	return nil
}

// syncKey returns the folder's cursor, bootstrapping it first when the
// folder has never been synchronised.
func (e *SyncEngine) syncKey(ctx context.Context, folder MessageFolder, folderID string) (string, error) {
	key, err := folder.FolderExtraString(ExtraSyncKey)
	if err != nil {
		return "", fmt.Errorf("loading sync key for %s: %w", folderID, err)
	}
	if key != "" && key != SyncKeyInitial {
		return key, nil
	}

	req := &Sync{Collections: &SyncCollections{Collection: []SyncCollection{{
		Class:        classEmail,
		SyncKey:      SyncKeyInitial,
		CollectionID: folderID,
	}}}}
	col, err := e.sync(ctx, folder, folderID, req)
	if err != nil {
		return "", err
	}
	return col.SyncKey, nil
}

// sync sends req, verifies the collection status and persists the new
// cursor before anything in the response is applied.
func (e *SyncEngine) sync(ctx context.Context, folder MessageFolder, folderID string, req *Sync) (*SyncCollection, error) {
	resp, err := RunProvisioned(ctx, e.provisioner, func(ctx context.Context) (*Sync, error) {
		return e.transport.Sync(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("syncing %s: %w", folderID, err)
	}
	if resp.Status != 0 && resp.Status != StatusSuccess {
		return nil, &ProtocolStatusError{Command: "Sync", Status: resp.Status}
	}

	col, ok := resp.collection()
	if !ok {
		return nil, fmt.Errorf("syncing %s: %w: collection", folderID, ErrMissingItem)
	}
	if col.Status != StatusSuccess {
		if col.Status == syncStatusInvalidKey {
			e.logger.Warn("sync key rejected, resetting", slog.String("folder", folderID))
			if err := folder.SetFolderExtraString(ExtraSyncKey, SyncKeyInitial); err != nil {
				return nil, fmt.Errorf("resetting sync key for %s: %w", folderID, err)
			}
		}
		return nil, &ProtocolStatusError{Command: "Sync", Status: col.Status}
	}
	if col.SyncKey == "" {
		return nil, fmt.Errorf("syncing %s: %w: sync key", folderID, ErrMissingItem)
	}

	if err := folder.SetFolderExtraString(ExtraSyncKey, col.SyncKey); err != nil {
		return nil, fmt.Errorf("saving sync key for %s: %w", folderID, err)
	}
	return col, nil
}

// applyCommands stores the server changes of one Sync round and returns
// the number of added messages.
func (e *SyncEngine) applyCommands(folder MessageFolder, folderID string, cmds *SyncCommands, cfg SyncConfig, listener SyncListener) (int, error) {
	if cmds == nil {
		return 0, nil
	}

	for _, item := range cmds.Add {
		msg := messageFromItem(folderID, item)
		save := folder.SaveCompleteMessage
		if msg.Partial {
			save = folder.SavePartialMessage
		}
		if err := save(msg); err != nil {
			return 0, fmt.Errorf("saving message %s: %w", item.ServerID, err)
		}
		listener.SyncNewMessage(folderID, item.ServerID)
	}

	if cfg.SyncRemoteDeletions && len(cmds.Delete) > 0 {
		ids := make([]string, 0, len(cmds.Delete))
		for _, item := range cmds.Delete {
			ids = append(ids, item.ServerID)
		}
		if err := folder.DestroyMessages(ids); err != nil {
			return 0, fmt.Errorf("deleting messages: %w", err)
		}
		for _, id := range ids {
			listener.SyncRemovedMessage(folderID, id)
		}
	}

	for _, item := range cmds.Change {
		changed, err := applyFlagChanges(folder, item)
		if err != nil {
			return 0, err
		}
		if changed {
			listener.SyncFlagChanged(folderID, item.ServerID)
		}
	}

	return len(cmds.Add), nil
}

// applyFlagChanges stores the flags carried by a change item. It reports
// whether the item carried any flag.
func applyFlagChanges(folder MessageFolder, item SyncItem) (bool, error) {
	data := item.ApplicationData
	if data == nil {
		return false, nil
	}
	changed := false
	if data.Flag != nil {
		flagged := data.Flag.FlagStatus != nil && *data.Flag.FlagStatus == flagStatusActive
		if err := folder.SetMessageFlag(item.ServerID, FlagFlagged, flagged); err != nil {
			return false, fmt.Errorf("flagging %s: %w", item.ServerID, err)
		}
		changed = true
	}
	if data.Read != nil {
		if err := folder.SetMessageFlag(item.ServerID, FlagSeen, *data.Read == 1); err != nil {
			return false, fmt.Errorf("marking %s read: %w", item.ServerID, err)
		}
		changed = true
	}
	return changed, nil
}

func messageFromItem(folderID string, item SyncItem) Message {
	msg := Message{ServerID: item.ServerID, FolderID: folderID}
	data := item.ApplicationData
	if data == nil {
		return msg
	}
	msg.Subject = data.Subject
	msg.From = data.From
	msg.To = data.To
	msg.Cc = data.Cc
	msg.ReplyTo = data.ReplyTo
	msg.DateReceived = data.DateReceived
	msg.Seen = data.Read != nil && *data.Read == 1
	msg.Flagged = data.Flag != nil && data.Flag.FlagStatus != nil && *data.Flag.FlagStatus == flagStatusActive
	if data.Body != nil {
		msg.Body = []byte(data.Body.Data)
		msg.Partial = data.Body.Truncated != nil && *data.Body.Truncated == 1
	}
	return msg
}
