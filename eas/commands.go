package eas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// runCommands sends explicit commands for one folder and returns the
// collection of the response after its cursor was persisted.
func (e *SyncEngine) runCommands(ctx context.Context, folderID string, cmds *SyncCommands, options *SyncOptions) (*SyncCollection, error) {
	folder, err := e.store.Folder(folderID)
	if err != nil {
		return nil, fmt.Errorf("opening folder %s: %w", folderID, err)
	}
	key, err := e.syncKey(ctx, folder, folderID)
	if err != nil {
		return nil, err
	}

	req := &Sync{Collections: &SyncCollections{Collection: []SyncCollection{{
		Class:          classEmail,
		SyncKey:        key,
		CollectionID:   folderID,
		DeletesAsMoves: intPtr(0),
		GetChanges:     intPtr(0),
		Options:        options,
		Commands:       cmds,
	}}}}
	return e.sync(ctx, folder, folderID, req)
}

// SetFlag changes a flag of messages on the server. Only the seen and
// flagged flags exist in the protocol; other flags are ignored.
func (e *SyncEngine) SetFlag(ctx context.Context, folderID string, serverIDs []string, flag Flag, value bool) error {
	var data ApplicationData
	switch flag {
	case FlagSeen:
		read := 0
		if value {
			read = 1
		}
		data.Read = intPtr(read)
	case FlagFlagged:
		status := flagStatusClear
		if value {
			status = flagStatusActive
		}
		data.Flag = &EmailFlag{FlagStatus: intPtr(status)}
	default:
		return nil
	}
	if len(serverIDs) == 0 {
		return nil
	}

	changes := make([]SyncItem, 0, len(serverIDs))
	for _, id := range serverIDs {
		d := data
		changes = append(changes, SyncItem{ServerID: id, ApplicationData: &d})
	}
	if _, err := e.runCommands(ctx, folderID, &SyncCommands{Change: changes}, nil); err != nil {
		return fmt.Errorf("setting %s on %d messages: %w", flag, len(serverIDs), err)
	}
	return nil
}

// DeleteMessages deletes messages on the server.
func (e *SyncEngine) DeleteMessages(ctx context.Context, folderID string, serverIDs []string) error {
	if len(serverIDs) == 0 {
		return nil
	}
	deletes := make([]SyncItem, 0, len(serverIDs))
	for _, id := range serverIDs {
		deletes = append(deletes, SyncItem{ServerID: id})
	}
	if _, err := e.runCommands(ctx, folderID, &SyncCommands{Delete: deletes}, nil); err != nil {
		return fmt.Errorf("deleting %d messages: %w", len(serverIDs), err)
	}
	return nil
}

// FetchMessage downloads the full MIME body of one message. The
// message is returned, not stored.
func (e *SyncEngine) FetchMessage(ctx context.Context, folderID, serverID string) (*Message, error) {
	options := &SyncOptions{
		MIMESupport:    intPtr(mimeSupportAll),
		BodyPreference: &BodyPreference{Type: bodyTypeMIME},
	}
	col, err := e.runCommands(ctx, folderID, &SyncCommands{Fetch: []SyncItem{{ServerID: serverID}}}, options)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", serverID, err)
	}
	if col.Responses == nil {
		return nil, fmt.Errorf("fetching %s: %w", serverID, ErrMissingItem)
	}
	for _, item := range col.Responses.Fetch {
		if item.ServerID != serverID {
			continue
		}
		if item.Status != 0 && item.Status != StatusSuccess {
			return nil, &ProtocolStatusError{Command: "Sync Fetch", Status: item.Status}
		}
		msg := messageFromItem(folderID, item)
		return &msg, nil
	}
	return nil, fmt.Errorf("fetching %s: %w", serverID, ErrMissingItem)
}

// UploadMessage adds a MIME message to a folder and returns the id the
// server assigned to it.
func (e *SyncEngine) UploadMessage(ctx context.Context, folderID string, mime []byte) (string, error) {
	clientID := e.newClientID()
	add := SyncItem{
		ClientID: clientID,
		ApplicationData: &ApplicationData{
			Body: &Body{Type: bodyTypeMIME, Data: string(mime)},
		},
	}
	col, err := e.runCommands(ctx, folderID, &SyncCommands{Add: []SyncItem{add}}, nil)
	if err != nil {
		return "", fmt.Errorf("uploading message: %w", err)
	}
	if col.Responses != nil {
		for _, item := range col.Responses.Add {
			if item.ClientID != clientID {
				continue
			}
			if item.Status != StatusSuccess {
				return "", &ProtocolStatusError{Command: "Sync Add", Status: item.Status}
			}
			return item.ServerID, nil
		}
	}
	return "", fmt.Errorf("uploading message: %w: add response", ErrMissingItem)
}

// MoveMessages moves messages between folders and returns the new
// server id of every message that moved. Items the server refused are
// reported in the returned error; the map still holds the moved ones.
func (e *SyncEngine) MoveMessages(ctx context.Context, srcFolderID, dstFolderID string, serverIDs []string) (map[string]string, error) {
	if len(serverIDs) == 0 {
		return map[string]string{}, nil
	}
	req := &MoveItems{Move: make([]Move, 0, len(serverIDs))}
	for _, id := range serverIDs {
		req.Move = append(req.Move, Move{SrcMsgID: id, SrcFldID: srcFolderID, DstFldID: dstFolderID})
	}

	resp, err := RunProvisioned(ctx, e.provisioner, func(ctx context.Context) (*MoveItemsResponse, error) {
		return e.transport.MoveItems(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("moving messages: %w", err)
	}

	moved := make(map[string]string, len(resp.Response))
	var errs []error
	for _, r := range resp.Response {
		if r.Status != moveStatusSuccess {
			errs = append(errs, fmt.Errorf("%s: %w", r.SrcMsgID, &ProtocolStatusError{Command: "MoveItems", Status: r.Status}))
			continue
		}
		moved[r.SrcMsgID] = r.DstMsgID
	}
	if len(errs) > 0 {
		e.logger.Warn("some messages were not moved",
			slog.Int("requested", len(serverIDs)),
			slog.Int("moved", len(moved)),
		)
	}
	return moved, errors.Join(errs...)
}

// SendMessage submits a raw RFC 822 message for delivery.
func (e *SyncEngine) SendMessage(ctx context.Context, message []byte) error {
	_, err := RunProvisioned(ctx, e.provisioner, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, e.transport.SendMail(ctx, message)
	})
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}
