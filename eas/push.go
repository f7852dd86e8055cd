package eas

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultHeartbeat is the Ping heartbeat interval. Exchange accepts
	// up to 59 minutes; NAT gateways often drop idle connections long
	// before that.
	DefaultHeartbeat = 9 * time.Minute

	// pingTimeoutMargin is added to the heartbeat to get the request
	// timeout, so the server always answers before the client gives up.
	pingTimeoutMargin = 30 * time.Second

	// wakeLockMargin covers the work between two Ping requests.
	wakeLockMargin = 30 * time.Second
)

// Pusher runs the Ping long-poll loop for a set of folders.
type Pusher struct {
	transport   Transport
	provisioner *Provisioner
	receiver    PushReceiver
	wakeLock    WakeLock
	heartbeat   time.Duration
	logger      *slog.Logger

	// lifecycle serialises Start and Stop so a stop-then-install
	// sequence is never interleaved with another.
	lifecycle sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPusher creates a stopped pusher. A non-positive heartbeat selects
// DefaultHeartbeat.
func NewPusher(transport Transport, provisioner *Provisioner, receiver PushReceiver, wakeLock WakeLock, heartbeat time.Duration, logger *slog.Logger) *Pusher {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Pusher{
		transport:   transport,
		provisioner: provisioner,
		receiver:    receiver,
		wakeLock:    wakeLock,
		heartbeat:   heartbeat,
		logger:      logger,
	}
}

func (p *Pusher) lockTimeout() time.Duration {
	return p.heartbeat + pingTimeoutMargin + wakeLockMargin
}

// Start stops any running loop and starts a new one watching folderIDs.
// The loop ends when ctx is cancelled, Stop is called, or an error
// is reported to the receiver.
func (p *Pusher) Start(ctx context.Context, folderIDs []string) {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.stop()
	if len(folderIDs) == 0 {
		return
	}

	ids := append([]string(nil), folderIDs...)
	for _, id := range ids {
		p.receiver.SetPushActive(id, true)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.run(ctx, ids, done)
}

// Stop cancels the loop and waits for it to clean up.
func (p *Pusher) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	p.stop()
}

func (p *Pusher) stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Refresh extends the wake lock of a running loop.
func (p *Pusher) Refresh() {
	if p.Running() {
		p.wakeLock.Acquire(p.lockTimeout())
	}
}

// Running reports whether a loop is active.
func (p *Pusher) Running() bool {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the current loop exits, or nil
// when no loop was started.
func (p *Pusher) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *Pusher) run(ctx context.Context, folderIDs []string, done chan struct{}) {
	defer close(done)

	p.wakeLock.Acquire(p.lockTimeout())
	defer func() {
		p.wakeLock.Release()
		for _, id := range folderIDs {
			p.receiver.SetPushActive(id, false)
		}
	}()

	req := &PingRequest{
		HeartbeatInterval: int(p.heartbeat / time.Second),
		Folders:           &PingFolders{Folder: make([]PingFolder, 0, len(folderIDs))},
	}
	for _, id := range folderIDs {
		req.Folders.Folder = append(req.Folders.Folder, PingFolder{ID: id, Class: classEmail})
	}
	timeout := p.heartbeat + pingTimeoutMargin

	p.logger.Info("push started",
		slog.Int("folders", len(folderIDs)),
		slog.Duration("heartbeat", p.heartbeat),
	)

	for {
		if ctx.Err() != nil {
			p.logger.Info("push stopped")
			return
		}

		resp, err := RunProvisioned(ctx, p.provisioner, func(ctx context.Context) (*PingResponse, error) {
			return p.transport.Ping(ctx, req, timeout)
		})
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("push stopped")
				return
			}
			if IsAuthentication(err) {
				p.receiver.AuthenticationFailed()
				return
			}
			p.receiver.PushError("ping failed", err)
			return
		}

		switch resp.Status {
		case pingStatusNoChanges:
			p.logger.Debug("ping heartbeat expired without changes")
		case pingStatusChanges:
			if resp.Folders == nil {
				continue
			}
			for _, id := range resp.Folders.Folder {
				if ctx.Err() != nil {
					break
				}
				p.receiver.SyncFolder(id)
			}
		default:
			p.receiver.PushError(
				fmt.Sprintf("unexpected ping status %d", resp.Status),
				&ProtocolStatusError{Command: "Ping", Status: resp.Status},
			)
			return
		}
	}
}
