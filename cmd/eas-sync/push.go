package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/alexjbarnes/eas-sync/internal/outbox"
	"github.com/alexjbarnes/eas-sync/internal/state"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	// restartMin is the first delay before a failed push loop restarts.
	restartMin = 5 * time.Second

	// restartMax caps the restart backoff.
	restartMax = 5 * time.Minute

	// jitterDivisor controls the random jitter added to the restart
	// backoff: jitter is uniform in [0, backoff/jitterDivisor).
	jitterDivisor = 2
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Run the push daemon",
		Long: `Keeps the watched folders in sync with Ping long-polls until interrupted.

PUSH_FOLDERS selects the folders; the inbox is used when it is empty. When
OUTBOX_DIR is set, .eml files written there are sent as they appear.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			a.logger.Info("eas-sync push starting",
				slog.String("version", Version),
				slog.String("host", a.cfg.Host),
				slog.String("device_id", a.cfg.DeviceID),
				slog.Bool("outbox", a.cfg.OutboxDir != ""),
			)

			return runPush(cmd.Context(), a)
		},
	}
}

func runPush(ctx context.Context, a *app) error {
	if err := a.engine.RefreshFolders(ctx); err != nil {
		return fmt.Errorf("refreshing folders: %w", err)
	}

	folderIDs, err := pushFolderIDs(a.state, a.cfg.PushFolders)
	if err != nil {
		return err
	}

	listener := newProgressListener(nil, a.logger)
	syncCfg := a.cfg.SyncConfig()

	// Catch up before the first Ping; push only reports later changes.
	for _, id := range folderIDs {
		if err := a.engine.SyncFolder(ctx, id, syncCfg, listener); err != nil {
			return fmt.Errorf("syncing folder %s: %w", id, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	receiver := newPushReceiver(gctx, a.engine, syncCfg, listener, a.logger)
	wakeLock := eas.NewTimedWakeLock("eas-sync push", a.logger)
	pusher := eas.NewPusher(a.client, a.provisioner, receiver, wakeLock, a.cfg.Heartbeat, a.logger)

	supervisor := newPushSupervisor(pusher, receiver.Events(), a.cfg.Heartbeat, a.logger)
	g.Go(func() error {
		return supervisor.Run(gctx, folderIDs)
	})

	if a.cfg.OutboxDir != "" {
		ob := outbox.New(a.cfg.OutboxDir, a.engine, a.logger)
		a.logger.Info("outbox enabled", slog.String("dir", ob.Dir()))
		g.Go(func() error {
			return ob.Watch(gctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		a.logger.Info("eas-sync push stopped")
		return nil
	}

	return err
}

// pushFolderIDs returns the configured folders after checking they
// exist, or the inbox when none are configured.
func pushFolderIDs(st *state.State, configured []string) ([]string, error) {
	if len(configured) == 0 {
		inbox, err := st.FolderByType(eas.FolderInbox)
		if err != nil {
			return nil, fmt.Errorf("finding inbox: %w", err)
		}
		if inbox == nil {
			return nil, errors.New("no inbox on the server; set PUSH_FOLDERS")
		}

		return []string{inbox.ServerID}, nil
	}

	for _, id := range configured {
		f, err := st.GetFolder(id)
		if err != nil {
			return nil, fmt.Errorf("looking up folder %s: %w", id, err)
		}
		if f == nil {
			return nil, fmt.Errorf("push folder %s: %w", id, state.ErrUnknownFolder)
		}
	}

	return configured, nil
}

// folderSyncer is the part of *eas.SyncEngine the push receiver uses.
type folderSyncer interface {
	SyncFolder(ctx context.Context, folderID string, cfg eas.SyncConfig, listener eas.SyncListener) error
}

// pushReceiver syncs folders the push loop reports and forwards loop
// failures to the supervisor. It never stops the pusher itself.
type pushReceiver struct {
	ctx      context.Context
	engine   folderSyncer
	cfg      eas.SyncConfig
	listener eas.SyncListener
	logger   *slog.Logger

	events chan error

	mu     sync.Mutex
	active map[string]bool
}

func newPushReceiver(ctx context.Context, engine folderSyncer, cfg eas.SyncConfig, listener eas.SyncListener, logger *slog.Logger) *pushReceiver {
	return &pushReceiver{
		ctx:      ctx,
		engine:   engine,
		cfg:      cfg,
		listener: listener,
		logger:   logger,
		events:   make(chan error, 1),
		active:   make(map[string]bool),
	}
}

// Events delivers the error that ended a push loop.
func (r *pushReceiver) Events() <-chan error { return r.events }

func (r *pushReceiver) signal(err error) {
	select {
	case r.events <- err:
	default:
	}
}

func (r *pushReceiver) SetPushActive(folderID string, active bool) {
	r.mu.Lock()
	if active {
		r.active[folderID] = true
	} else {
		delete(r.active, folderID)
	}
	r.mu.Unlock()

	r.logger.Debug("push state changed", slog.String("folder", folderID), slog.Bool("active", active))
}

func (r *pushReceiver) isActive(folderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active[folderID]
}

func (r *pushReceiver) SyncFolder(folderID string) {
	if !r.isActive(folderID) {
		r.logger.Debug("ignoring change for unwatched folder", slog.String("folder", folderID))
		return
	}

	err := r.engine.SyncFolder(r.ctx, folderID, r.cfg, r.listener)
	if err == nil || r.ctx.Err() != nil {
		return
	}

	if eas.IsAuthentication(err) {
		r.signal(err)
		return
	}

	// A failed folder sync is retried on the next change notification.
	r.logger.Warn("push sync failed",
		slog.String("folder", folderID),
		slog.String("error", err.Error()),
	)
}

func (r *pushReceiver) AuthenticationFailed() {
	r.signal(eas.ErrAuthentication)
}

func (r *pushReceiver) PushError(message string, err error) {
	r.signal(fmt.Errorf("%s: %w", message, err))
}

// pushLoop is the part of *eas.Pusher the supervisor drives.
type pushLoop interface {
	Start(ctx context.Context, folderIDs []string)
	Stop()
	Refresh()
	Done() <-chan struct{}
}

// pushSupervisor keeps a push loop running and its wake lock alive.
// Failed loops restart after a jittered exponential backoff; a loop that
// ran longer than one heartbeat resets the backoff. Authentication
// failures are permanent.
type pushSupervisor struct {
	loop      pushLoop
	events    <-chan error
	heartbeat time.Duration
	logger    *slog.Logger

	// refreshInterval is how often the wake lock is renewed. It must stay
	// below the lock timeout, which is the heartbeat plus margins.
	refreshInterval time.Duration
	minBackoff      time.Duration
	maxBackoff      time.Duration
}

func newPushSupervisor(loop pushLoop, events <-chan error, heartbeat time.Duration, logger *slog.Logger) *pushSupervisor {
	return &pushSupervisor{
		loop:            loop,
		events:          events,
		heartbeat:       heartbeat,
		logger:          logger,
		refreshInterval: heartbeat,
		minBackoff:      restartMin,
		maxBackoff:      restartMax,
	}
}

// Run blocks until ctx is cancelled or the loop fails permanently.
func (s *pushSupervisor) Run(ctx context.Context, folderIDs []string) error {
	backoff := s.minBackoff

	for {
		started := time.Now()
		s.loop.Start(ctx, folderIDs)

		err := s.watch(ctx)
		s.loop.Stop()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, eas.ErrAuthentication) {
			return fmt.Errorf("push stopped: %w", err)
		}

		if time.Since(started) > s.heartbeat {
			backoff = s.minBackoff
		}

		s.logger.Warn("push loop failed, restarting",
			slog.String("error", err.Error()),
			slog.Int("status", eas.StatusOf(err)),
			slog.Duration("backoff", backoff),
		)

		jitter := time.Duration(rand.Int64N(int64(backoff)/jitterDivisor + 1)) //nolint:gosec // G404: math/rand is fine for restart jitter, no security impact

		timer := time.NewTimer(backoff + jitter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff = min(backoff*2, s.maxBackoff)
	}
}

// watch renews the wake lock of the running loop until the loop reports
// an error, exits, or ctx is cancelled.
func (s *pushSupervisor) watch(ctx context.Context) error {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	done := s.loop.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-s.events:
			return err

		case <-done:
			// The loop reports its error before it exits.
			select {
			case err := <-s.events:
				return err
			default:
				return errors.New("push loop exited")
			}

		case <-ticker.C:
			s.loop.Refresh()
		}
	}
}
