// Package outbox sends RFC 822 messages dropped into a directory.
//
// A message is any regular file ending in .eml directly inside the
// outbox directory. Sent messages move to sent/, messages the server
// rejected move to failed/, and messages that hit a transient error
// stay in place and are retried later.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/fsnotify/fsnotify"
)

const (
	// outboxDirPerm is the permission mode for the outbox directories.
	outboxDirPerm = fs.FileMode(0o700)

	// debounceInterval is how often the watcher checks for files whose
	// writes have settled.
	debounceInterval = 500 * time.Millisecond

	// settleTime is how long a file must go without events before it is
	// sent, so half-written messages are not picked up.
	settleTime = 300 * time.Millisecond

	// RetryInterval is the delay before a transient failure is retried.
	RetryInterval = time.Minute

	messageExt = ".eml"
	sentDir    = "sent"
	failedDir  = "failed"
)

// Sender submits one raw message. *eas.SyncEngine implements it.
type Sender interface {
	SendMessage(ctx context.Context, message []byte) error
}

// Outbox watches a directory and sends every message placed in it.
type Outbox struct {
	dir    string
	sender Sender
	logger *slog.Logger

	retryInterval time.Duration
	now           func() time.Time

	// retry holds the earliest next attempt for messages that failed
	// with a transient error.
	retry map[string]time.Time
}

// New creates an outbox for dir.
func New(dir string, sender Sender, logger *slog.Logger) *Outbox {
	return &Outbox{
		dir:           dir,
		sender:        sender,
		logger:        logger,
		retryInterval: RetryInterval,
		now:           time.Now,
		retry:         make(map[string]time.Time),
	}
}

// Dir returns the watched directory.
func (o *Outbox) Dir() string { return o.dir }

func (o *Outbox) ensureDirs() error {
	for _, d := range []string{o.dir, filepath.Join(o.dir, sentDir), filepath.Join(o.dir, failedDir)} {
		if err := os.MkdirAll(d, outboxDirPerm); err != nil {
			return fmt.Errorf("creating outbox dir: %w", err)
		}
	}

	return nil
}

// isMessage reports whether name is a candidate message file. Hidden
// files are skipped so editors and atomic writers can use temp names.
func isMessage(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), messageExt)
}

// Flush sends every message currently in the outbox and returns the
// number sent. Errors of individual messages are logged, not returned;
// authentication failures stop the flush.
func (o *Outbox) Flush(ctx context.Context) (int, error) {
	if err := o.ensureDirs(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(o.dir)
	if err != nil {
		return 0, fmt.Errorf("reading outbox: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && isMessage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	sent := 0
	for _, name := range names {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		err := o.SendFile(ctx, filepath.Join(o.dir, name))
		if err == nil {
			sent++
			continue
		}

		if eas.IsAuthentication(err) {
			return sent, err
		}
	}

	return sent, nil
}

// SendFile sends one message file and moves it according to the result.
func (o *Outbox) SendFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			delete(o.retry, path)
			return nil
		}

		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	if len(data) == 0 {
		o.logger.Warn("skipping empty outbox file", slog.String("file", filepath.Base(path)))
		return o.moveTo(path, failedDir)
	}

	err = o.sender.SendMessage(ctx, data)
	switch {
	case err == nil:
		delete(o.retry, path)
		o.logger.Info("message sent",
			slog.String("file", filepath.Base(path)),
			slog.Int("bytes", len(data)),
		)

		return o.moveTo(path, sentDir)

	case ctx.Err() != nil || eas.IsTransient(err) || eas.IsAuthentication(err):
		// Leave the file in place; it is retried later.
		o.retry[path] = o.now().Add(o.retryInterval)
		o.logger.Warn("send failed, will retry",
			slog.String("file", filepath.Base(path)),
			slog.String("error", err.Error()),
		)

		return err

	default:
		delete(o.retry, path)
		o.logger.Error("send rejected",
			slog.String("file", filepath.Base(path)),
			slog.String("error", err.Error()),
		)

		if mvErr := o.moveTo(path, failedDir); mvErr != nil {
			return errors.Join(err, mvErr)
		}

		return err
	}
}

// moveTo moves path into the named subdirectory. A timestamp prefix
// keeps repeated file names apart.
func (o *Outbox) moveTo(path, sub string) error {
	name := o.now().UTC().Format("20060102T150405.000Z") + "-" + filepath.Base(path)
	dst := filepath.Join(o.dir, sub, name)

	if err := os.Rename(path, dst); err != nil {
		return fmt.Errorf("moving %s to %s: %w", filepath.Base(path), sub, err)
	}

	return nil
}

// Watch sends the messages already present, then watches the directory
// until ctx is cancelled.
func (o *Outbox) Watch(ctx context.Context) error {
	if err := o.ensureDirs(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(o.dir); err != nil {
		return fmt.Errorf("watching outbox: %w", err)
	}

	o.logger.Info("outbox watcher started", slog.String("dir", o.dir))

	if _, err := o.Flush(ctx); err != nil {
		return err
	}

	pending := make(map[string]time.Time)

	ticker := time.NewTicker(debounceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("fsnotify events channel closed unexpectedly")
			}

			if !isMessage(event.Name) || filepath.Dir(event.Name) != filepath.Clean(o.dir) {
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				pending[event.Name] = o.now()
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
				delete(o.retry, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("fsnotify errors channel closed unexpectedly")
			}

			o.logger.Warn("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			if err := o.tick(ctx, pending); err != nil {
				return err
			}
		}
	}
}

// tick sends settled files and due retries. Only authentication
// failures end the watch.
func (o *Outbox) tick(ctx context.Context, pending map[string]time.Time) error {
	now := o.now()

	for path, t := range pending {
		if now.Sub(t) < settleTime {
			continue
		}

		delete(pending, path)

		if err := o.SendFile(ctx, path); eas.IsAuthentication(err) {
			return err
		}
	}

	for path, at := range o.retry {
		if now.Before(at) {
			continue
		}

		if err := o.SendFile(ctx, path); eas.IsAuthentication(err) {
			return err
		}
	}

	return nil
}
