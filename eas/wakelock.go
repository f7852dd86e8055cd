package eas

import (
	"log/slog"
	"sync"
	"time"
)

// WakeLock keeps the host from suspending while a push round trip is in
// flight. Acquire on a held lock extends it.
type WakeLock interface {
	Acquire(timeout time.Duration)
	Release()
}

// TimedWakeLock is an in-process wake lock that expires on its own when
// not released in time. It holds no OS resource; owners that need one
// wrap it.
type TimedWakeLock struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	held  bool
	timer *time.Timer
	gen   uint64
}

// NewTimedWakeLock creates a released lock.
func NewTimedWakeLock(name string, logger *slog.Logger) *TimedWakeLock {
	return &TimedWakeLock{name: name, logger: logger}
}

func (w *TimedWakeLock) Acquire(timeout time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.held = true
	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(timeout, func() { w.expire(gen) })
	w.logger.Debug("wake lock acquired",
		slog.String("name", w.name),
		slog.Duration("timeout", timeout),
	)
}

func (w *TimedWakeLock) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.held {
		w.logger.Debug("wake lock released", slog.String("name", w.name))
	}
	w.held = false
	w.gen++
}

// Held reports whether the lock is currently held.
func (w *TimedWakeLock) Held() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.held
}

// expire drops the hold unless it was renewed or released since the
// timer for gen was armed.
func (w *TimedWakeLock) expire(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return
	}
	if w.held {
		w.logger.Warn("wake lock expired", slog.String("name", w.name))
	}
	w.held = false
	w.timer = nil
}
