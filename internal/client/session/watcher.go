package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// ExpiryWatcher raises the gate when the local copy of a JWT credential
// passes its exp claim, without waiting for a request to fail.
type ExpiryWatcher struct {
	manager  *Manager
	interval time.Duration
	logger   logging.Logger
	now      func() time.Time
}

func NewExpiryWatcher(m *Manager, interval time.Duration, logger logging.Logger) *ExpiryWatcher {
	return &ExpiryWatcher{manager: m, interval: interval, logger: logger, now: time.Now}
}

// Run checks on every tick until ctx is done. A non-positive interval
// disables the watcher.
func (w *ExpiryWatcher) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check performs a single inspection and reports whether it raised the gate.
func (w *ExpiryWatcher) Check(ctx context.Context) bool {
	if w.manager.GateVisible() {
		return false
	}
	snap := w.manager.Snapshot()
	if !snap.IsAuthenticated() {
		return false
	}

	left, err := ExpiresIn(snap.Token, w.now())
	if err != nil {
		// opaque tokens and tokens without exp are only judged by the backend
		return false
	}
	if left > 0 {
		return false
	}

	w.logger.Debug(ctx, "credential passed its exp claim", "user", snap.Username(), "overdue", -left)
	return w.manager.TriggerExpiration()
}
