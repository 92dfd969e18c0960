// Package watch drives the conversation refresh loop: the active view is
// recomputed from scratch on a fixed tick and once immediately after any
// local append. Polling, not push — the log has no remote writer to push
// from.
package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/studyhall-labs/studybuddy/internal/message"
	"github.com/studyhall-labs/studybuddy/internal/store"
)

// ViewFunc receives each recomputed conversation view.
type ViewFunc func(partnerID string, msgs []message.Message)

type Watcher struct {
	log      *store.Log
	interval time.Duration
	onView   ViewFunc
	logger   *slog.Logger

	mu      sync.Mutex
	partner string

	refresh chan struct{}
}

func New(log *store.Log, interval time.Duration, onView ViewFunc, logger *slog.Logger) *Watcher {
	return &Watcher{
		log:      log,
		interval: interval,
		onView:   onView,
		logger:   logger,
		refresh:  make(chan struct{}, 1),
	}
}

// SetPartner activates the view for a conversation partner and refreshes
// immediately. An empty id deactivates the loop's work without stopping
// it.
func (w *Watcher) SetPartner(id string) {
	w.mu.Lock()
	w.partner = id
	w.mu.Unlock()
	if id != "" {
		w.Refresh()
	}
}

// Refresh requests an immediate recomputation. Coalesces with a pending
// request.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.recompute(ctx)
		case <-w.refresh:
			w.recompute(ctx)
		}
	}
}

func (w *Watcher) recompute(ctx context.Context) {
	w.mu.Lock()
	partner := w.partner
	w.mu.Unlock()
	if partner == "" {
		return
	}

	msgs, err := w.log.Conversation(ctx, partner)
	if err != nil {
		w.logger.Warn("conversation refresh failed", "partner", partner, "error", err)
		return
	}
	w.onView(partner, msgs)
}
