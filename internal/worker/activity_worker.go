package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bizdash/internal/events"
	"bizdash/internal/log"
)

const (
	// DefaultCapacity is how many events the activity log keeps.
	DefaultCapacity = 200
	// summaryLatest is how many recent events each summary lists.
	summaryLatest = 5
)

// Consumer delivers record events until ctx is cancelled.
type Consumer interface {
	ConsumeEvents(ctx context.Context, handler func(context.Context, events.Event) error) error
}

// Entry is one received event with the time the worker saw it.
type Entry struct {
	events.Event
	ReceivedAt time.Time `json:"receivedAt"`
}

// Stats counts what the worker has handled since it started.
type Stats struct {
	Received int64            `json:"received"`
	Rejected int64            `json:"rejected"`
	ByKind   map[string]int64 `json:"byKind"`
}

// ActivityWorker keeps the most recent record events in a fixed-size ring.
type ActivityWorker struct {
	logger *log.Logger
	now    func() time.Time

	mu       sync.RWMutex
	entries  []Entry
	next     int
	full     bool
	received int64
	rejected int64
	byKind   map[string]int64
}

func NewActivityWorker(capacity int, logger *log.Logger) *ActivityWorker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &ActivityWorker{
		logger:  logger.WithComponent(log.ComponentWorker),
		now:     time.Now,
		entries: make([]Entry, capacity),
		byKind:  make(map[string]int64),
	}
}

// HandleEvent records one event. Events without a kind or id are rejected so
// the consumer drops them instead of requeueing forever.
func (w *ActivityWorker) HandleEvent(ctx context.Context, e events.Event) error {
	if e.Kind == "" || e.ID == "" {
		w.mu.Lock()
		w.rejected++
		w.mu.Unlock()
		w.logger.WarnContext(ctx, "Ignoring incomplete event",
			log.FieldKind, e.Kind,
			log.FieldRecordID, e.ID,
			"action", e.Action)
		return nil
	}

	w.mu.Lock()
	w.entries[w.next] = Entry{Event: e, ReceivedAt: w.now().UTC()}
	w.next = (w.next + 1) % len(w.entries)
	if w.next == 0 {
		w.full = true
	}
	w.received++
	w.byKind[e.Kind]++
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Record event received",
		log.FieldKind, e.Kind,
		log.FieldRecordID, e.ID,
		"action", e.Action,
		"summary", e.Summary)
	return nil
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (w *ActivityWorker) Recent(n int) []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()

	size := w.next
	if w.full {
		size = len(w.entries)
	}
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (w.next - i + len(w.entries)) % len(w.entries)
		out = append(out, w.entries[idx])
	}
	return out
}

// Stats returns a snapshot of the worker counters.
func (w *ActivityWorker) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	byKind := make(map[string]int64, len(w.byKind))
	for k, v := range w.byKind {
		byKind[k] = v
	}
	return Stats{Received: w.received, Rejected: w.rejected, ByKind: byKind}
}

// Run consumes events into the log until ctx is cancelled.
func (w *ActivityWorker) Run(ctx context.Context, c Consumer) error {
	w.logger.InfoContext(ctx, "Activity worker started", "capacity", len(w.entries))
	err := c.ConsumeEvents(ctx, w.HandleEvent)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("consume events: %w", err)
	}
	return nil
}

// Report logs the counters every interval until ctx is cancelled.
func (w *ActivityWorker) Report(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.logSummary(ctx)
		}
	}
}

func (w *ActivityWorker) logSummary(ctx context.Context) {
	s := w.Stats()
	recent := w.Recent(summaryLatest)
	latest := make([]string, len(recent))
	for i, e := range recent {
		latest[i] = e.Kind + "/" + e.Action + "/" + e.ID
	}
	w.logger.InfoContext(ctx, "Activity summary",
		"received", s.Received,
		"rejected", s.Rejected,
		"by_kind", s.ByKind,
		"latest", latest)
}
