// Package events announces record changes to whoever is listening.
//
// Publishing is fire-and-forget from the caller's point of view: a failed
// publish is logged by the service and never undoes the mutation.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Record kinds.
const (
	KindInvoice   = "invoice"
	KindQuotation = "quotation"
	KindExpense   = "expense"
	KindProject   = "project"
	KindTask      = "task"
	KindClient    = "client"
	KindSettings  = "settings"
)

// Actions.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionSent       = "sent"
	ActionReminded   = "reminded"
	ActionDuplicated = "duplicated"
	ActionToggled    = "toggled"
)

// Event describes one change to one record.
type Event struct {
	Kind      string    `json:"kind"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the current time.
func New(kind, action, id, summary string) Event {
	return Event{Kind: kind, Action: action, ID: id, Summary: summary, Timestamp: time.Now().UTC()}
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LogPublisher writes every event to the structured log.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "Record event",
		"kind", e.Kind,
		"action", e.Action,
		"record_id", e.ID,
		"summary", e.Summary)
	return nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Multi fans an event out to several publishers and returns the first error.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
