// Package services holds one manager per record kind. A manager owns its
// store, validates drafts, applies lifecycle transitions and announces every
// successful mutation.
package services

import (
	"context"
	"errors"
	"time"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/log"
)

// Option configures the shared behaviour of every service.
type Option func(*base)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithLogger sets the logger; the service scopes it to its own component.
func WithLogger(l *log.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.log = l
		}
	}
}

// WithPublisher sets where record events go.
func WithPublisher(p events.Publisher) Option {
	return func(b *base) {
		if p != nil {
			b.events = p
		}
	}
}

type base struct {
	kind   string
	log    *log.Logger
	sl     *log.StructuredLogger
	events events.Publisher
	now    func() time.Time
}

func newBase(kind string, opts []Option) base {
	b := base{
		kind:   kind,
		log:    log.Discard(),
		events: events.Multi{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.WithComponent(kind)
	b.sl = log.NewStructuredLogger(b.log)
	return b
}

func (b *base) today() core.Date {
	return core.DateOf(b.now())
}

// changed logs a mutation and publishes its event. Publish failures are
// logged only; the mutation has already happened.
func (b *base) changed(ctx context.Context, kind, action, id, summary string) {
	b.sl.LogRecordChanged(ctx, kind, action, id)
	if err := b.events.Publish(ctx, events.New(kind, action, id, summary)); err != nil {
		b.sl.LogError(ctx, "Failed to publish record event", err, log.ComponentEvents, action,
			log.NewFields().WithRecord(kind, id))
	}
}

// rejected logs a validation failure and hands the error back.
func (b *base) rejected(ctx context.Context, op string, err error) error {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		b.sl.LogValidationFailed(ctx, b.kind, op, ve.Fields())
	}
	return err
}

// missing logs an update or delete that matched nothing.
func (b *base) missing(ctx context.Context, op, id string) {
	b.log.DebugContext(ctx, "No record with id, nothing changed",
		log.FieldOperation, op, log.FieldRecordID, id)
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// NotFoundError names the record that an action required.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return e.Kind + " " + e.ID + ": " + core.ErrNotFound.Error() }

func (e *NotFoundError) Unwrap() error { return core.ErrNotFound }
