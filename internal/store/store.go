// Package store holds the in-memory, ordered record lists behind every
// dashboard screen.
//
// A Store keeps records newest-first. Mutations are whole-list replacements
// done under a mutex, so every operation runs to completion before the next
// one observes the list.
package store

import "sync"

// Record is anything addressable by a string id.
type Record interface {
	RecordID() string
}

// Store is an ordered, mutex-guarded list of records of one kind.
type Store[T Record] struct {
	mu       sync.RWMutex
	items    []T
	ids      IDGenerator
	revision uint64
}

// Option configures a Store.
type Option func(*options)

type options struct {
	ids IDGenerator
}

// WithIDGenerator sets the id scheme used by Create.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// New creates a store seeded with a copy of seed. Without an explicit id
// generator, ids are millisecond timestamps.
func New[T Record](seed []T, opts ...Option) *Store[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = Timestamp()
	}
	items := make([]T, len(seed))
	copy(items, seed)
	return &Store[T]{items: items, ids: o.ids}
}

// Create assigns a fresh id through assign, prepends the record and returns it.
// Callers validate drafts before calling Create.
func (s *Store[T]) Create(assign func(id string) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := assign(s.ids.NextID(len(s.items)))
	items := make([]T, 0, len(s.items)+1)
	items = append(items, rec)
	items = append(items, s.items...)
	s.items = items
	s.revision++
	return rec
}

// Append adds rec at the tail using a freshly generated id.
func (s *Store[T]) Append(assign func(id string) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := assign(s.ids.NextID(len(s.items)))
	s.items = append(s.items[:len(s.items):len(s.items)], rec)
	s.revision++
	return rec
}

// Update replaces the record with the given id by fn(existing). It reports
// whether a record matched; an unknown id leaves the list untouched.
func (s *Store[T]) Update(id string, fn func(T) T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	for i, rec := range s.items {
		if rec.RecordID() != id {
			continue
		}
		items := make([]T, len(s.items))
		copy(items, s.items)
		items[i] = fn(rec)
		s.items = items
		s.revision++
		return items[i], true
	}
	return zero, false
}

// UpdateIf is Update for guarded changes: fn reports whether to write. When
// it declines, the record and the revision stay as they were and the stored
// record is returned.
func (s *Store[T]) UpdateIf(id string, fn func(T) (T, bool)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	for i, rec := range s.items {
		if rec.RecordID() != id {
			continue
		}
		next, write := fn(rec)
		if !write {
			return rec, true
		}
		items := make([]T, len(s.items))
		copy(items, s.items)
		items[i] = next
		s.items = items
		s.revision++
		return next, true
	}
	return zero, false
}

// Delete removes every record with the given id. Deleting an absent id is a
// no-op; the return value reports whether anything was removed.
func (s *Store[T]) Delete(id string) bool {
	return s.DeleteWhere(func(rec T) bool { return rec.RecordID() == id }) > 0
}

// DeleteWhere removes every record matching pred and returns how many went.
func (s *Store[T]) DeleteWhere(pred func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]T, 0, len(s.items))
	for _, rec := range s.items {
		if !pred(rec) {
			kept = append(kept, rec)
		}
	}
	removed := len(s.items) - len(kept)
	if removed > 0 {
		s.items = kept
		s.revision++
	}
	return removed
}

// Get returns the first record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.items {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// List returns a snapshot of the records in display order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Revision increases on every mutation that changed the list.
func (s *Store[T]) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
