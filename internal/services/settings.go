package services

import (
	"context"
	"sync"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/log"
)

// SettingsService holds the company profile.
type SettingsService struct {
	base
	mu       sync.RWMutex
	settings core.Settings
	revision uint64
}

func NewSettingsService(initial core.Settings, opts ...Option) *SettingsService {
	return &SettingsService{base: newBase(log.ComponentSettings, opts), settings: initial}
}

func (s *SettingsService) Get() core.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the whole profile. The currency code is upper-cased.
func (s *SettingsService) Update(ctx context.Context, next core.Settings) (core.Settings, error) {
	next = next.Trim()
	if err := core.Validate(next); err != nil {
		return core.Settings{}, s.rejected(ctx, log.OpUpdate, err)
	}

	s.mu.Lock()
	s.settings = next
	s.revision++
	s.mu.Unlock()

	s.changed(ctx, events.KindSettings, events.ActionUpdated, "company", next.CompanyName)
	return next, nil
}

func (s *SettingsService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}
