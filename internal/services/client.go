package services

import (
	"context"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/export"
	"bizdash/internal/filter"
	"bizdash/internal/log"
	"bizdash/internal/store"
)

// ClientService manages the client directory. Invoices and quotations refer
// to clients by name only, so nothing cascades from here.
type ClientService struct {
	base
	store *store.Store[core.Client]
}

func NewClientService(s *store.Store[core.Client], opts ...Option) *ClientService {
	return &ClientService{base: newBase(log.ComponentClient, opts), store: s}
}

// Create adds a client. New clients are active unless told otherwise and
// have never been invoiced.
func (s *ClientService) Create(ctx context.Context, draft core.ClientDraft) (core.Client, error) {
	draft = draft.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Client{}, s.rejected(ctx, log.OpCreate, err)
	}
	if draft.Status == "" {
		draft.Status = core.ClientActive
	}
	c := s.store.Create(func(id string) core.Client {
		return core.Client{
			ID:      id,
			Name:    draft.Name,
			Email:   draft.Email,
			Phone:   draft.Phone,
			Company: draft.Company,
			Status:  draft.Status,
		}
	})
	s.changed(ctx, events.KindClient, events.ActionCreated, c.ID, c.Name)
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id string, patch core.ClientPatch) (core.Client, bool, error) {
	if err := patch.Validate(); err != nil {
		return core.Client{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	c, ok := s.store.Update(id, patch.Apply)
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Client{}, false, nil
	}
	s.changed(ctx, events.KindClient, events.ActionUpdated, id, "")
	return c, true, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) {
	if !s.store.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	s.changed(ctx, events.KindClient, events.ActionDeleted, id, "")
}

func (s *ClientService) List(c filter.ClientCriteria) []core.Client {
	return filter.Apply(s.store.List(), c.Match)
}

func (s *ClientService) All() []core.Client {
	return s.store.List()
}

func (s *ClientService) Get(id string) (core.Client, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return core.Client{}, notFound(events.KindClient, id)
	}
	return c, nil
}

// Email drafts a greeting to the client.
func (s *ClientService) Email(id string) (export.Message, error) {
	c, err := s.Get(id)
	if err != nil {
		return export.Message{}, err
	}
	return export.ClientEmail(c), nil
}

func (s *ClientService) Revision() uint64 {
	return s.store.Revision()
}
