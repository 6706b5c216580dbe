package services

import (
	"context"
	"fmt"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/export"
	"bizdash/internal/filter"
	"bizdash/internal/lifecycle"
	"bizdash/internal/log"
	"bizdash/internal/store"
)

// InvoiceService manages the invoice list.
type InvoiceService struct {
	base
	store    *store.Store[core.Invoice]
	settings *SettingsService
}

// NewInvoiceService wires the invoice store. Settings supplies default terms
// and notes for new invoices and may be nil.
func NewInvoiceService(s *store.Store[core.Invoice], settings *SettingsService, opts ...Option) *InvoiceService {
	return &InvoiceService{base: newBase(log.ComponentInvoice, opts), store: s, settings: settings}
}

// Create stores a new invoice priced from its items. With send set the
// invoice starts out pending, otherwise as a draft. Blank terms and notes
// take the company defaults.
func (s *InvoiceService) Create(ctx context.Context, draft core.InvoiceInput, send bool) (core.Invoice, error) {
	draft = draft.Trim()
	if s.settings != nil {
		defaults := s.settings.Get()
		if draft.Terms == "" {
			draft.Terms = defaults.DefaultTerms
		}
		if draft.Notes == "" {
			draft.Notes = defaults.DefaultNotes
		}
	}
	if err := core.Validate(draft); err != nil {
		return core.Invoice{}, s.rejected(ctx, log.OpCreate, err)
	}

	items := core.LineItems(draft.Items)
	status := core.InvoiceDraft
	if send {
		status = core.InvoicePending
	}
	inv := s.store.Create(func(id string) core.Invoice {
		return core.Invoice{
			ID:      id,
			Client:  draft.Client,
			Amount:  core.SumItems(items),
			Date:    draft.Date,
			DueDate: draft.DueDate,
			Status:  status,
			Email:   draft.Email,
			Items:   items,
			Notes:   draft.Notes,
			Terms:   draft.Terms,
		}
	})

	s.changed(ctx, events.KindInvoice, events.ActionCreated, inv.ID, summarize(inv.Client, inv.Amount))
	return inv, nil
}

// Update merges the patch into the invoice. An unknown id changes nothing
// and reports false.
func (s *InvoiceService) Update(ctx context.Context, id string, patch core.InvoicePatch) (core.Invoice, bool, error) {
	if err := patch.Validate(); err != nil {
		return core.Invoice{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	inv, ok := s.store.Update(id, patch.Apply)
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Invoice{}, false, nil
	}
	s.changed(ctx, events.KindInvoice, events.ActionUpdated, id, "")
	return inv, true, nil
}

// UpdateItems replaces the line items. The stored amount is left as it was;
// only creation derives the total from the items.
func (s *InvoiceService) UpdateItems(ctx context.Context, id string, items []core.ItemDraft) (core.Invoice, bool, error) {
	draft := core.ItemsDraft{Items: items}.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Invoice{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	priced := core.LineItems(draft.Items)
	inv, ok := s.store.Update(id, func(inv core.Invoice) core.Invoice {
		inv.Items = priced
		return inv
	})
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Invoice{}, false, nil
	}
	s.changed(ctx, events.KindInvoice, events.ActionUpdated, id, "items")
	return inv, true, nil
}

// Send moves a draft to pending and returns the message to hand to the mail
// client. Invoices past draft keep their status.
func (s *InvoiceService) Send(ctx context.Context, id string) (core.Invoice, export.Message, error) {
	var sendErr error
	inv, ok := s.store.UpdateIf(id, func(inv core.Invoice) (core.Invoice, bool) {
		next, err := lifecycle.SendInvoice(inv.Status)
		if err != nil {
			sendErr = err
			return inv, false
		}
		if next == inv.Status {
			return inv, false
		}
		inv.Status = next
		return inv, true
	})
	if !ok {
		return core.Invoice{}, export.Message{}, notFound(events.KindInvoice, id)
	}
	if sendErr != nil {
		return core.Invoice{}, export.Message{}, fmt.Errorf("send invoice %s: %w", id, sendErr)
	}
	s.changed(ctx, events.KindInvoice, events.ActionSent, id, string(inv.Status))
	return inv, export.InvoiceSendMessage(inv), nil
}

// Reminder composes a payment reminder. The invoice itself is not touched.
func (s *InvoiceService) Reminder(ctx context.Context, id string) (export.Message, error) {
	inv, err := s.Get(id)
	if err != nil {
		return export.Message{}, err
	}
	if err := s.events.Publish(ctx, events.New(events.KindInvoice, events.ActionReminded, id, inv.Client)); err != nil {
		s.sl.LogError(ctx, "Failed to publish record event", err, log.ComponentEvents, log.OpRemind,
			log.NewFields().WithRecord(events.KindInvoice, id))
	}
	return export.InvoiceReminderMessage(inv), nil
}

// Delete removes the invoice; deleting an unknown id is a no-op.
func (s *InvoiceService) Delete(ctx context.Context, id string) {
	if !s.store.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	s.changed(ctx, events.KindInvoice, events.ActionDeleted, id, "")
}

func (s *InvoiceService) List(c filter.InvoiceCriteria) []core.Invoice {
	return filter.Apply(s.store.List(), c.Match)
}

func (s *InvoiceService) All() []core.Invoice {
	return s.store.List()
}

func (s *InvoiceService) Get(id string) (core.Invoice, error) {
	inv, ok := s.store.Get(id)
	if !ok {
		return core.Invoice{}, notFound(events.KindInvoice, id)
	}
	return inv, nil
}

// Revision changes whenever the invoice list does.
func (s *InvoiceService) Revision() uint64 {
	return s.store.Revision()
}

func summarize(who string, amount core.Money) string {
	return who + " " + amount.String()
}
