package services

import (
	"context"
	"fmt"
	"strings"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/export"
	"bizdash/internal/filter"
	"bizdash/internal/lifecycle"
	"bizdash/internal/log"
	"bizdash/internal/store"
)

// QuotationValidity is how long a duplicated quotation stays open.
const QuotationValidity = 30

// QuotationService manages quotations. Clients are consulted only to find
// the address a quotation is sent to.
type QuotationService struct {
	base
	store   *store.Store[core.Quotation]
	clients *store.Store[core.Client]
}

func NewQuotationService(s *store.Store[core.Quotation], clients *store.Store[core.Client], opts ...Option) *QuotationService {
	return &QuotationService{base: newBase(log.ComponentQuotation, opts), store: s, clients: clients}
}

func (s *QuotationService) Create(ctx context.Context, draft core.QuotationInput, send bool) (core.Quotation, error) {
	draft = draft.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Quotation{}, s.rejected(ctx, log.OpCreate, err)
	}

	items := core.LineItems(draft.Items)
	status := core.QuotationDraft
	if send {
		status = core.QuotationSent
	}
	description := draft.Description
	if description == "" {
		description = items[0].Description
	}
	q := s.store.Create(func(id string) core.Quotation {
		return core.Quotation{
			ID:          id,
			Client:      draft.Client,
			Amount:      core.SumItems(items),
			Date:        draft.Date,
			ExpiryDate:  draft.ExpiryDate,
			Status:      status,
			Description: description,
			Items:       items,
		}
	})

	s.changed(ctx, events.KindQuotation, events.ActionCreated, q.ID, summarize(q.Client, q.Amount))
	return q, nil
}

func (s *QuotationService) Update(ctx context.Context, id string, patch core.QuotationPatch) (core.Quotation, bool, error) {
	if err := patch.Validate(); err != nil {
		return core.Quotation{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	q, ok := s.store.Update(id, patch.Apply)
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Quotation{}, false, nil
	}
	s.changed(ctx, events.KindQuotation, events.ActionUpdated, id, "")
	return q, true, nil
}

// Edit replaces the items of a quotation. Unlike invoices, the amount is
// re-derived and the description follows the first item.
func (s *QuotationService) Edit(ctx context.Context, id string, items []core.ItemDraft) (core.Quotation, bool, error) {
	draft := core.ItemsDraft{Items: items}.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Quotation{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	priced := core.LineItems(draft.Items)
	q, ok := s.store.Update(id, func(q core.Quotation) core.Quotation {
		q.Items = priced
		q.Amount = core.SumItems(priced)
		q.Description = priced[0].Description
		return q
	})
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Quotation{}, false, nil
	}
	s.changed(ctx, events.KindQuotation, events.ActionUpdated, id, "items")
	return q, true, nil
}

// Send marks the quotation sent and drafts the covering email, addressed to
// the client whose company or name matches the quotation.
func (s *QuotationService) Send(ctx context.Context, id string) (core.Quotation, export.Message, error) {
	var sendErr error
	q, ok := s.store.UpdateIf(id, func(q core.Quotation) (core.Quotation, bool) {
		next, err := lifecycle.SendQuotation(q.Status)
		if err != nil {
			sendErr = err
			return q, false
		}
		if next == q.Status {
			return q, false
		}
		q.Status = next
		return q, true
	})
	if !ok {
		return core.Quotation{}, export.Message{}, notFound(events.KindQuotation, id)
	}
	if sendErr != nil {
		return core.Quotation{}, export.Message{}, fmt.Errorf("send quotation %s: %w", id, sendErr)
	}
	s.changed(ctx, events.KindQuotation, events.ActionSent, id, q.Client)
	return q, export.QuotationSendMessage(q, s.recipient(q.Client)), nil
}

func (s *QuotationService) recipient(client string) string {
	if s.clients == nil {
		return ""
	}
	for _, c := range s.clients.List() {
		if strings.EqualFold(c.Company, client) || strings.EqualFold(c.Name, client) {
			return c.Email
		}
	}
	return ""
}

// Duplicate copies a quotation to the end of the list as a fresh draft dated
// today and valid for QuotationValidity days.
func (s *QuotationService) Duplicate(ctx context.Context, id string) (core.Quotation, error) {
	src, ok := s.store.Get(id)
	if !ok {
		return core.Quotation{}, notFound(events.KindQuotation, id)
	}
	today := s.today()
	dup := s.store.Append(func(newID string) core.Quotation {
		q := src
		q.ID = newID
		q.Status = core.QuotationDraft
		q.Date = today
		q.ExpiryDate = today.AddDays(QuotationValidity)
		q.Items = append([]core.LineItem(nil), src.Items...)
		return q
	})
	s.changed(ctx, events.KindQuotation, events.ActionDuplicated, dup.ID, "from "+id)
	return dup, nil
}

func (s *QuotationService) Delete(ctx context.Context, id string) {
	if !s.store.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	s.changed(ctx, events.KindQuotation, events.ActionDeleted, id, "")
}

func (s *QuotationService) List(c filter.QuotationCriteria) []core.Quotation {
	return filter.Apply(s.store.List(), c.Match)
}

func (s *QuotationService) All() []core.Quotation {
	return s.store.List()
}

func (s *QuotationService) Get(id string) (core.Quotation, error) {
	q, ok := s.store.Get(id)
	if !ok {
		return core.Quotation{}, notFound(events.KindQuotation, id)
	}
	return q, nil
}

func (s *QuotationService) Revision() uint64 {
	return s.store.Revision()
}
