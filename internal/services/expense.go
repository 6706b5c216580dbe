package services

import (
	"context"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/filter"
	"bizdash/internal/log"
	"bizdash/internal/report"
	"bizdash/internal/store"
)

// ExpenseService manages expenses and their category breakdown.
type ExpenseService struct {
	base
	store *store.Store[core.Expense]
}

func NewExpenseService(s *store.Store[core.Expense], opts ...Option) *ExpenseService {
	return &ExpenseService{base: newBase(log.ComponentExpense, opts), store: s}
}

// Create files a new pending expense. A draft without a date is dated today.
func (s *ExpenseService) Create(ctx context.Context, draft core.ExpenseDraft) (core.Expense, error) {
	draft = draft.Trim()
	if err := core.Validate(draft); err != nil {
		return core.Expense{}, s.rejected(ctx, log.OpCreate, err)
	}
	if draft.Date.IsEmpty() {
		draft.Date = s.today()
	}

	e := s.store.Create(func(id string) core.Expense {
		return core.Expense{
			ID:          id,
			Date:        draft.Date,
			Category:    draft.Category,
			Amount:      draft.Amount,
			Description: draft.Description,
			Status:      core.ExpensePending,
			ReceiptURL:  draft.ReceiptURL,
		}
	})

	s.log.InfoContext(ctx, "Expense filed",
		log.FieldRecordID, e.ID,
		log.FieldCategory, e.Category,
		log.FieldAmountCents, e.Amount.Cents)
	s.changed(ctx, events.KindExpense, events.ActionCreated, e.ID, summarize(e.Category, e.Amount))
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, bool, error) {
	if err := patch.Validate(); err != nil {
		return core.Expense{}, false, s.rejected(ctx, log.OpUpdate, err)
	}
	e, ok := s.store.Update(id, patch.Apply)
	if !ok {
		s.missing(ctx, log.OpUpdate, id)
		return core.Expense{}, false, nil
	}
	s.changed(ctx, events.KindExpense, events.ActionUpdated, id, "")
	return e, true, nil
}

// SetStatus approves or rejects an expense. It is a manual edit: any valid
// status may be set from any other.
func (s *ExpenseService) SetStatus(ctx context.Context, id string, status core.ExpenseStatus) (core.Expense, bool, error) {
	return s.Update(ctx, id, core.ExpensePatch{Status: &status})
}

func (s *ExpenseService) Delete(ctx context.Context, id string) {
	if !s.store.Delete(id) {
		s.missing(ctx, log.OpDelete, id)
		return
	}
	s.changed(ctx, events.KindExpense, events.ActionDeleted, id, "")
}

func (s *ExpenseService) List(c filter.ExpenseCriteria) []core.Expense {
	return filter.Apply(s.store.List(), c.Match)
}

func (s *ExpenseService) All() []core.Expense {
	return s.store.List()
}

func (s *ExpenseService) Get(id string) (core.Expense, error) {
	e, ok := s.store.Get(id)
	if !ok {
		return core.Expense{}, notFound(events.KindExpense, id)
	}
	return e, nil
}

// Summary breaks down the full expense list by category, whatever filter
// the list view is showing.
func (s *ExpenseService) Summary() report.Breakdown {
	return report.ExpenseBreakdown(s.store.List())
}

func (s *ExpenseService) Revision() uint64 {
	return s.store.Revision()
}
