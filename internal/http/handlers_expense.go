package http

import (
	"bytes"
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/export"
	"bizdash/internal/filter"
)

func (s *Server) expenseCriteria(r *http.Request) (filter.ExpenseCriteria, error) {
	q := newQuery(r)
	c := filter.ExpenseCriteria{
		Query:    q.str("q"),
		Category: q.str("category"),
		Status:   q.str("status"),
		Dates:    q.dates(),
	}
	return c, q.err()
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	c, err := s.expenseCriteria(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Expenses.List(c))
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var draft core.ExpenseDraft
	if !decode(w, r, &draft) {
		return
	}
	e, err := s.svc.Expenses.Create(r.Context(), draft)
	created(w, r, e, err)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.Expenses.Get(idParam(r))
	found(w, r, e, err)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	var patch core.ExpensePatch
	if !decode(w, r, &patch) {
		return
	}
	e, ok, err := s.svc.Expenses.Update(r.Context(), idParam(r), patch)
	updated(w, r, e, ok, err)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	s.svc.Expenses.Delete(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

// expenseSummary always covers the full list; query filters do not apply.
func (s *Server) expenseSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Expenses.Summary())
}

// exportExpenses writes the filtered list as CSV.
func (s *Server) exportExpenses(w http.ResponseWriter, r *http.Request) {
	c, err := s.expenseCriteria(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.ExpensesCSV(&buf, s.svc.Expenses.List(c)); err != nil {
		writeError(w, r, err)
		return
	}
	attachment(w, "text/csv; charset=utf-8", "expenses.csv", buf.Bytes())
}
