package http

import (
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/export"
	"bizdash/internal/filter"
)

// createInvoiceRequest is an invoice draft plus the "create & send" switch.
type createInvoiceRequest struct {
	core.InvoiceInput
	Send bool `json:"send"`
}

type itemsRequest struct {
	Items []core.ItemDraft `json:"items"`
}

// messageResponse pairs a record with the email drafted for it.
type messageResponse[T any] struct {
	Record  T              `json:"record"`
	Message export.Message `json:"message"`
	Mailto  string         `json:"mailto"`
}

func newMessageResponse[T any](rec T, msg export.Message) messageResponse[T] {
	return messageResponse[T]{Record: rec, Message: msg, Mailto: msg.Mailto()}
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	writeJSON(w, http.StatusOK, s.svc.Invoices.List(filter.InvoiceCriteria{
		Query:  q.str("q"),
		Status: q.str("status"),
	}))
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := s.svc.Invoices.Create(r.Context(), req.InvoiceInput, req.Send)
	created(w, r, inv, err)
}

func (s *Server) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.svc.Invoices.Get(idParam(r))
	found(w, r, inv, err)
}

func (s *Server) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var patch core.InvoicePatch
	if !decode(w, r, &patch) {
		return
	}
	inv, ok, err := s.svc.Invoices.Update(r.Context(), idParam(r), patch)
	updated(w, r, inv, ok, err)
}

func (s *Server) updateInvoiceItems(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decode(w, r, &req) {
		return
	}
	inv, ok, err := s.svc.Invoices.UpdateItems(r.Context(), idParam(r), req.Items)
	updated(w, r, inv, ok, err)
}

func (s *Server) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	s.svc.Invoices.Delete(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sendInvoice(w http.ResponseWriter, r *http.Request) {
	inv, msg, err := s.svc.Invoices.Send(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMessageResponse(inv, msg))
}

func (s *Server) remindInvoice(w http.ResponseWriter, r *http.Request) {
	msg, err := s.svc.Invoices.Reminder(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "mailto": msg.Mailto()})
}

func (s *Server) invoicePDF(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	data, err := s.svc.Reports.InvoicePDF(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	attachment(w, "application/pdf", id+".pdf", data)
}
