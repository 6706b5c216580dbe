package http

import (
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/filter"
)

type createQuotationRequest struct {
	core.QuotationInput
	Send bool `json:"send"`
}

func (s *Server) listQuotations(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	writeJSON(w, http.StatusOK, s.svc.Quotations.List(filter.QuotationCriteria{
		Query:  q.str("q"),
		Status: q.str("status"),
	}))
}

func (s *Server) createQuotation(w http.ResponseWriter, r *http.Request) {
	var req createQuotationRequest
	if !decode(w, r, &req) {
		return
	}
	q, err := s.svc.Quotations.Create(r.Context(), req.QuotationInput, req.Send)
	created(w, r, q, err)
}

func (s *Server) getQuotation(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Quotations.Get(idParam(r))
	found(w, r, q, err)
}

func (s *Server) updateQuotation(w http.ResponseWriter, r *http.Request) {
	var patch core.QuotationPatch
	if !decode(w, r, &patch) {
		return
	}
	q, ok, err := s.svc.Quotations.Update(r.Context(), idParam(r), patch)
	updated(w, r, q, ok, err)
}

func (s *Server) editQuotation(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !decode(w, r, &req) {
		return
	}
	q, ok, err := s.svc.Quotations.Edit(r.Context(), idParam(r), req.Items)
	updated(w, r, q, ok, err)
}

func (s *Server) deleteQuotation(w http.ResponseWriter, r *http.Request) {
	s.svc.Quotations.Delete(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sendQuotation(w http.ResponseWriter, r *http.Request) {
	q, msg, err := s.svc.Quotations.Send(r.Context(), idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMessageResponse(q, msg))
}

func (s *Server) duplicateQuotation(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.Quotations.Duplicate(r.Context(), idParam(r))
	created(w, r, q, err)
}

func (s *Server) quotationPDF(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	data, err := s.svc.Reports.QuotationPDF(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	attachment(w, "application/pdf", id+".pdf", data)
}
