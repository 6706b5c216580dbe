package http

import (
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/filter"
)

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	writeJSON(w, http.StatusOK, s.svc.Clients.List(filter.ClientCriteria{
		Query:  q.str("q"),
		Status: q.str("status"),
	}))
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var draft core.ClientDraft
	if !decode(w, r, &draft) {
		return
	}
	c, err := s.svc.Clients.Create(r.Context(), draft)
	created(w, r, c, err)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Clients.Get(idParam(r))
	found(w, r, c, err)
}

func (s *Server) updateClient(w http.ResponseWriter, r *http.Request) {
	var patch core.ClientPatch
	if !decode(w, r, &patch) {
		return
	}
	c, ok, err := s.svc.Clients.Update(r.Context(), idParam(r), patch)
	updated(w, r, c, ok, err)
}

// deleteClient leaves invoices and quotations naming the client alone.
func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	s.svc.Clients.Delete(r.Context(), idParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) emailClient(w http.ResponseWriter, r *http.Request) {
	msg, err := s.svc.Clients.Email(idParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "mailto": msg.Mailto()})
}
