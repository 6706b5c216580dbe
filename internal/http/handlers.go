package http

import (
	"net/http"
	"time"

	"bizdash/internal/core"
)

const defaultTopClients = 5

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports ready once every service is wired.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	wired := map[string]bool{
		"invoices":   s.svc.Invoices != nil,
		"quotations": s.svc.Quotations != nil,
		"expenses":   s.svc.Expenses != nil,
		"tasks":      s.svc.Tasks != nil,
		"clients":    s.svc.Clients != nil,
		"settings":   s.svc.Settings != nil,
		"reports":    s.svc.Reports != nil,
	}
	status, code := "ready", http.StatusOK
	checks := make(map[string]any, len(wired)+3)
	for name, ok := range wired {
		checks[name] = ok
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}
	checks["rate_limiter"] = map[string]any{"active_clients": s.limiter.ActiveClients()}
	checks["requests"] = s.tracer.GetMetrics().TotalRequests
	checks["suspicious_requests"] = s.detector.GetMetrics().SuspiciousRequests

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) reportSummary(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	top := q.number("top", defaultTopClients)
	if err := q.err(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Reports.Summary(r.Context(), top))
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Settings.Get())
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var next core.Settings
	if !decode(w, r, &next) {
		return
	}
	saved, err := s.svc.Settings.Update(r.Context(), next)
	found(w, r, saved, err)
}
