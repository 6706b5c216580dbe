// Package http serves the dashboard records as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"bizdash/internal/log"
	"bizdash/internal/middleware/ratelimit"
	"bizdash/internal/middleware/security"
	"bizdash/internal/middleware/trace"
	"bizdash/internal/services"
)

// Services are the managers behind the API.
type Services struct {
	Invoices   *services.InvoiceService
	Quotations *services.QuotationService
	Expenses   *services.ExpenseService
	Tasks      *services.TaskService
	Clients    *services.ClientService
	Settings   *services.SettingsService
	Reports    *services.ReportService
}

// Config tunes the HTTP layer.
type Config struct {
	Addr         string
	RateLimit    ratelimit.Config
	MaxBodyBytes int64
	Logger       *log.Logger
}

const defaultMaxBody = 1 << 20

type Server struct {
	http.Server
	svc Services

	logger   *log.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	started  time.Time

	shutdownOnce sync.Once
}

// NewServer wires middleware and routes, returning a ready-to-run server.
func NewServer(cfg Config, svc Services) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBody
	}

	detector := security.NewDetector(logger)
	s := &Server{
		svc:      svc,
		logger:   logger.WithComponent(log.ComponentHTTP),
		limiter:  ratelimit.NewLimiter(cfg.RateLimit),
		detector: detector,
		tracer:   trace.NewMiddleware(logger, detector.ExtractClientIP),
		started:  time.Now(),
	}
	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(s.tracer.Handler)
	r.Use(s.detector.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(security.BodyLimit(cfg.MaxBodyBytes))
	r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.rateLimited))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", s.listInvoices)
			r.Post("/", s.createInvoice)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getInvoice)
				r.Patch("/", s.updateInvoice)
				r.Delete("/", s.deleteInvoice)
				r.Put("/items", s.updateInvoiceItems)
				r.Post("/send", s.sendInvoice)
				r.Post("/reminder", s.remindInvoice)
				r.Get("/pdf", s.invoicePDF)
			})
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", s.listQuotations)
			r.Post("/", s.createQuotation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getQuotation)
				r.Patch("/", s.updateQuotation)
				r.Delete("/", s.deleteQuotation)
				r.Put("/items", s.editQuotation)
				r.Post("/send", s.sendQuotation)
				r.Post("/duplicate", s.duplicateQuotation)
				r.Get("/pdf", s.quotationPDF)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.listExpenses)
			r.Post("/", s.createExpense)
			r.Get("/summary", s.expenseSummary)
			r.Get("/export.csv", s.exportExpenses)
			r.Get("/{id}", s.getExpense)
			r.Patch("/{id}", s.updateExpense)
			r.Delete("/{id}", s.deleteExpense)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Delete("/{id}", s.deleteProject)
			r.Get("/{id}/tasks", s.projectTasks)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.createTask)
			r.Get("/board", s.taskBoard)
			r.Get("/{id}", s.getTask)
			r.Patch("/{id}", s.updateTask)
			r.Delete("/{id}", s.deleteTask)
			r.Post("/{id}/toggle", s.toggleTask)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", s.listClients)
			r.Post("/", s.createClient)
			r.Get("/{id}", s.getClient)
			r.Patch("/{id}", s.updateClient)
			r.Delete("/{id}", s.deleteClient)
			r.Get("/{id}/email", s.emailClient)
		})

		r.Get("/reports/summary", s.reportSummary)
		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.updateSettings)
	})

	return r
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	w.Header().Set("Retry-After", "60")
	writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded, try again later"})
}

// RunBackground runs the server's housekeeping until ctx is done.
func (s *Server) RunBackground(ctx context.Context) error {
	return s.limiter.Run(ctx)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}
