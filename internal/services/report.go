package services

import (
	"context"
	"fmt"
	"time"

	"bizdash/internal/cache"
	"bizdash/internal/core"
	"bizdash/internal/export"
	"bizdash/internal/log"
	"bizdash/internal/report"
)

// Summary is the reports screen.
type Summary struct {
	Financial         report.Financial       `json:"financial"`
	Expenses          report.Breakdown       `json:"expenses"`
	TopClients        []report.ClientRevenue `json:"topClients"`
	InvoiceStatuses   map[string]int         `json:"invoiceStatuses"`
	QuotationStatuses map[string]int         `json:"quotationStatuses"`
	ClientStatuses    map[string]int         `json:"clientStatuses"`
	Tasks             map[string]int         `json:"tasks"`
}

// ReportService derives the reports screen and exported documents. Results
// are cached under the revisions of the lists they were computed from, so
// any mutation makes them stale.
type ReportService struct {
	base
	invoices   *InvoiceService
	quotations *QuotationService
	expenses   *ExpenseService
	tasks      *TaskService
	clients    *ClientService
	settings   *SettingsService

	summaries *cache.LRUCache[Summary]
	documents *cache.LRUCache[[]byte]
}

// ReportSources are the services a report reads from.
type ReportSources struct {
	Invoices   *InvoiceService
	Quotations *QuotationService
	Expenses   *ExpenseService
	Tasks      *TaskService
	Clients    *ClientService
	Settings   *SettingsService
}

func NewReportService(src ReportSources, ttl time.Duration, opts ...Option) *ReportService {
	return &ReportService{
		base:       newBase(log.ComponentReport, opts),
		invoices:   src.Invoices,
		quotations: src.Quotations,
		expenses:   src.Expenses,
		tasks:      src.Tasks,
		clients:    src.Clients,
		settings:   src.Settings,
		summaries:  cache.NewLRUCache[Summary](32, ttl),
		documents:  cache.NewLRUCache[[]byte](64, ttl),
	}
}

// Caches returns the caches owned by the service, for periodic cleanup.
func (s *ReportService) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.summaries, s.documents}
}

// Summary computes the reports screen with the top clients limited to top.
func (s *ReportService) Summary(ctx context.Context, top int) Summary {
	key := fmt.Sprintf("summary:%d:%d:%d:%d:%d:%d",
		top, s.invoices.Revision(), s.quotations.Revision(), s.expenses.Revision(), s.tasks.Revision(), s.clients.Revision())

	sum, _ := s.summaries.GetOrCompute(key, func() (Summary, error) {
		s.log.DebugContext(ctx, "Computing report summary", log.FieldOperation, log.OpRead)
		invoices := s.invoices.All()
		expenses := s.expenses.All()
		return Summary{
			Financial:  report.FinancialSummary(invoices, expenses),
			Expenses:   report.ExpenseBreakdown(expenses),
			TopClients: report.TopClients(invoices, top),
			InvoiceStatuses: report.StatusCounts(invoices, func(inv core.Invoice) string {
				return string(inv.Status)
			}),
			QuotationStatuses: report.StatusCounts(s.quotations.All(), func(q core.Quotation) string {
				return string(q.Status)
			}),
			ClientStatuses: report.StatusCounts(s.clients.All(), func(c core.Client) string {
				return string(c.Status)
			}),
			Tasks: report.StatusCounts(s.tasks.All(), func(t core.Task) string {
				return string(t.Status)
			}),
		}, nil
	})
	return sum
}

// InvoicePDF renders the invoice with the current company profile. The key
// revisions are read before the record.
func (s *ReportService) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf("invoice:%s:%d:%d", id, s.invoices.Revision(), s.settings.Revision())
	return s.documents.GetOrCompute(key, func() ([]byte, error) {
		inv, err := s.invoices.Get(id)
		if err != nil {
			return nil, err
		}
		s.log.DebugContext(ctx, "Rendering invoice PDF", log.FieldRecordID, id)
		return export.InvoicePDF(inv, s.settings.Get())
	})
}

func (s *ReportService) QuotationPDF(ctx context.Context, id string) ([]byte, error) {
	key := fmt.Sprintf("quotation:%s:%d:%d", id, s.quotations.Revision(), s.settings.Revision())
	return s.documents.GetOrCompute(key, func() ([]byte, error) {
		q, err := s.quotations.Get(id)
		if err != nil {
			return nil, err
		}
		s.log.DebugContext(ctx, "Rendering quotation PDF", log.FieldRecordID, id)
		return export.QuotationPDF(q, s.settings.Get())
	})
}
