package backend

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"bizdash/internal/cache"
	"bizdash/internal/events"
	"bizdash/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Backend is every service of the dashboard wired over one dataset.
type Backend struct {
	Invoices   *services.InvoiceService
	Quotations *services.QuotationService
	Expenses   *services.ExpenseService
	Tasks      *services.TaskService
	Clients    *services.ClientService
	Settings   *services.SettingsService
	Reports    *services.ReportService

	// Caches sweeps the report and document caches; run it with Caches.Run.
	Caches    *cache.Manager
	Publisher events.Publisher

	cleanups []CleanupFunc
}

// Close runs every cleanup and returns all of their errors combined.
func (b *Backend) Close() error {
	var result *multierror.Error
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		if err := b.cleanups[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// EventPublisher is what the factory needs from a message broker client.
type EventPublisher interface {
	events.Publisher
	Close() error
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Backend, error)
}
