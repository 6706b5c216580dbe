package backend

import (
	"context"
	"fmt"
	"time"

	"bizdash/internal/amqp"
	"bizdash/internal/cache"
	"bizdash/internal/config"
	"bizdash/internal/events"
	"bizdash/internal/fixtures"
	"bizdash/internal/log"
	"bizdash/internal/services"
	"bizdash/internal/store"
)

const defaultCacheTTL = 5 * time.Minute

// DialFunc opens a broker connection for the amqp events backend.
type DialFunc func(url, exchange, queue string) (EventPublisher, error)

func dialAMQP(url, exchange, queue string) (EventPublisher, error) {
	return amqp.NewClient(url, exchange, queue)
}

var _ Factory = (*DefaultFactory)(nil)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
	dial   DialFunc
	now    func() time.Time
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithDialer replaces the AMQP dialer.
func WithDialer(dial DialFunc) FactoryOption {
	return func(f *DefaultFactory) { f.dial = dial }
}

// WithClock fixes the clock every service reads "today" from.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *DefaultFactory) { f.now = now }
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger, opts ...FactoryOption) *DefaultFactory {
	if logger == nil {
		logger = log.Discard()
	}
	f := &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
		dial:   dialAMQP,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ds, err := f.dataset(cfg)
	if err != nil {
		return nil, err
	}

	b := &Backend{}
	publisher, err := f.publisher(cfg, b)
	if err != nil {
		return nil, err
	}
	b.Publisher = publisher

	opts := []services.Option{
		services.WithLogger(f.logger),
		services.WithPublisher(publisher),
		services.WithClock(f.now),
	}
	ids := idGenerators(cfg.IDScheme)

	clients := store.New(ds.Clients, store.WithIDGenerator(ids.other()))
	b.Settings = services.NewSettingsService(ds.Settings, opts...)
	b.Invoices = services.NewInvoiceService(store.New(ds.Invoices, store.WithIDGenerator(ids.invoice)), b.Settings, opts...)
	b.Quotations = services.NewQuotationService(store.New(ds.Quotations, store.WithIDGenerator(ids.quotation)), clients, opts...)
	b.Expenses = services.NewExpenseService(store.New(ds.Expenses, store.WithIDGenerator(ids.other())), opts...)
	b.Tasks = services.NewTaskService(
		store.New(ds.Projects, store.WithIDGenerator(ids.other())),
		store.New(ds.Tasks, store.WithIDGenerator(ids.other())),
		opts...,
	)
	b.Clients = services.NewClientService(clients, opts...)

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	b.Reports = services.NewReportService(services.ReportSources{
		Invoices:   b.Invoices,
		Quotations: b.Quotations,
		Expenses:   b.Expenses,
		Tasks:      b.Tasks,
		Clients:    b.Clients,
		Settings:   b.Settings,
	}, ttl, opts...)

	b.Caches = cache.NewManager(f.logger)
	for _, c := range b.Reports.Caches() {
		b.Caches.Register(c)
	}

	f.logger.InfoContext(ctx, "Initialized backend",
		"seed", seedName(cfg),
		"id_scheme", ids.name,
		"events_backend", eventsName(cfg),
		log.FieldCount, len(ds.Invoices)+len(ds.Quotations)+len(ds.Expenses)+len(ds.Tasks)+len(ds.Clients))

	return b, nil
}

func (f *DefaultFactory) dataset(cfg Config) (fixtures.Dataset, error) {
	if cfg.SeedFile != "" {
		ds, err := fixtures.LoadFile(cfg.SeedFile)
		if err != nil {
			return fixtures.Dataset{}, fmt.Errorf("failed to load seed file: %w", err)
		}
		return ds, nil
	}
	if cfg.Seed == EmptySeed {
		return fixtures.Empty(), nil
	}
	return fixtures.Demo(), nil
}

// publisher always logs events; with the amqp backend it also ships them to
// the broker and registers the connection for cleanup.
func (f *DefaultFactory) publisher(cfg Config, b *Backend) (events.Publisher, error) {
	logPub := events.NewLogPublisher(f.logger.WithComponent(log.ComponentEvents).Logger)
	if cfg.EventsBackend != config.EventsAMQP {
		return logPub, nil
	}

	client, err := f.dial(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AMQP client: %w", err)
	}
	b.cleanups = append(b.cleanups, client.Close)
	f.logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	return events.Multi{logPub, client}, nil
}

type idScheme struct {
	name      string
	invoice   store.IDGenerator
	quotation store.IDGenerator
	other     func() store.IDGenerator
}

// idGenerators picks per-kind id generators. Sequential keeps the INV-001 and
// QT-001 shapes and timestamps for the rest; uuid replaces all of them.
func idGenerators(scheme string) idScheme {
	if scheme == config.IDSchemeUUID {
		return idScheme{
			name:      scheme,
			invoice:   store.UUID("INV"),
			quotation: store.UUID("QT"),
			other:     func() store.IDGenerator { return store.UUID("") },
		}
	}
	return idScheme{
		name:      config.IDSchemeSequential,
		invoice:   store.Sequential("INV"),
		quotation: store.Sequential("QT"),
		other:     store.Timestamp,
	}
}

func seedName(cfg Config) string {
	if cfg.SeedFile != "" {
		return cfg.SeedFile
	}
	if cfg.Seed == "" {
		return string(DemoSeed)
	}
	return string(cfg.Seed)
}

func eventsName(cfg Config) string {
	if cfg.EventsBackend == "" {
		return config.EventsLog
	}
	return cfg.EventsBackend
}

