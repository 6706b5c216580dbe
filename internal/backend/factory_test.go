package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"bizdash/internal/config"
	"bizdash/internal/core"
	"bizdash/internal/events"
)

type fakeBroker struct {
	mu       sync.Mutex
	events   []events.Event
	closeErr error
	closed   bool
}

func (b *fakeBroker) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *fakeBroker) Close() error {
	b.closed = true
	return b.closeErr
}

func fixedClock() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestCreateBackendSeeds(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "seed.yaml")
	yaml := "clients:\n  - id: c1\n    name: Bill\n    email: bill@initech.com\n    status: active\n"
	if err := os.WriteFile(seedFile, []byte(yaml), 0644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	tests := []struct {
		name        string
		cfg         Config
		wantInvoice int
		wantClients int
	}{
		{name: "demo", cfg: Config{Seed: DemoSeed}, wantInvoice: 5, wantClients: 5},
		{name: "default is demo", cfg: Config{}, wantInvoice: 5, wantClients: 5},
		{name: "empty", cfg: Config{Seed: EmptySeed}, wantInvoice: 0, wantClients: 0},
		{name: "seed file", cfg: Config{Seed: EmptySeed, SeedFile: seedFile}, wantInvoice: 0, wantClients: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewFactory(nil).CreateBackend(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer b.Close()

			if got := len(b.Invoices.All()); got != tt.wantInvoice {
				t.Errorf("invoices = %d, want %d", got, tt.wantInvoice)
			}
			if got := len(b.Clients.All()); got != tt.wantClients {
				t.Errorf("clients = %d, want %d", got, tt.wantClients)
			}
			if b.Settings.Get().CompanyName == "" {
				t.Errorf("settings not seeded")
			}
		})
	}
}

func TestCreateBackendRejectsBadConfig(t *testing.T) {
	tests := []Config{
		{Seed: "random"},
		{IDScheme: "random"},
		{EventsBackend: "kafka"},
		{EventsBackend: config.EventsAMQP},
		{SeedFile: "/non/existent/seed.yaml"},
	}
	for _, cfg := range tests {
		if _, err := NewFactory(nil).CreateBackend(context.Background(), cfg); err == nil {
			t.Errorf("CreateBackend(%+v) = nil error", cfg)
		}
	}
}

func TestIDSchemes(t *testing.T) {
	ctx := context.Background()
	draft := core.InvoiceInput{
		Client:  "Hooli",
		Date:    core.MustParseDate("2024-03-01"),
		DueDate: core.MustParseDate("2024-03-31"),
		Items:   []core.ItemDraft{{Description: "Audit", Quantity: 1, Rate: core.NewMoney(10)}},
	}

	seq, err := NewFactory(nil).CreateBackend(ctx, Config{IDScheme: config.IDSchemeSequential})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	inv, err := seq.Invoices.Create(ctx, draft, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ID != "INV-006" {
		t.Errorf("sequential id = %q, want INV-006", inv.ID)
	}

	uu, err := NewFactory(nil).CreateBackend(ctx, Config{IDScheme: config.IDSchemeUUID})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	inv, err = uu.Invoices.Create(ctx, draft, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(inv.ID, "INV-") || len(inv.ID) != len("INV-")+36 {
		t.Errorf("uuid id = %q", inv.ID)
	}
}

func TestAMQPEventsBackend(t *testing.T) {
	broker := &fakeBroker{}
	var dialed string
	f := NewFactory(nil,
		WithClock(fixedClock),
		WithDialer(func(url, exchange, queue string) (EventPublisher, error) {
			dialed = url + " " + exchange + " " + queue
			return broker, nil
		}),
	)

	b, err := f.CreateBackend(context.Background(), Config{
		EventsBackend: config.EventsAMQP,
		AMQPURL:       "amqp://localhost:5672/",
		AMQPExchange:  "bizdash",
		AMQPQueue:     "activity",
	})
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if dialed != "amqp://localhost:5672/ bizdash activity" {
		t.Errorf("dialed %q", dialed)
	}

	if _, err := b.Tasks.Toggle(context.Background(), "101"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if len(broker.events) != 1 || broker.events[0].Kind != events.KindTask || broker.events[0].ID != "101" {
		t.Fatalf("broker events = %+v", broker.events)
	}

	if err := b.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !broker.closed {
		t.Errorf("broker connection not closed")
	}
}

func TestAMQPDialFailure(t *testing.T) {
	f := NewFactory(nil, WithDialer(func(string, string, string) (EventPublisher, error) {
		return nil, errors.New("connection refused")
	}))
	_, err := f.CreateBackend(context.Background(), Config{EventsBackend: config.EventsAMQP, AMQPURL: "amqp://nowhere/"})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v", err)
	}
}

func TestCloseCombinesErrors(t *testing.T) {
	first, second := errors.New("first"), errors.New("second")
	b := &Backend{cleanups: []CleanupFunc{
		func() error { return first },
		func() error { return nil },
		func() error { return second },
	}}

	err := b.Close()
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("Close() = %v, want both errors", err)
	}
	if (&Backend{}).Close() != nil {
		t.Errorf("Close on empty backend should be nil")
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Errorf("nil config accepted")
	}
	cfg, err := FromAppConfig(&config.Config{Seed: config.SeedEmpty, IDScheme: config.IDSchemeUUID, EventsBackend: config.EventsLog, CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Seed != EmptySeed || cfg.IDScheme != config.IDSchemeUUID || cfg.CacheTTL != time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
}
