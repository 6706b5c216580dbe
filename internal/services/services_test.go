package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"bizdash/internal/core"
	"bizdash/internal/events"
	"bizdash/internal/filter"
	"bizdash/internal/fixtures"
	"bizdash/internal/report"
	"bizdash/internal/store"
)

var testToday = time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)

type fixture struct {
	events     *events.Recorder
	invoices   *InvoiceService
	quotations *QuotationService
	expenses   *ExpenseService
	tasks      *TaskService
	clients    *ClientService
	settings   *SettingsService
	reports    *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ds := fixtures.Demo()
	rec := &events.Recorder{}
	opts := []Option{WithClock(func() time.Time { return testToday }), WithPublisher(rec)}

	clientStore := store.New(ds.Clients)
	settings := NewSettingsService(ds.Settings, opts...)
	f := &fixture{
		events:     rec,
		invoices:   NewInvoiceService(store.New(ds.Invoices, store.WithIDGenerator(store.Sequential("INV"))), settings, opts...),
		quotations: NewQuotationService(store.New(ds.Quotations, store.WithIDGenerator(store.Sequential("QT"))), clientStore, opts...),
		expenses:   NewExpenseService(store.New(ds.Expenses), opts...),
		tasks:      NewTaskService(store.New(ds.Projects), store.New(ds.Tasks), opts...),
		clients:    NewClientService(clientStore, opts...),
		settings:   settings,
	}
	f.reports = NewReportService(ReportSources{
		Invoices:   f.invoices,
		Quotations: f.quotations,
		Expenses:   f.expenses,
		Tasks:      f.tasks,
		Clients:    f.clients,
		Settings:   f.settings,
	}, time.Minute, opts...)
	return f
}

func ids[T interface{ RecordID() string }](list []T) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.RecordID()
	}
	return out
}

func TestOverdueTabShowsOnlyOverdueInvoices(t *testing.T) {
	f := newFixture(t)
	got := ids(f.invoices.List(filter.InvoiceCriteria{Status: "overdue"}))
	if diff := cmp.Diff([]string{"INV-003"}, got); diff != "" {
		t.Fatalf("overdue invoices mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoiceCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft := core.InvoiceInput{
		Client:  "  Hooli ",
		Date:    core.NewDate(2024, 3, 1),
		DueDate: core.NewDate(2024, 3, 31),
		Items: []core.ItemDraft{
			{Description: "Design", Quantity: 2, Rate: core.NewMoney(100.25)},
			{Description: "Hosting", Quantity: 1, Rate: core.NewMoney(50)},
		},
	}

	t.Run("draft", func(t *testing.T) {
		inv, err := f.invoices.Create(ctx, draft, false)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if inv.ID != "INV-006" || inv.Status != core.InvoiceDraft {
			t.Fatalf("got %s/%s, want INV-006/draft", inv.ID, inv.Status)
		}
		if inv.Client != "Hooli" {
			t.Errorf("client not trimmed: %q", inv.Client)
		}
		if inv.Amount.String() != "250.50" {
			t.Errorf("amount = %s, want 250.50", inv.Amount)
		}
		if list := f.invoices.All(); len(list) != 6 || list[0].ID != inv.ID {
			t.Errorf("new invoice should be first of 6")
		}
	})

	t.Run("create and send starts pending", func(t *testing.T) {
		inv, err := f.invoices.Create(ctx, draft, true)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if inv.Status != core.InvoicePending {
			t.Fatalf("status = %s, want pending", inv.Status)
		}
	})
}

func TestInvoiceCreateDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	draft := core.InvoiceInput{
		Client:  "Hooli",
		Date:    core.NewDate(2024, 3, 1),
		DueDate: core.NewDate(2024, 3, 31),
		Items:   []core.ItemDraft{{Description: "Audit", Quantity: 1, Rate: core.NewMoney(10)}},
	}

	inv, err := f.invoices.Create(ctx, draft, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.Terms != "Payment due within 30 days." || inv.Notes != "Thank you for your business!" {
		t.Errorf("defaults not applied: terms=%q notes=%q", inv.Terms, inv.Notes)
	}

	draft.Terms = "Net 15"
	if inv, _ = f.invoices.Create(ctx, draft, false); inv.Terms != "Net 15" {
		t.Errorf("explicit terms replaced: %q", inv.Terms)
	}

	bare := NewInvoiceService(store.New([]core.Invoice{}), nil)
	if inv, _ = bare.Create(ctx, core.InvoiceInput{
		Client: "Hooli", Date: draft.Date, DueDate: draft.DueDate, Items: draft.Items,
	}, false); inv.Terms != "" {
		t.Errorf("no settings should leave terms blank, got %q", inv.Terms)
	}
}

func TestInvoiceCreateRejectsOverflowingTotal(t *testing.T) {
	f := newFixture(t)
	before := len(f.invoices.All())
	_, err := f.invoices.Create(context.Background(), core.InvoiceInput{
		Client: "Hooli", Date: core.NewDate(2024, 3, 1), DueDate: core.NewDate(2024, 3, 31),
		Items: []core.ItemDraft{{Description: "Audit", Quantity: 1 << 40, Rate: core.Money{Cents: 1 << 40}}},
	}, false)
	ve, ok := core.AsValidation(err)
	if !ok || !ve.Has("items") {
		t.Fatalf("err = %v, want invalid items", err)
	}
	if got := len(f.invoices.All()); got != before {
		t.Errorf("invoice stored despite overflow: %d -> %d", before, got)
	}
}

func TestCreateWithMissingFieldChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name  string
		field string
		run   func() (int, int, error)
	}{
		{
			name:  "invoice without client",
			field: "client",
			run: func() (int, int, error) {
				before := len(f.invoices.All())
				_, err := f.invoices.Create(ctx, core.InvoiceInput{
					Client: "   ", Date: core.NewDate(2024, 1, 1), DueDate: core.NewDate(2024, 2, 1),
					Items: []core.ItemDraft{{Description: "x", Quantity: 1}},
				}, false)
				return before, len(f.invoices.All()), err
			},
		},
		{
			name:  "invoice without items",
			field: "items",
			run: func() (int, int, error) {
				before := len(f.invoices.All())
				_, err := f.invoices.Create(ctx, core.InvoiceInput{
					Client: "Hooli", Date: core.NewDate(2024, 1, 1), DueDate: core.NewDate(2024, 2, 1),
				}, false)
				return before, len(f.invoices.All()), err
			},
		},
		{
			name:  "expense without amount",
			field: "amount",
			run: func() (int, int, error) {
				before := len(f.expenses.All())
				_, err := f.expenses.Create(ctx, core.ExpenseDraft{Category: "Travel", Description: "Taxi"})
				return before, len(f.expenses.All()), err
			},
		},
		{
			name:  "task without title",
			field: "title",
			run: func() (int, int, error) {
				before := len(f.tasks.All())
				_, err := f.tasks.CreateTask(ctx, core.TaskDraft{Project: "1"})
				return before, len(f.tasks.All()), err
			},
		},
		{
			name:  "client without email",
			field: "email",
			run: func() (int, int, error) {
				before := len(f.clients.All())
				_, err := f.clients.Create(ctx, core.ClientDraft{Name: "Gavin Belson"})
				return before, len(f.clients.All()), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, after, err := tt.run()
			ve, ok := core.AsValidation(err)
			if !ok {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if !ve.Has(tt.field) {
				t.Errorf("fields = %v, want %q among them", ve.Fields(), tt.field)
			}
			if before != after {
				t.Errorf("len changed from %d to %d", before, after)
			}
		})
	}
	if n := len(f.events.Events()); n != 0 {
		t.Errorf("rejected drafts published %d events", n)
	}
}

func TestExpenseCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	before := len(f.expenses.All())

	e, err := f.expenses.Create(ctx, core.ExpenseDraft{
		Category:    "Travel",
		Amount:      core.NewMoney(42.10),
		Description: "Train tickets",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list := f.expenses.All()
	if len(list) != before+1 {
		t.Fatalf("len = %d, want %d", len(list), before+1)
	}
	if list[0].ID != e.ID {
		t.Fatalf("new expense not at index 0")
	}
	if e.Status != core.ExpensePending {
		t.Errorf("status = %s, want pending", e.Status)
	}
	if e.Date.String() != "2024-03-01" {
		t.Errorf("date = %s, want today", e.Date)
	}
}

func TestDuplicateQuotation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	src, err := f.quotations.Get("QT-002")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	dup, err := f.quotations.Duplicate(ctx, "QT-002")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	if dup.ID != "QT-006" {
		t.Errorf("id = %s, want QT-006", dup.ID)
	}
	if dup.Status != core.QuotationDraft {
		t.Errorf("status = %s, want draft", dup.Status)
	}
	if dup.Date.String() != "2024-03-01" || dup.ExpiryDate.String() != "2024-03-31" {
		t.Errorf("dates = %s..%s, want 2024-03-01..2024-03-31", dup.Date, dup.ExpiryDate)
	}
	ignore := cmpopts.IgnoreFields(core.Quotation{}, "ID", "Status", "Date", "ExpiryDate")
	if diff := cmp.Diff(src, dup, ignore); diff != "" {
		t.Errorf("duplicate differs from source (-src +dup):\n%s", diff)
	}

	list := f.quotations.All()
	if list[len(list)-1].ID != "QT-006" {
		t.Errorf("duplicate should be appended at the end")
	}
	if got, _ := f.quotations.Get("QT-002"); got.Status != core.QuotationSent {
		t.Errorf("source status changed to %s", got.Status)
	}

	if _, err := f.quotations.Duplicate(ctx, "QT-999"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("duplicate of unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestToggleTask(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	got, err := f.tasks.Toggle(ctx, "101")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got.Status != core.TaskTodo || got.Completed {
		t.Fatalf("task 101 = %s/%v, want todo/false", got.Status, got.Completed)
	}

	for _, id := range []string{"101", "201"} {
		t.Run("involution "+id, func(t *testing.T) {
			orig, _ := f.tasks.Get(id)
			if _, err := f.tasks.Toggle(ctx, id); err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			back, err := f.tasks.Toggle(ctx, id)
			if err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if back.Status != orig.Status || back.Completed != orig.Completed {
				t.Errorf("after two toggles = %s/%v, want %s/%v", back.Status, back.Completed, orig.Status, orig.Completed)
			}
		})
	}

	t.Run("in-progress completes", func(t *testing.T) {
		got, err := f.tasks.Toggle(ctx, "102")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if got.Status != core.TaskCompleted || !got.Completed {
			t.Errorf("task 102 = %s/%v, want completed/true", got.Status, got.Completed)
		}
	})

	if _, err := f.tasks.Toggle(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("toggle unknown: err = %v, want ErrNotFound", err)
	}
}

func TestToggleRejectedLeavesTaskUntouched(t *testing.T) {
	tasks := NewTaskService(
		store.New([]core.Project{}),
		store.New([]core.Task{{ID: "7", Title: "Legacy", Status: "blocked"}}),
	)
	rev := tasks.Revision()

	if _, err := tasks.Toggle(context.Background(), "7"); !errors.Is(err, core.ErrInvalidStatus) {
		t.Fatalf("Toggle: err = %v, want ErrInvalidStatus", err)
	}
	if tasks.Revision() != rev {
		t.Errorf("rejected toggle bumped the revision")
	}
	if got, _ := tasks.Get("7"); got.Status != "blocked" {
		t.Errorf("status = %s, want blocked", got.Status)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.invoices.Delete(ctx, "INV-002")
	if n := len(f.invoices.All()); n != 4 {
		t.Fatalf("len = %d, want 4", n)
	}
	if _, err := f.invoices.Get("INV-002"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("INV-002 still present")
	}

	f.invoices.Delete(ctx, "INV-002")
	f.invoices.Delete(ctx, "INV-404")
	if n := len(f.invoices.All()); n != 4 {
		t.Fatalf("deleting absent ids changed len to %d", n)
	}
	if n := len(f.events.Events()); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
}

func TestUpdateChangesOnlyGivenFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	before, _ := f.clients.Get("4")

	company := "Wayne Tech"
	status := core.ClientActive
	got, ok, err := f.clients.Update(ctx, "4", core.ClientPatch{Company: &company, Status: &status})
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}

	want := before
	want.Company = company
	want.Status = status
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("update mismatch (-want +got):\n%s", diff)
	}

	t.Run("absent id is a no-op", func(t *testing.T) {
		snapshot := f.clients.All()
		_, ok, err := f.clients.Update(ctx, "404", core.ClientPatch{Company: &company})
		if err != nil || ok {
			t.Fatalf("Update absent: ok=%v err=%v", ok, err)
		}
		if diff := cmp.Diff(snapshot, f.clients.All()); diff != "" {
			t.Errorf("list changed:\n%s", diff)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		bad := core.ClientStatus("vip")
		_, _, err := f.clients.Update(ctx, "4", core.ClientPatch{Status: &bad})
		if ve, ok := core.AsValidation(err); !ok || !ve.Has("status") {
			t.Fatalf("err = %v, want invalid status", err)
		}
	})
}

func TestInvoiceItemEditKeepsStaleAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	inv, ok, err := f.invoices.UpdateItems(ctx, "INV-001", []core.ItemDraft{
		{Description: "Website Design", Quantity: 2, Rate: core.NewMoney(1250)},
	})
	if err != nil || !ok {
		t.Fatalf("UpdateItems: ok=%v err=%v", ok, err)
	}
	if inv.Items[0].Amount.String() != "2500.00" {
		t.Errorf("item amount = %s, want 2500.00", inv.Items[0].Amount)
	}
	if inv.Amount.String() != "1250.00" {
		t.Errorf("invoice amount = %s, want the stale 1250.00", inv.Amount)
	}
}

func TestQuotationEditRederivesAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	q, ok, err := f.quotations.Edit(ctx, "QT-003", []core.ItemDraft{
		{Description: "Backend", Quantity: 10, Rate: core.NewMoney(100)},
		{Description: "Frontend", Quantity: 5, Rate: core.NewMoney(80)},
	})
	if err != nil || !ok {
		t.Fatalf("Edit: ok=%v err=%v", ok, err)
	}
	if q.Amount.String() != "1400.00" || q.Description != "Backend" {
		t.Errorf("got %s %q, want 1400.00 \"Backend\"", q.Amount, q.Description)
	}
}

func TestSendInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	inv, msg, err := f.invoices.Send(ctx, "INV-004")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if inv.Status != core.InvoicePending {
		t.Errorf("status = %s, want pending", inv.Status)
	}
	if msg.To != "bruce@wayne.com" {
		t.Errorf("to = %q", msg.To)
	}

	rev := f.invoices.Revision()
	paid, _, err := f.invoices.Send(ctx, "INV-001")
	if err != nil {
		t.Fatalf("Send paid: %v", err)
	}
	if paid.Status != core.InvoicePaid {
		t.Errorf("paid invoice moved to %s", paid.Status)
	}
	if f.invoices.Revision() != rev {
		t.Errorf("sending a paid invoice should not bump the revision")
	}

	if _, _, err := f.invoices.Send(ctx, "INV-404"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("send unknown: err = %v", err)
	}

	if _, err := f.invoices.Reminder(ctx, "INV-002"); err != nil {
		t.Errorf("Reminder: %v", err)
	}
	if got, _ := f.invoices.Get("INV-002"); got.Status != core.InvoicePending {
		t.Errorf("reminder changed status to %s", got.Status)
	}
}

func TestSendQuotationFindsRecipient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	q, msg, err := f.quotations.Send(ctx, "QT-003")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if q.Status != core.QuotationSent {
		t.Errorf("status = %s, want sent", q.Status)
	}
	if msg.To != "tony@stark.com" {
		t.Errorf("recipient = %q, want tony@stark.com", msg.To)
	}
}

func TestTaskProjects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("unknown project rejected", func(t *testing.T) {
		_, err := f.tasks.CreateTask(ctx, core.TaskDraft{Title: "Orphan", Project: "9"})
		if ve, ok := core.AsValidation(err); !ok || !ve.Has("project") {
			t.Fatalf("err = %v, want invalid project", err)
		}
	})

	task, err := f.tasks.CreateTask(ctx, core.TaskDraft{Title: "QA pass", Project: "1"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Status != core.TaskTodo || task.Priority != core.PriorityMedium || task.Completed {
		t.Errorf("defaults = %s/%s/%v", task.Status, task.Priority, task.Completed)
	}

	tasks, err := f.tasks.ProjectTasks("1")
	if err != nil {
		t.Fatalf("ProjectTasks: %v", err)
	}
	if diff := cmp.Diff([]string{task.ID, "101", "102"}, ids(tasks)); diff != "" {
		t.Errorf("project 1 tasks (-want +got):\n%s", diff)
	}

	f.tasks.DeleteProject(ctx, "1")
	if got := ids(f.tasks.All()); !cmp.Equal(got, []string{"201", "202"}) {
		t.Errorf("tasks after cascade = %v", got)
	}
	if _, err := f.tasks.ProjectTasks("1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted project still readable")
	}
}

func TestClientDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.clients.Delete(ctx, "3")

	got := f.invoices.List(filter.InvoiceCriteria{Query: "stark"})
	if len(got) != 1 {
		t.Fatalf("invoices for Stark = %d, want 1", len(got))
	}
}

func TestClientCreateDefaults(t *testing.T) {
	f := newFixture(t)
	c, err := f.clients.Create(context.Background(), core.ClientDraft{Name: "Erlich Bachman", Email: "erlich@aviato.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Status != core.ClientActive || c.LastInvoice.String() != core.NeverLabel {
		t.Errorf("defaults = %s/%s", c.Status, c.LastInvoice)
	}
}

func TestExpenseSummaryTotals(t *testing.T) {
	f := newFixture(t)
	sum := f.expenses.Summary()

	var total core.Money
	for _, c := range sum.Categories {
		total = total.Add(c.Total)
	}
	if total != sum.Total {
		t.Fatalf("category totals %s != grand total %s", total, sum.Total)
	}
	if sum.Total != report.GrandTotal(f.expenses.All()) {
		t.Fatalf("summary total mismatch")
	}
}

func TestSettingsUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	next := f.settings.Get()
	next.Currency = " eur "
	got, err := f.settings.Update(ctx, next)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Currency != "EUR" {
		t.Errorf("currency = %q", got.Currency)
	}

	next.CompanyName = ""
	if _, err := f.settings.Update(ctx, next); err == nil {
		t.Fatalf("empty company name accepted")
	}
	if f.settings.Get().CompanyName == "" {
		t.Errorf("rejected update was applied")
	}
}

func TestReportSummaryFollowsMutations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.reports.Summary(ctx, 3)
	if len(first.TopClients) != 3 {
		t.Fatalf("top clients = %d, want 3", len(first.TopClients))
	}
	if first.InvoiceStatuses["pending"] != 2 {
		t.Errorf("pending invoices = %d, want 2", first.InvoiceStatuses["pending"])
	}

	status := core.InvoicePaid
	if _, _, err := f.invoices.Update(ctx, "INV-002", core.InvoicePatch{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	second := f.reports.Summary(ctx, 3)
	if second.Financial.Revenue == first.Financial.Revenue {
		t.Errorf("summary not recomputed after invoice update")
	}
}

func TestDocumentsRender(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.reports.InvoicePDF(ctx, "INV-001"); err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	if _, err := f.reports.QuotationPDF(ctx, "QT-404"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("QuotationPDF unknown: err = %v", err)
	}
	if got := f.reports.documents.Size(); got != 1 {
		t.Errorf("cached documents = %d, want 1; lookups of unknown ids are not cached", got)
	}
}

func TestInvoicePDFFollowsEdits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.reports.InvoicePDF(ctx, "INV-001")
	if err != nil {
		t.Fatalf("InvoicePDF: %v", err)
	}
	again, _ := f.reports.InvoicePDF(ctx, "INV-001")
	if !bytes.Equal(first, again) {
		t.Errorf("unchanged invoice should be served from the cache")
	}

	client := "Acme Holdings"
	if _, _, err := f.invoices.Update(ctx, "INV-001", core.InvoicePatch{Client: &client}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	edited, err := f.reports.InvoicePDF(ctx, "INV-001")
	if err != nil {
		t.Fatalf("InvoicePDF after edit: %v", err)
	}
	if bytes.Equal(first, edited) {
		t.Errorf("edited invoice still rendered from the old document")
	}
	if got := f.reports.documents.Size(); got != 2 {
		t.Errorf("cached documents = %d, want 2", got)
	}
}
