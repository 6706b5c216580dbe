package filter

import (
	"testing"

	"bizdash/internal/core"
	"bizdash/internal/fixtures"
)

func ids[T core.Invoice | core.Quotation | core.Expense | core.Task | core.Client](list []T) []string {
	out := make([]string, len(list))
	for i, rec := range list {
		switch r := any(rec).(type) {
		case core.Invoice:
			out[i] = r.ID
		case core.Quotation:
			out[i] = r.ID
		case core.Expense:
			out[i] = r.ID
		case core.Task:
			out[i] = r.ID
		case core.Client:
			out[i] = r.ID
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInvoiceCriteria(t *testing.T) {
	invoices := fixtures.Demo().Invoices
	cases := []struct {
		name string
		c    InvoiceCriteria
		want []string
	}{
		{"overdue tab", InvoiceCriteria{Status: "overdue"}, []string{"INV-003"}},
		{"all tab", InvoiceCriteria{Status: "all"}, []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}},
		{"pending keeps order", InvoiceCriteria{Status: "pending"}, []string{"INV-002", "INV-005"}},
		{"text on client", InvoiceCriteria{Query: "GLOBEX"}, []string{"INV-002"}},
		{"text on id", InvoiceCriteria{Query: "inv-00"}, []string{"INV-001", "INV-002", "INV-003", "INV-004", "INV-005"}},
		{"text and facet", InvoiceCriteria{Query: "stark", Status: "paid"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(invoices, tc.c.Match))
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	cases := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"ACME", true},
		{" corp", true},
		{"corp ", false}, // whitespace is part of the query
		{" ", false},
		{"globex", false},
	}
	for _, tc := range cases {
		if got := Text(tc.query, "Acme Corp", "INV-001"); got != tc.want {
			t.Errorf("Text(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestIdentityFilter(t *testing.T) {
	ds := fixtures.Demo()
	if got := Apply(ds.Expenses, ExpenseCriteria{}.Match); len(got) != len(ds.Expenses) {
		t.Fatalf("empty criteria dropped expenses: %d of %d", len(got), len(ds.Expenses))
	}
	if got := Apply(ds.Clients, ClientCriteria{Status: "all"}.Match); !equal(ids(got), ids(ds.Clients)) {
		t.Fatalf("all facet changed the client list")
	}
}

func TestExpenseCriteriaDateRange(t *testing.T) {
	expenses := fixtures.Demo().Expenses
	cases := []struct {
		name string
		c    ExpenseCriteria
		want []string
	}{
		{"inclusive bounds", ExpenseCriteria{Dates: DateRange{From: core.NewDate(2023, 6, 8), To: core.NewDate(2023, 6, 12)}}, []string{"2", "3", "4"}},
		{"open end", ExpenseCriteria{Dates: DateRange{From: core.NewDate(2023, 6, 12)}}, []string{"1", "2"}},
		{"open start", ExpenseCriteria{Dates: DateRange{To: core.NewDate(2023, 6, 5)}}, []string{"5"}},
		{"category facet", ExpenseCriteria{Category: "Travel"}, []string{"2"}},
		{"status facet", ExpenseCriteria{Status: "approved"}, []string{"1", "2", "4"}},
		{"text on category", ExpenseCriteria{Query: "meals"}, []string{"3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(expenses, tc.c.Match))
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTaskCriteria(t *testing.T) {
	tasks := fixtures.Demo().Tasks
	cases := []struct {
		name string
		c    TaskCriteria
		want []string
	}{
		{"project", TaskCriteria{Project: "2"}, []string{"201", "202"}},
		{"priority", TaskCriteria{Priority: "high"}, []string{"101", "202"}},
		{"status", TaskCriteria{Status: "in-progress"}, []string{"102"}},
		{"text on description", TaskCriteria{Query: "wireframes"}, []string{"101"}},
		{"due range", TaskCriteria{Due: DateRange{From: core.NewDate(2023, 7, 1)}}, []string{"201", "202"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(tasks, tc.c.Match))
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestQuotationAndClientCriteria(t *testing.T) {
	ds := fixtures.Demo()
	if got := ids(Apply(ds.Quotations, QuotationCriteria{Query: "software"}.Match)); !equal(got, []string{"QT-003"}) {
		t.Fatalf("quotation text search got %v", got)
	}
	if got := ids(Apply(ds.Clients, ClientCriteria{Query: "piedpiper"}.Match)); !equal(got, []string{"5"}) {
		t.Fatalf("client email search got %v", got)
	}
	if got := ids(Apply(ds.Clients, ClientCriteria{Status: "active"}.Match)); !equal(got, []string{"1", "2", "3"}) {
		t.Fatalf("client status facet got %v", got)
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	invoices := fixtures.Demo().Invoices
	before := ids(invoices)
	_ = Apply(invoices, InvoiceCriteria{Status: "paid"}.Match)
	if !equal(before, ids(invoices)) {
		t.Fatalf("Apply mutated its input")
	}
}
