package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"bizdash/internal/core"
	"bizdash/internal/filter"
	"bizdash/internal/fixtures"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, total float64
		want        int
	}{
		{125.50, 1511.43, 8},
		{1, 3, 33},
		{2, 3, 66},
		{10, 10, 100},
		{5, 0, 0},
		{0, 0, 0},
		{-1, 3, -34},
	}
	for _, tc := range cases {
		if got := Percentage(core.NewMoney(tc.part), core.NewMoney(tc.total)); got != tc.want {
			t.Errorf("Percentage(%v, %v) = %d, want %d", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestCategoryTotalsSumToGrandTotal(t *testing.T) {
	expenses := fixtures.Demo().Expenses
	expenses = append(expenses, core.Expense{ID: "6", Category: "Travel", Amount: core.NewMoney(49.25)})

	var sum core.Money
	for _, c := range CategoryTotals(expenses) {
		sum = sum.Add(c.Total)
	}
	if sum != GrandTotal(expenses) {
		t.Fatalf("category totals %s != grand total %s", sum, GrandTotal(expenses))
	}
}

func TestExpenseBreakdown(t *testing.T) {
	b := ExpenseBreakdown(fixtures.Demo().Expenses)
	if b.Total.String() != "1511.43" {
		t.Fatalf("total = %s, want 1511.43", b.Total)
	}
	want := []CategoryTotal{
		{Category: "Office Supplies", Total: core.NewMoney(125.50), Percentage: 8},
		{Category: "Travel", Total: core.NewMoney(350.75), Percentage: 23},
		{Category: "Meals & Entertainment", Total: core.NewMoney(85.20), Percentage: 5},
		{Category: "Software", Total: core.NewMoney(49.99), Percentage: 3},
		{Category: "Equipment", Total: core.NewMoney(899.99), Percentage: 59},
	}
	if diff := cmp.Diff(want, b.Categories); diff != "" {
		t.Fatalf("breakdown (-want +got):\n%s", diff)
	}
}

func TestBreakdownIgnoresDisplayFilter(t *testing.T) {
	all := fixtures.Demo().Expenses
	visible := filter.Apply(all, filter.ExpenseCriteria{Category: "Travel"}.Match)
	if len(visible) != 1 {
		t.Fatalf("expected one visible expense")
	}
	if got := ExpenseBreakdown(all); len(got.Categories) != 5 {
		t.Fatalf("breakdown over full list should have 5 categories, got %d", len(got.Categories))
	}
}

func TestEmptyBreakdown(t *testing.T) {
	b := ExpenseBreakdown(nil)
	if !b.Total.IsZero() || len(b.Categories) != 0 || b.Categories == nil {
		t.Fatalf("unexpected empty breakdown %+v", b)
	}
}

func TestFinancialSummary(t *testing.T) {
	ds := fixtures.Demo()
	got := FinancialSummary(ds.Invoices, ds.Expenses)
	want := Financial{
		Revenue:       core.NewMoney(1250.00),
		Outstanding:   core.NewMoney(3450.75 + 5000.00 + 1800.25),
		TotalExpenses: core.NewMoney(1511.43),
		NetProfit:     core.Money{Cents: 125000 - 151143},
		ProfitMargin:  -21,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary (-want +got):\n%s", diff)
	}

	if m := FinancialSummary(nil, ds.Expenses).ProfitMargin; m != 0 {
		t.Fatalf("margin without revenue = %d, want 0", m)
	}
}

func TestTopClients(t *testing.T) {
	invoices := fixtures.Demo().Invoices
	invoices = append(invoices, core.Invoice{ID: "INV-006", Client: "Acme Corp", Amount: core.NewMoney(100), Status: core.InvoicePaid})

	got := TopClients(invoices, 2)
	want := []ClientRevenue{
		{Client: "Acme Corp", Revenue: core.NewMoney(1350), Invoices: 2},
		{Client: "Globex Inc", Revenue: core.Money{}, Invoices: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top clients (-want +got):\n%s", diff)
	}
	if all := TopClients(invoices, 0); len(all) != 5 {
		t.Fatalf("n=0 should return every client, got %d", len(all))
	}
}

func TestTaskBoard(t *testing.T) {
	b := TaskBoard(fixtures.Demo().Tasks)
	if len(b.Todo) != 2 || len(b.InProgress) != 1 || len(b.Completed) != 1 {
		t.Fatalf("unexpected board sizes %d/%d/%d", len(b.Todo), len(b.InProgress), len(b.Completed))
	}
	if b.Todo[0].ID != "201" || b.Todo[1].ID != "202" {
		t.Fatalf("todo column lost list order")
	}
}

func TestStatusCounts(t *testing.T) {
	got := StatusCounts(fixtures.Demo().Invoices, func(inv core.Invoice) string { return string(inv.Status) })
	want := map[string]int{"paid": 1, "pending": 2, "overdue": 1, "draft": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("counts (-want +got):\n%s", diff)
	}
}
