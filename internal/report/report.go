// Package report derives totals, breakdowns and boards from record lists.
// Everything here is a pure function of its input.
package report

import (
	"sort"

	"bizdash/internal/core"
)

// CategoryTotal is the sum of the expenses filed under one category.
type CategoryTotal struct {
	Category   string     `json:"category"`
	Total      core.Money `json:"total"`
	Percentage int        `json:"percentage"`
}

// CategoryTotals sums expenses per category in order of first appearance.
// Pass the full list; the breakdown ignores any display filter.
func CategoryTotals(expenses []core.Expense) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
	}
	return out
}

// GrandTotal sums every expense amount.
func GrandTotal(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Percentage returns floor(part / total * 100). A zero total yields 0.
func Percentage(part, total core.Money) int {
	if total.Cents == 0 {
		return 0
	}
	return int(floorDiv(part.Cents*100, total.Cents))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Breakdown is the expense summary panel: per-category totals and shares.
type Breakdown struct {
	Categories []CategoryTotal `json:"categories"`
	Total      core.Money      `json:"total"`
	Count      int             `json:"count"`
}

func ExpenseBreakdown(expenses []core.Expense) Breakdown {
	total := GrandTotal(expenses)
	cats := CategoryTotals(expenses)
	for i := range cats {
		cats[i].Percentage = Percentage(cats[i].Total, total)
	}
	if cats == nil {
		cats = []CategoryTotal{}
	}
	return Breakdown{Categories: cats, Total: total, Count: len(expenses)}
}

// Financial is the headline metrics panel.
type Financial struct {
	Revenue       core.Money `json:"revenue"`
	Outstanding   core.Money `json:"outstanding"`
	TotalExpenses core.Money `json:"totalExpenses"`
	NetProfit     core.Money `json:"netProfit"`
	ProfitMargin  int        `json:"profitMargin"`
}

// FinancialSummary counts paid invoices as revenue and pending or overdue
// ones as outstanding. Drafts count toward neither.
func FinancialSummary(invoices []core.Invoice, expenses []core.Expense) Financial {
	var f Financial
	for _, inv := range invoices {
		switch inv.Status {
		case core.InvoicePaid:
			f.Revenue = f.Revenue.Add(inv.Amount)
		case core.InvoicePending, core.InvoiceOverdue:
			f.Outstanding = f.Outstanding.Add(inv.Amount)
		}
	}
	f.TotalExpenses = GrandTotal(expenses)
	f.NetProfit = core.Money{Cents: f.Revenue.Cents - f.TotalExpenses.Cents}
	f.ProfitMargin = Percentage(f.NetProfit, f.Revenue)
	return f
}

// ClientRevenue is one row of the top clients table.
type ClientRevenue struct {
	Client   string     `json:"client"`
	Revenue  core.Money `json:"revenue"`
	Invoices int        `json:"invoices"`
}

// TopClients ranks clients by paid revenue, then by name. Clients with no
// paid invoice still appear with zero revenue. n <= 0 returns every client.
func TopClients(invoices []core.Invoice, n int) []ClientRevenue {
	index := make(map[string]int)
	var rows []ClientRevenue
	for _, inv := range invoices {
		i, ok := index[inv.Client]
		if !ok {
			i = len(rows)
			index[inv.Client] = i
			rows = append(rows, ClientRevenue{Client: inv.Client})
		}
		rows[i].Invoices++
		if inv.Status == core.InvoicePaid {
			rows[i].Revenue = rows[i].Revenue.Add(inv.Amount)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Revenue.Cents != rows[b].Revenue.Cents {
			return rows[a].Revenue.Cents > rows[b].Revenue.Cents
		}
		return rows[a].Client < rows[b].Client
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	if rows == nil {
		rows = []ClientRevenue{}
	}
	return rows
}

// Board groups tasks into the three kanban columns, keeping list order.
type Board struct {
	Todo       []core.Task `json:"todo"`
	InProgress []core.Task `json:"inProgress"`
	Completed  []core.Task `json:"completed"`
}

func TaskBoard(tasks []core.Task) Board {
	b := Board{Todo: []core.Task{}, InProgress: []core.Task{}, Completed: []core.Task{}}
	for _, t := range tasks {
		switch t.Status {
		case core.TaskTodo:
			b.Todo = append(b.Todo, t)
		case core.TaskInProgress:
			b.InProgress = append(b.InProgress, t)
		case core.TaskCompleted:
			b.Completed = append(b.Completed, t)
		}
	}
	return b
}

// StatusCounts tallies records by the status key returns.
func StatusCounts[T any](list []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, rec := range list {
		out[key(rec)]++
	}
	return out
}
