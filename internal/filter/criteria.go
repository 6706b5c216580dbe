package filter

import "bizdash/internal/core"

// InvoiceCriteria is the invoice list search box plus the status tab.
type InvoiceCriteria struct {
	Query  string
	Status string
}

func (c InvoiceCriteria) Match(inv core.Invoice) bool {
	return Text(c.Query, inv.ID, inv.Client) && Facet(c.Status, string(inv.Status))
}

type QuotationCriteria struct {
	Query  string
	Status string
}

func (c QuotationCriteria) Match(q core.Quotation) bool {
	return Text(c.Query, q.ID, q.Client, q.Description) && Facet(c.Status, string(q.Status))
}

type ExpenseCriteria struct {
	Query    string
	Category string
	Status   string
	Dates    DateRange
}

func (c ExpenseCriteria) Match(e core.Expense) bool {
	return Text(c.Query, e.Description, e.Category) &&
		Facet(c.Category, e.Category) &&
		Facet(c.Status, string(e.Status)) &&
		c.Dates.Contains(e.Date)
}

// TaskCriteria filters by project, status and priority; Due bounds the due date.
type TaskCriteria struct {
	Query    string
	Project  string
	Status   string
	Priority string
	Due      DateRange
}

func (c TaskCriteria) Match(t core.Task) bool {
	if !c.Due.IsOpen() && t.DueDate.IsZero() {
		return false
	}
	return Text(c.Query, t.Title, t.Description) &&
		Facet(c.Project, t.Project) &&
		Facet(c.Status, string(t.Status)) &&
		Facet(c.Priority, string(t.Priority)) &&
		c.Due.Contains(t.DueDate)
}

type ClientCriteria struct {
	Query  string
	Status string
}

func (c ClientCriteria) Match(cl core.Client) bool {
	return Text(c.Query, cl.Name, cl.Email, cl.Company) && Facet(c.Status, string(cl.Status))
}
