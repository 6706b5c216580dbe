package core

import "time"

// Record statuses. Values match the wire format used by the dashboard.
const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"

	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationDeclined QuotationStatus = "declined"
	QuotationExpired  QuotationStatus = "expired"

	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"

	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPending  ClientStatus = "pending"
)

// ExpenseCategories is the fixed set offered by the expense form. Category is
// still a free-form string on the record; seed data uses names outside this set.
var ExpenseCategories = []string{
	"Office Supplies",
	"Travel",
	"Meals & Entertainment",
	"Software & Subscriptions",
	"Equipment",
	"Other",
}

type (
	InvoiceStatus   string
	QuotationStatus string
	ExpenseStatus   string
	TaskStatus      string
	Priority        string
	ClientStatus    string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// LineItem is one billable row. Amount is fixed at entry time.
	LineItem struct {
		Description string `json:"description"`
		Quantity    int    `json:"quantity"`
		Rate        Money  `json:"rate"`
		Amount      Money  `json:"amount"`
	}

	Invoice struct {
		ID      string        `json:"id"`
		Client  string        `json:"client"`
		Amount  Money         `json:"amount"`
		Date    Date          `json:"date"`
		DueDate Date          `json:"dueDate"`
		Status  InvoiceStatus `json:"status"`
		Email   string        `json:"email,omitempty"`
		Items   []LineItem    `json:"items,omitempty"`
		Notes   string        `json:"notes,omitempty"`
		Terms   string        `json:"terms,omitempty"`
	}

	Quotation struct {
		ID          string          `json:"id"`
		Client      string          `json:"client"`
		Amount      Money           `json:"amount"`
		Date        Date            `json:"date"`
		ExpiryDate  Date            `json:"expiryDate"`
		Status      QuotationStatus `json:"status"`
		Description string          `json:"description"`
		Items       []LineItem      `json:"items,omitempty"`
	}

	Expense struct {
		ID          string        `json:"id"`
		Date        Date          `json:"date"`
		Category    string        `json:"category"`
		Amount      Money         `json:"amount"`
		Description string        `json:"description"`
		Status      ExpenseStatus `json:"status"`
		ReceiptURL  string        `json:"receiptUrl,omitempty"`
	}

	Task struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Project     string     `json:"project"`
		Status      TaskStatus `json:"status"`
		Priority    Priority   `json:"priority"`
		DueDate     Date       `json:"dueDate"`
		Completed   bool       `json:"completed"`
	}

	// Project owns its tasks exclusively. The task list is materialized from
	// the task store on read; the store itself holds only project metadata.
	Project struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Tasks       []Task `json:"tasks"`
	}

	Client struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		Email         string          `json:"email"`
		Phone         string          `json:"phone"`
		Company       string          `json:"company"`
		Status        ClientStatus    `json:"status"`
		TotalInvoiced Money           `json:"totalInvoiced"`
		LastInvoice   LastInvoiceDate `json:"lastInvoice"`
	}

	// Settings is the company profile shown on the settings screen and
	// printed on exported documents.
	Settings struct {
		CompanyName  string `json:"companyName" validate:"required"`
		Email        string `json:"email" validate:"omitempty,email"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		Currency     string `json:"currency" validate:"required,len=3"`
		DefaultTerms string `json:"defaultTerms"`
		DefaultNotes string `json:"defaultNotes"`
	}
)

// RecordID implementations let the generic store index every kind.
func (i Invoice) RecordID() string   { return i.ID }
func (q Quotation) RecordID() string { return q.ID }
func (e Expense) RecordID() string   { return e.ID }
func (t Task) RecordID() string      { return t.ID }
func (p Project) RecordID() string   { return p.ID }
func (c Client) RecordID() string    { return c.ID }

// NewLineItem computes the amount as quantity × rate.
func NewLineItem(description string, quantity int, rate Money) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      rate.Times(quantity),
	}
}

// Priced recomputes every item's amount from quantity and rate. It is applied
// when items are entered, never when a parent record is edited elsewhere.
func Priced(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = NewLineItem(it.Description, it.Quantity, it.Rate)
	}
	return out
}

// SumItems returns the sum of the item amounts.
func SumItems(items []LineItem) Money {
	var total Money
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// SyncCompletion keeps the completed flag in line with the status.
func (t Task) SyncCompletion() Task {
	t.Completed = t.Status == TaskCompleted
	return t
}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

func (s QuotationStatus) Valid() bool {
	switch s {
	case QuotationDraft, QuotationSent, QuotationAccepted, QuotationDeclined, QuotationExpired:
		return true
	}
	return false
}

func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpenseRejected:
		return true
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientPending:
		return true
	}
	return false
}
