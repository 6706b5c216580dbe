package core

import "strings"

// Patches carry a partial update. Nil fields are left untouched, so an update
// changes only the fields the caller supplied.
type (
	InvoicePatch struct {
		Client  *string        `json:"client"`
		Email   *string        `json:"email"`
		Amount  *Money         `json:"amount"`
		Date    *Date          `json:"date"`
		DueDate *Date          `json:"dueDate"`
		Status  *InvoiceStatus `json:"status"`
		Notes   *string        `json:"notes"`
		Terms   *string        `json:"terms"`
	}

	QuotationPatch struct {
		Client      *string          `json:"client"`
		Amount      *Money           `json:"amount"`
		Date        *Date            `json:"date"`
		ExpiryDate  *Date            `json:"expiryDate"`
		Status      *QuotationStatus `json:"status"`
		Description *string          `json:"description"`
	}

	ExpensePatch struct {
		Date        *Date          `json:"date"`
		Category    *string        `json:"category"`
		Amount      *Money         `json:"amount"`
		Description *string        `json:"description"`
		Status      *ExpenseStatus `json:"status"`
		ReceiptURL  *string        `json:"receiptUrl"`
	}

	TaskPatch struct {
		Title       *string     `json:"title"`
		Description *string     `json:"description"`
		Status      *TaskStatus `json:"status"`
		Priority    *Priority   `json:"priority"`
		DueDate     *Date       `json:"dueDate"`
	}

	ClientPatch struct {
		Name          *string       `json:"name"`
		Email         *string       `json:"email"`
		Phone         *string       `json:"phone"`
		Company       *string       `json:"company"`
		Status        *ClientStatus `json:"status"`
		TotalInvoiced *Money        `json:"totalInvoiced"`
		LastInvoice   *Date         `json:"lastInvoice"`
	}
)

// patchCheck accumulates invalid fields of a patch.
type patchCheck struct {
	invalid []string
}

func (c *patchCheck) nonBlank(name string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		c.invalid = append(c.invalid, name)
	}
}

func (c *patchCheck) nonNegative(name string, v *Money) {
	if v != nil && v.Cents < 0 {
		c.invalid = append(c.invalid, name)
	}
}

func (c *patchCheck) status(name string, v validStatus) {
	if !v.Valid() {
		c.invalid = append(c.invalid, name)
	}
}

func (c *patchCheck) err() error {
	if len(c.invalid) == 0 {
		return nil
	}
	return &ValidationError{Invalid: c.invalid}
}

func (p InvoicePatch) Validate() error {
	var c patchCheck
	c.nonBlank("client", p.Client)
	c.nonNegative("amount", p.Amount)
	if p.Status != nil {
		c.status("status", *p.Status)
	}
	return c.err()
}

func (p InvoicePatch) Apply(inv Invoice) Invoice {
	setString(&inv.Client, p.Client)
	setString(&inv.Email, p.Email)
	setString(&inv.Notes, p.Notes)
	setString(&inv.Terms, p.Terms)
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.Date != nil {
		inv.Date = *p.Date
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	return inv
}

func (p QuotationPatch) Validate() error {
	var c patchCheck
	c.nonBlank("client", p.Client)
	c.nonNegative("amount", p.Amount)
	if p.Status != nil {
		c.status("status", *p.Status)
	}
	return c.err()
}

func (p QuotationPatch) Apply(q Quotation) Quotation {
	setString(&q.Client, p.Client)
	setString(&q.Description, p.Description)
	if p.Amount != nil {
		q.Amount = *p.Amount
	}
	if p.Date != nil {
		q.Date = *p.Date
	}
	if p.ExpiryDate != nil {
		q.ExpiryDate = *p.ExpiryDate
	}
	if p.Status != nil {
		q.Status = *p.Status
	}
	return q
}

func (p ExpensePatch) Validate() error {
	var c patchCheck
	c.nonBlank("category", p.Category)
	c.nonBlank("description", p.Description)
	if p.Amount != nil && p.Amount.Cents <= 0 {
		c.invalid = append(c.invalid, "amount")
	}
	if p.Status != nil {
		c.status("status", *p.Status)
	}
	return c.err()
}

func (p ExpensePatch) Apply(e Expense) Expense {
	setString(&e.Category, p.Category)
	setString(&e.Description, p.Description)
	setString(&e.ReceiptURL, p.ReceiptURL)
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}

func (p TaskPatch) Validate() error {
	var c patchCheck
	c.nonBlank("title", p.Title)
	if p.Status != nil {
		c.status("status", *p.Status)
	}
	if p.Priority != nil {
		c.status("priority", *p.Priority)
	}
	return c.err()
}

// Apply merges the patch and re-derives the completed flag from the status.
func (p TaskPatch) Apply(t Task) Task {
	setString(&t.Title, p.Title)
	setString(&t.Description, p.Description)
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t.SyncCompletion()
}

func (p ClientPatch) Validate() error {
	var c patchCheck
	c.nonBlank("name", p.Name)
	c.nonBlank("email", p.Email)
	c.nonNegative("totalInvoiced", p.TotalInvoiced)
	if p.Status != nil {
		c.status("status", *p.Status)
	}
	return c.err()
}

func (p ClientPatch) Apply(cl Client) Client {
	setString(&cl.Name, p.Name)
	setString(&cl.Email, p.Email)
	setString(&cl.Phone, p.Phone)
	setString(&cl.Company, p.Company)
	if p.Status != nil {
		cl.Status = *p.Status
	}
	if p.TotalInvoiced != nil {
		cl.TotalInvoiced = *p.TotalInvoiced
	}
	if p.LastInvoice != nil {
		cl.LastInvoice = LastInvoiceDate{Date: *p.LastInvoice}
	}
	return cl
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
