// Package fixtures provides the records a fresh dashboard starts with.
package fixtures

import "bizdash/internal/core"

// Dataset is one seed for every record kind. Projects carry metadata only;
// their tasks live in Tasks and reference the project by id.
type Dataset struct {
	Invoices   []core.Invoice
	Quotations []core.Quotation
	Expenses   []core.Expense
	Projects   []core.Project
	Tasks      []core.Task
	Clients    []core.Client
	Settings   core.Settings
}

// Empty returns a dataset with no records and the default company profile.
func Empty() Dataset {
	return Dataset{Settings: DefaultSettings()}
}

// DefaultSettings is the company profile shown before anything is edited.
func DefaultSettings() core.Settings {
	return core.Settings{
		CompanyName:  "Acme Corporation",
		Email:        "john@example.com",
		Phone:        "+1 (555) 123-4567",
		Address:      "123 Business St, Suite 100\nNew York, NY 10001",
		Currency:     "USD",
		DefaultTerms: "Payment due within 30 days.",
		DefaultNotes: "Thank you for your business!",
	}
}

// Demo returns the sample records of the dashboard. Each call builds fresh
// slices so callers may mutate them.
func Demo() Dataset {
	return Dataset{
		Invoices:   demoInvoices(),
		Quotations: demoQuotations(),
		Expenses:   demoExpenses(),
		Projects:   demoProjects(),
		Tasks:      demoTasks(),
		Clients:    demoClients(),
		Settings:   DefaultSettings(),
	}
}

func item(desc string, qty int, rate float64) []core.LineItem {
	return []core.LineItem{core.NewLineItem(desc, qty, core.NewMoney(rate))}
}

func demoInvoices() []core.Invoice {
	const terms = "Payment due within 30 days."
	return []core.Invoice{
		{
			ID: "INV-001", Client: "Acme Corp", Amount: core.NewMoney(1250.00),
			Date: core.MustParseDate("2023-05-15"), DueDate: core.MustParseDate("2023-06-15"),
			Status: core.InvoicePaid, Email: "billing@acme.com",
			Items: item("Website Design", 1, 1250),
			Notes: "Thank you for your business!", Terms: terms,
		},
		{
			ID: "INV-002", Client: "Globex Inc", Amount: core.NewMoney(3450.75),
			Date: core.MustParseDate("2023-05-20"), DueDate: core.MustParseDate("2023-06-20"),
			Status: core.InvoicePending, Email: "accounts@globex.com",
			Items: item("Consulting Services", 15, 230.05),
			Notes: "Please process this invoice at your earliest convenience.", Terms: terms,
		},
		{
			ID: "INV-003", Client: "Stark Industries", Amount: core.NewMoney(5000.00),
			Date: core.MustParseDate("2023-05-01"), DueDate: core.MustParseDate("2023-06-01"),
			Status: core.InvoiceOverdue, Email: "tony@stark.com",
			Items: item("Product Development", 1, 5000),
			Notes: "This invoice is now overdue. Please remit payment immediately.",
			Terms: "Payment due within 30 days. Late fees apply after due date.",
		},
		{
			ID: "INV-004", Client: "Wayne Enterprises", Amount: core.NewMoney(2100.50),
			Date: core.MustParseDate("2023-05-25"), DueDate: core.MustParseDate("2023-06-25"),
			Status: core.InvoiceDraft, Email: "bruce@wayne.com",
			Items: item("Security Consultation", 1, 2100.50),
			Notes: "Draft invoice - not yet sent.", Terms: terms,
		},
		{
			ID: "INV-005", Client: "Pied Piper", Amount: core.NewMoney(1800.25),
			Date: core.MustParseDate("2023-05-10"), DueDate: core.MustParseDate("2023-06-10"),
			Status: core.InvoicePending, Email: "richard@piedpiper.com",
			Items: item("Algorithm Optimization", 1, 1800.25),
			Notes: "Thank you for your business!", Terms: terms,
		},
	}
}

func demoQuotations() []core.Quotation {
	q := func(id, client string, amount float64, date, expiry string, status core.QuotationStatus, desc string) core.Quotation {
		return core.Quotation{
			ID: id, Client: client, Amount: core.NewMoney(amount),
			Date: core.MustParseDate(date), ExpiryDate: core.MustParseDate(expiry),
			Status: status, Description: desc,
		}
	}
	return []core.Quotation{
		q("QT-001", "Acme Corp", 5250.00, "2023-06-01", "2023-07-01", core.QuotationAccepted, "Website redesign and development"),
		q("QT-002", "Globex Inc", 3750.75, "2023-06-05", "2023-07-05", core.QuotationSent, "Marketing campaign strategy"),
		q("QT-003", "Stark Industries", 12000.00, "2023-06-10", "2023-07-10", core.QuotationDraft, "Custom software development"),
		q("QT-004", "Wayne Enterprises", 8500.50, "2023-05-15", "2023-06-15", core.QuotationExpired, "IT infrastructure upgrade"),
		q("QT-005", "Pied Piper", 4200.25, "2023-06-12", "2023-07-12", core.QuotationDeclined, "Data compression solution"),
	}
}

func demoExpenses() []core.Expense {
	e := func(id, date, category string, amount float64, desc string, status core.ExpenseStatus) core.Expense {
		return core.Expense{
			ID: id, Date: core.MustParseDate(date), Category: category,
			Amount: core.NewMoney(amount), Description: desc, Status: status,
			ReceiptURL: "https://example.com/receipt" + id + ".jpg",
		}
	}
	return []core.Expense{
		e("1", "2023-06-15", "Office Supplies", 125.50, "Printer ink and paper", core.ExpenseApproved),
		e("2", "2023-06-12", "Travel", 350.75, "Flight to client meeting", core.ExpenseApproved),
		e("3", "2023-06-10", "Meals & Entertainment", 85.20, "Client lunch meeting", core.ExpensePending),
		e("4", "2023-06-08", "Software", 49.99, "Monthly subscription", core.ExpenseApproved),
		e("5", "2023-06-05", "Equipment", 899.99, "New laptop", core.ExpenseRejected),
	}
}

func demoProjects() []core.Project {
	return []core.Project{
		{ID: "1", Name: "Website Redesign", Description: "Complete overhaul of client website"},
		{ID: "2", Name: "Marketing Campaign", Description: "Q3 digital marketing campaign"},
	}
}

func demoTasks() []core.Task {
	t := func(id, title, desc, project string, status core.TaskStatus, prio core.Priority, due string) core.Task {
		return core.Task{
			ID: id, Title: title, Description: desc, Project: project,
			Status: status, Priority: prio, DueDate: core.MustParseDate(due),
		}.SyncCompletion()
	}
	return []core.Task{
		t("101", "Design Homepage", "Create wireframes and mockups for the homepage", "1", core.TaskCompleted, core.PriorityHigh, "2023-06-15"),
		t("102", "Develop Frontend", "Implement the frontend based on approved designs", "1", core.TaskInProgress, core.PriorityMedium, "2023-06-30"),
		t("201", "Content Creation", "Create blog posts and social media content", "2", core.TaskTodo, core.PriorityMedium, "2023-07-10"),
		t("202", "Ad Setup", "Configure Google and Facebook ad campaigns", "2", core.TaskTodo, core.PriorityHigh, "2023-07-05"),
	}
}

func demoClients() []core.Client {
	c := func(id, name, email, phone, company string, status core.ClientStatus, total float64, last string) core.Client {
		cl := core.Client{
			ID: id, Name: name, Email: email, Phone: phone, Company: company,
			Status: status, TotalInvoiced: core.NewMoney(total),
		}
		if last != core.NeverLabel {
			cl.LastInvoice = core.LastInvoiceDate{Date: core.MustParseDate(last)}
		}
		return cl
	}
	return []core.Client{
		c("1", "John Doe", "john@acme.com", "+1 (555) 123-4567", "Acme Corp", core.ClientActive, 15420.50, "2023-06-15"),
		c("2", "Jane Smith", "jane@globex.com", "+1 (555) 987-6543", "Globex Inc", core.ClientActive, 28750.00, "2023-06-20"),
		c("3", "Tony Stark", "tony@stark.com", "+1 (555) 555-0001", "Stark Industries", core.ClientActive, 45000.00, "2023-06-01"),
		c("4", "Bruce Wayne", "bruce@wayne.com", "+1 (555) 555-0002", "Wayne Enterprises", core.ClientPending, 0, core.NeverLabel),
		c("5", "Richard Hendricks", "richard@piedpiper.com", "+1 (555) 555-0003", "Pied Piper", core.ClientInactive, 12500.00, "2023-05-10"),
	}
}
