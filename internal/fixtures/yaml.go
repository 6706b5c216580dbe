package fixtures

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"bizdash/internal/core"
)

// File mirrors a YAML seed file. Amounts and dates are written as strings so
// the file reads like the dashboard shows them: "3450.75", "2023-05-20".
type File struct {
	Invoices []struct {
		ID      string     `yaml:"id"`
		Client  string     `yaml:"client"`
		Email   string     `yaml:"email"`
		Amount  string     `yaml:"amount"`
		Date    string     `yaml:"date"`
		DueDate string     `yaml:"due_date"`
		Status  string     `yaml:"status"`
		Items   []fileItem `yaml:"items"`
		Notes   string     `yaml:"notes"`
		Terms   string     `yaml:"terms"`
	} `yaml:"invoices"`
	Quotations []struct {
		ID          string     `yaml:"id"`
		Client      string     `yaml:"client"`
		Amount      string     `yaml:"amount"`
		Date        string     `yaml:"date"`
		ExpiryDate  string     `yaml:"expiry_date"`
		Status      string     `yaml:"status"`
		Description string     `yaml:"description"`
		Items       []fileItem `yaml:"items"`
	} `yaml:"quotations"`
	Expenses []struct {
		ID          string `yaml:"id"`
		Date        string `yaml:"date"`
		Category    string `yaml:"category"`
		Amount      string `yaml:"amount"`
		Description string `yaml:"description"`
		Status      string `yaml:"status"`
		ReceiptURL  string `yaml:"receipt_url"`
	} `yaml:"expenses"`
	Projects []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Tasks       []struct {
			ID          string `yaml:"id"`
			Title       string `yaml:"title"`
			Description string `yaml:"description"`
			Status      string `yaml:"status"`
			Priority    string `yaml:"priority"`
			DueDate     string `yaml:"due_date"`
		} `yaml:"tasks"`
	} `yaml:"projects"`
	Clients []struct {
		ID            string `yaml:"id"`
		Name          string `yaml:"name"`
		Email         string `yaml:"email"`
		Phone         string `yaml:"phone"`
		Company       string `yaml:"company"`
		Status        string `yaml:"status"`
		TotalInvoiced string `yaml:"total_invoiced"`
		LastInvoice   string `yaml:"last_invoice"`
	} `yaml:"clients"`
	Settings *fileSettings `yaml:"settings"`
}

type fileSettings struct {
	CompanyName  string `yaml:"company_name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	Address      string `yaml:"address"`
	Currency     string `yaml:"currency"`
	DefaultTerms string `yaml:"default_terms"`
	DefaultNotes string `yaml:"default_notes"`
}

type fileItem struct {
	Description string `yaml:"description"`
	Quantity    int    `yaml:"quantity"`
	Rate        string `yaml:"rate"`
}

// LoadFile reads a YAML seed from path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML seed. Unknown keys are rejected so typos surface early.
func Load(r io.Reader) (Dataset, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return Dataset{}, fmt.Errorf("decode seed file: %w", err)
	}
	return file.Dataset()
}

// seedParser remembers the first conversion error so Dataset reads straight through.
type seedParser struct {
	err error
}

func (p *seedParser) money(where, s string) core.Money {
	if s == "" || p.err != nil {
		return core.Money{}
	}
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		p.err = fmt.Errorf("%s: amount %q: %w", where, s, err)
	}
	return core.Money{Cents: cents}
}

func (p *seedParser) date(where, s string) core.Date {
	if s == "" || s == core.NeverLabel || p.err != nil {
		return core.Date{}
	}
	d, err := core.ParseDate(s)
	if err != nil {
		p.err = fmt.Errorf("%s: date %q: %w", where, s, err)
	}
	return d
}

func (p *seedParser) status(where string, s interface{ Valid() bool }) {
	if p.err == nil && !s.Valid() {
		p.err = fmt.Errorf("%s: %w: %v", where, core.ErrInvalidStatus, s)
	}
}

func (p *seedParser) items(where string, in []fileItem) []core.LineItem {
	if len(in) == 0 {
		return nil
	}
	out := make([]core.LineItem, len(in))
	for i, it := range in {
		out[i] = core.NewLineItem(it.Description, it.Quantity, p.money(where, it.Rate))
	}
	return out
}

// Dataset converts the file into records. A missing amount on an invoice or
// quotation with items is taken as the item total.
func (f File) Dataset() (Dataset, error) {
	var p seedParser
	ds := Empty()
	if f.Settings != nil {
		ds.Settings = core.Settings(*f.Settings)
	}

	for _, in := range f.Invoices {
		where := "invoice " + in.ID
		inv := core.Invoice{
			ID: in.ID, Client: in.Client, Email: in.Email,
			Amount: p.money(where, in.Amount),
			Date:   p.date(where, in.Date), DueDate: p.date(where, in.DueDate),
			Status: core.InvoiceStatus(in.Status),
			Items:  p.items(where, in.Items),
			Notes:  in.Notes, Terms: in.Terms,
		}
		if in.Amount == "" {
			inv.Amount = core.SumItems(inv.Items)
		}
		p.status(where, inv.Status)
		ds.Invoices = append(ds.Invoices, inv)
	}

	for _, in := range f.Quotations {
		where := "quotation " + in.ID
		q := core.Quotation{
			ID: in.ID, Client: in.Client, Description: in.Description,
			Amount: p.money(where, in.Amount),
			Date:   p.date(where, in.Date), ExpiryDate: p.date(where, in.ExpiryDate),
			Status: core.QuotationStatus(in.Status),
			Items:  p.items(where, in.Items),
		}
		if in.Amount == "" {
			q.Amount = core.SumItems(q.Items)
		}
		p.status(where, q.Status)
		ds.Quotations = append(ds.Quotations, q)
	}

	for _, in := range f.Expenses {
		where := "expense " + in.ID
		e := core.Expense{
			ID: in.ID, Date: p.date(where, in.Date), Category: in.Category,
			Amount: p.money(where, in.Amount), Description: in.Description,
			Status: core.ExpenseStatus(in.Status), ReceiptURL: in.ReceiptURL,
		}
		p.status(where, e.Status)
		ds.Expenses = append(ds.Expenses, e)
	}

	for _, in := range f.Projects {
		ds.Projects = append(ds.Projects, core.Project{ID: in.ID, Name: in.Name, Description: in.Description})
		for _, tk := range in.Tasks {
			where := "task " + tk.ID
			task := core.Task{
				ID: tk.ID, Title: tk.Title, Description: tk.Description, Project: in.ID,
				Status: core.TaskStatus(tk.Status), Priority: core.Priority(tk.Priority),
				DueDate: p.date(where, tk.DueDate),
			}.SyncCompletion()
			p.status(where, task.Status)
			p.status(where, task.Priority)
			ds.Tasks = append(ds.Tasks, task)
		}
	}

	for _, in := range f.Clients {
		where := "client " + in.ID
		c := core.Client{
			ID: in.ID, Name: in.Name, Email: in.Email, Phone: in.Phone, Company: in.Company,
			Status:        core.ClientStatus(in.Status),
			TotalInvoiced: p.money(where, in.TotalInvoiced),
			LastInvoice:   core.LastInvoiceDate{Date: p.date(where, in.LastInvoice)},
		}
		p.status(where, c.Status)
		ds.Clients = append(ds.Clients, c)
	}

	if p.err != nil {
		return Dataset{}, fmt.Errorf("seed file: %w", p.err)
	}
	return ds, nil
}
