package core

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Drafts are the user-entered fields of a record before it is stored. Tags
// name the required fields per kind; the id is always assigned by the store.
type (
	ItemDraft struct {
		Description string `json:"description" validate:"required"`
		Quantity    int    `json:"quantity" validate:"gte=1,lte=1000000"`
		Rate        Money  `json:"rate" validate:"gte=0"`
	}

	// ItemsDraft replaces the line items of an existing record.
	ItemsDraft struct {
		Items []ItemDraft `json:"items" validate:"required,min=1,dive"`
	}

	InvoiceInput struct {
		Client  string      `json:"client" validate:"required"`
		Email   string      `json:"email" validate:"omitempty,email"`
		Date    Date        `json:"date" validate:"required"`
		DueDate Date        `json:"dueDate" validate:"required"`
		Items   []ItemDraft `json:"items" validate:"required,min=1,dive"`
		Notes   string      `json:"notes"`
		Terms   string      `json:"terms"`
	}

	QuotationInput struct {
		Client      string      `json:"client" validate:"required"`
		Date        Date        `json:"date" validate:"required"`
		ExpiryDate  Date        `json:"expiryDate" validate:"required"`
		Description string      `json:"description"`
		Items       []ItemDraft `json:"items" validate:"required,min=1,dive"`
	}

	ExpenseDraft struct {
		Date        Date   `json:"date"`
		Category    string `json:"category" validate:"required"`
		Amount      Money  `json:"amount" validate:"required,gte=0"`
		Description string `json:"description" validate:"required"`
		ReceiptURL  string `json:"receiptUrl" validate:"omitempty,url"`
	}

	ProjectDraft struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	TaskDraft struct {
		Title       string     `json:"title" validate:"required"`
		Description string     `json:"description"`
		Project     string     `json:"project" validate:"required"`
		Status      TaskStatus `json:"status" validate:"omitempty,status"`
		Priority    Priority   `json:"priority" validate:"omitempty,status"`
		DueDate     Date       `json:"dueDate"`
	}

	ClientDraft struct {
		Name    string       `json:"name" validate:"required"`
		Email   string       `json:"email" validate:"required,email"`
		Phone   string       `json:"phone"`
		Company string       `json:"company"`
		Status  ClientStatus `json:"status" validate:"omitempty,status"`
	}
)

type validStatus interface{ Valid() bool }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if m, ok := field.Interface().(Money); ok {
			return m.Cents
		}
		return nil
	}, Money{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})
	v.RegisterStructValidation(itemsFit, InvoiceInput{}, QuotationInput{}, ItemsDraft{})
	// Status and priority enums share one tag; each type knows its own values.
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(validStatus)
		return ok && s.Valid()
	})
	return v
}

// Validate checks a draft and returns a *ValidationError naming the offending
// JSON fields, or nil. Surrounding whitespace does not count as content, so
// callers should pass drafts through Trim first.
func Validate(draft interface{}) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		name := fieldPath(fe.Namespace())
		switch fe.Tag() {
		case "required", "min":
			ve.Missing = append(ve.Missing, name)
		default:
			ve.Invalid = append(ve.Invalid, name)
		}
	}
	return ve
}

// itemsFit flags "items" when the priced total does not fit in int64 cents.
func itemsFit(sl validator.StructLevel) {
	var items []ItemDraft
	switch d := sl.Current().Interface().(type) {
	case InvoiceInput:
		items = d.Items
	case QuotationInput:
		items = d.Items
	case ItemsDraft:
		items = d.Items
	}
	if _, ok := ItemsTotal(items); !ok {
		sl.ReportError(items, "items", "Items", "total", "")
	}
}

// ItemsTotal sums quantity times rate over the items, reporting false on
// overflow.
func ItemsTotal(items []ItemDraft) (Money, bool) {
	var total Money
	for _, it := range items {
		amount, ok := it.Rate.TimesChecked(it.Quantity)
		if !ok {
			return Money{}, false
		}
		if total, ok = total.AddChecked(amount); !ok {
			return Money{}, false
		}
	}
	return total, true
}

// fieldPath drops the struct name from a validator namespace:
// "InvoiceInput.items[0].description" becomes "items[0].description".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func trimItems(items []ItemDraft) []ItemDraft {
	out := make([]ItemDraft, len(items))
	for i, it := range items {
		it.Description = strings.TrimSpace(it.Description)
		out[i] = it
	}
	return out
}

// LineItems prices the drafted items.
func LineItems(items []ItemDraft) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = NewLineItem(it.Description, it.Quantity, it.Rate)
	}
	return out
}

func (d ItemsDraft) Trim() ItemsDraft {
	d.Items = trimItems(d.Items)
	return d
}

func (d InvoiceInput) Trim() InvoiceInput {
	d.Client = strings.TrimSpace(d.Client)
	d.Email = strings.TrimSpace(d.Email)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Terms = strings.TrimSpace(d.Terms)
	d.Items = trimItems(d.Items)
	return d
}

func (d QuotationInput) Trim() QuotationInput {
	d.Client = strings.TrimSpace(d.Client)
	d.Description = strings.TrimSpace(d.Description)
	d.Items = trimItems(d.Items)
	return d
}

func (d ExpenseDraft) Trim() ExpenseDraft {
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)
	d.ReceiptURL = strings.TrimSpace(d.ReceiptURL)
	return d
}

func (d ProjectDraft) Trim() ProjectDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

func (d TaskDraft) Trim() TaskDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Project = strings.TrimSpace(d.Project)
	return d
}

func (d ClientDraft) Trim() ClientDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Company = strings.TrimSpace(d.Company)
	return d
}

func (s Settings) Trim() Settings {
	s.CompanyName = strings.TrimSpace(s.CompanyName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Address = strings.TrimSpace(s.Address)
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	s.DefaultTerms = strings.TrimSpace(s.DefaultTerms)
	s.DefaultNotes = strings.TrimSpace(s.DefaultNotes)
	return s
}
