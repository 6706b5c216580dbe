package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"bizdash/internal/core"
)

// document is the common shape of an invoice or quotation PDF.
type document struct {
	title    string
	id       string
	client   string
	email    string
	dates    [][2]string
	items    []core.LineItem
	total    core.Money
	sections [][2]string
}

// InvoicePDF renders an invoice with the company profile as letterhead.
func InvoicePDF(inv core.Invoice, company core.Settings) ([]byte, error) {
	return render(document{
		title:  "INVOICE",
		id:     inv.ID,
		client: inv.Client,
		email:  inv.Email,
		dates: [][2]string{
			{"Date", inv.Date.String()},
			{"Due date", inv.DueDate.String()},
			{"Status", string(inv.Status)},
		},
		items:    inv.Items,
		total:    inv.Amount,
		sections: [][2]string{{"Notes", inv.Notes}, {"Terms", inv.Terms}},
	}, company)
}

// QuotationPDF renders a quotation. A quotation without items prints its
// description as a single line for the full amount.
func QuotationPDF(q core.Quotation, company core.Settings) ([]byte, error) {
	items := q.Items
	if len(items) == 0 {
		items = []core.LineItem{core.NewLineItem(q.Description, 1, q.Amount)}
	}
	return render(document{
		title:  "QUOTATION",
		id:     q.ID,
		client: q.Client,
		dates: [][2]string{
			{"Date", q.Date.String()},
			{"Valid until", q.ExpiryDate.String()},
			{"Status", string(q.Status)},
		},
		items:    items,
		total:    q.Amount,
		sections: [][2]string{{"Description", q.Description}},
	}, company)
}

func render(doc document, company core.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.title+" "+doc.id, false)
	pdf.SetCreator(company.CompanyName, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	currency := company.Currency
	if currency == "" {
		currency = "USD"
	}

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(company.CompanyName))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4.5, tr(company.Address), "", "L", false)
	if company.Email != "" || company.Phone != "" {
		pdf.Cell(0, 5, tr(company.Email+"  "+company.Phone))
		pdf.Ln(5)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, doc.title+" "+doc.id)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr("Bill to: "+doc.client))
	pdf.Ln(6)
	if doc.email != "" {
		pdf.Cell(0, 6, tr(doc.email))
		pdf.Ln(6)
	}
	for _, kv := range doc.dates {
		pdf.Cell(30, 6, kv[0]+":")
		pdf.Cell(0, 6, kv[1])
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(100, 7, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Rate", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range doc.items {
		pdf.CellFormat(100, 6, tr(truncate(it.Description, 60)), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, it.Rate.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, it.Amount.String(), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(155, 8, "Total ("+currency+")", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, doc.total.String(), "T", 1, "R", false, 0, "")

	for _, kv := range doc.sections {
		if kv[1] == "" {
			continue
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 6, kv[0])
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(kv[1]), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s pdf: %w", doc.id, err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
