// Package export turns records into things that leave the dashboard: email
// drafts, mailto links, PDF documents and CSV files.
package export

import (
	"fmt"
	"net/url"
	"strings"

	"bizdash/internal/core"
)

// Message is an email draft shown to the user before sending.
type Message struct {
	To      string `json:"to,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailto renders the message as a mailto: link.
func (m Message) Mailto() string {
	return Mailto(m.To, m.Subject, m.Body)
}

// Mailto builds a mailto: link with percent-encoded subject and body.
func Mailto(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, encodeComponent(subject), encodeComponent(body))
}

// encodeComponent escapes like a URI component: spaces become %20, not '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// displayDate renders a date the way the dashboard shows it, e.g. 6/15/2023.
func displayDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("1/2/2006")
}

func InvoiceSendMessage(inv core.Invoice) Message {
	return Message{
		To:      inv.Email,
		Subject: "Invoice " + inv.ID,
		Body: fmt.Sprintf("Dear %s,\n\nI hope this message finds you well. Please find attached invoice %s for %s USD, due on %s.\n\n"+
			"Please don't hesitate to contact us if you have any questions.\n\nBest regards,\nYour Company",
			inv.Client, inv.ID, inv.Amount, displayDate(inv.DueDate)),
	}
}

func InvoiceReminderMessage(inv core.Invoice) Message {
	return Message{
		To:      inv.Email,
		Subject: "Payment reminder: invoice " + inv.ID,
		Body: fmt.Sprintf("Dear %s,\n\nThis is a friendly reminder that invoice %s for %s USD is due on %s.\n\n"+
			"Please process this payment at your earliest convenience.\n\nBest regards,\nYour Company",
			inv.Client, inv.ID, inv.Amount, displayDate(inv.DueDate)),
	}
}

// QuotationSendMessage drafts the cover note; to is the recipient, if known.
func QuotationSendMessage(q core.Quotation, to string) Message {
	return Message{
		To:      to,
		Subject: "Quotation " + q.ID,
		Body:    fmt.Sprintf("Hi %s,\n\nPlease find attached your quotation %s for %s.\n\nBest regards", q.Client, q.ID, q.Description),
	}
}

func ClientEmail(c core.Client) Message {
	return Message{
		To:      c.Email,
		Subject: "Hello " + c.Name,
		Body:    fmt.Sprintf("Dear %s,\n\nI hope this email finds you well.\n\nBest regards", c.Name),
	}
}
