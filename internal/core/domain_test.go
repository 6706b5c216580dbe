package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2023-06-15", true},
		{" 2023-06-15 ", true},
		{"2023-13-01", false},
		{"15/06/2023", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateAddDays(t *testing.T) {
	if got := NewDate(2023, 6, 5).AddDays(30).String(); got != "2023-07-05" {
		t.Fatalf("AddDays = %s, want 2023-07-05", got)
	}
}

func TestLastInvoiceDateJSON(t *testing.T) {
	var c Client
	if err := json.Unmarshal([]byte(`{"name":"Bruce","lastInvoice":"Never"}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !c.LastInvoice.IsZero() {
		t.Fatalf("Never should decode to the zero date")
	}
	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"lastInvoice":"Never"`) {
		t.Fatalf("expected Never sentinel in %s", b)
	}

	c.LastInvoice = LastInvoiceDate{Date: NewDate(2023, 6, 15)}
	b, _ = json.Marshal(c)
	if !strings.Contains(string(b), `"lastInvoice":"2023-06-15"`) {
		t.Fatalf("expected ISO date in %s", b)
	}
}

func TestLineItems(t *testing.T) {
	items := LineItems([]ItemDraft{
		{Description: "Consulting", Quantity: 15, Rate: NewMoney(230.05)},
		{Description: "Travel", Quantity: 1, Rate: NewMoney(100)},
	})
	if items[0].Amount.Cents != 345075 {
		t.Fatalf("item amount = %d, want 345075", items[0].Amount.Cents)
	}
	if got := SumItems(items).String(); got != "3550.75" {
		t.Fatalf("sum = %s, want 3550.75", got)
	}
}

func TestStatusValid(t *testing.T) {
	if !InvoiceOverdue.Valid() || InvoiceStatus("late").Valid() {
		t.Fatalf("invoice status validity wrong")
	}
	if !QuotationExpired.Valid() || QuotationStatus("").Valid() {
		t.Fatalf("quotation status validity wrong")
	}
	if !TaskInProgress.Valid() || TaskStatus("done").Valid() {
		t.Fatalf("task status validity wrong")
	}
	if !PriorityHigh.Valid() || Priority("urgent").Valid() {
		t.Fatalf("priority validity wrong")
	}
}

func TestSyncCompletion(t *testing.T) {
	task := Task{Status: TaskCompleted}.SyncCompletion()
	if !task.Completed {
		t.Fatalf("completed status should set the flag")
	}
	task.Status = TaskTodo
	if task.SyncCompletion().Completed {
		t.Fatalf("todo status should clear the flag")
	}
}
