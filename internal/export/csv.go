package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"bizdash/internal/core"
)

var expenseHeader = []string{"id", "date", "category", "description", "amount", "status", "receipt_url"}

// ExpensesCSV writes the expenses in list order with a header row.
func ExpensesCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Date.String(),
			e.Category,
			e.Description,
			e.Amount.String(),
			string(e.Status),
			e.ReceiptURL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expense %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
