// Package lifecycle holds the status transitions triggered by user actions.
//
// Only explicit actions move a record: nothing here derives overdue, expired
// or in-progress from dates. Manual edits bypass these machines entirely.
package lifecycle

import (
	"fmt"

	"github.com/qmuntal/stateless"

	"bizdash/internal/core"
)

const (
	TriggerSend   = "send"
	TriggerToggle = "toggle"
)

// SendInvoice moves a draft to pending. Any other status is kept as is.
func SendInvoice(current core.InvoiceStatus) (core.InvoiceStatus, error) {
	machine := stateless.NewStateMachine(current)

	machine.Configure(core.InvoiceDraft).
		Permit(TriggerSend, core.InvoicePending)
	for _, s := range []core.InvoiceStatus{core.InvoicePending, core.InvoicePaid, core.InvoiceOverdue} {
		machine.Configure(s).Ignore(TriggerSend)
	}

	if err := fire(machine, TriggerSend, current); err != nil {
		return current, err
	}
	return machine.MustState().(core.InvoiceStatus), nil
}

// SendQuotation marks a quotation as sent from any status.
func SendQuotation(current core.QuotationStatus) (core.QuotationStatus, error) {
	machine := stateless.NewStateMachine(current)

	for _, s := range []core.QuotationStatus{core.QuotationDraft, core.QuotationAccepted, core.QuotationDeclined, core.QuotationExpired} {
		machine.Configure(s).Permit(TriggerSend, core.QuotationSent)
	}
	machine.Configure(core.QuotationSent).Ignore(TriggerSend)

	if err := fire(machine, TriggerSend, current); err != nil {
		return current, err
	}
	return machine.MustState().(core.QuotationStatus), nil
}

// ToggleTask flips completion: completed goes back to todo, anything else
// becomes completed.
func ToggleTask(current core.TaskStatus) (core.TaskStatus, error) {
	machine := stateless.NewStateMachine(current)

	machine.Configure(core.TaskCompleted).
		Permit(TriggerToggle, core.TaskTodo)
	machine.Configure(core.TaskTodo).
		Permit(TriggerToggle, core.TaskCompleted)
	machine.Configure(core.TaskInProgress).
		Permit(TriggerToggle, core.TaskCompleted)

	if err := fire(machine, TriggerToggle, current); err != nil {
		return current, err
	}
	return machine.MustState().(core.TaskStatus), nil
}

func fire(machine *stateless.StateMachine, trigger string, current interface{ Valid() bool }) error {
	if !current.Valid() {
		return fmt.Errorf("%s from %v: %w", trigger, current, core.ErrInvalidStatus)
	}
	if err := machine.Fire(trigger); err != nil {
		return fmt.Errorf("%s from %v: %w", trigger, current, err)
	}
	return nil
}
