package models

// TicketState is the lifecycle of a (table, location) slot expressed as
// a sum type: Empty, Open, Locked or Paid. Locked and Paid carry the
// invoice id, so a paid slot without an invoice cannot be represented.
type TicketState interface {
	isTicketState()
	// CanEdit reports whether ordinary line edits are allowed.
	CanEdit() bool
}

// StateEmpty means no ticket exists for the slot; the table reads free.
type StateEmpty struct{}

// StateOpen means a ticket with at least one line exists and is editable.
type StateOpen struct {
	TicketID uint
}

// StateLocked means an invoice exists for the ticket; edits are refused
// until the invoice is deleted via unlock.
type StateLocked struct {
	TicketID  uint
	InvoiceID uint
}

// StatePaid means the invoice was paid; the slot is terminal and the
// table reads free again.
type StatePaid struct {
	InvoiceID uint
}

func (StateEmpty) isTicketState()  {}
func (StateOpen) isTicketState()   {}
func (StateLocked) isTicketState() {}
func (StatePaid) isTicketState()   {}

func (StateEmpty) CanEdit() bool  { return true }
func (StateOpen) CanEdit() bool   { return true }
func (StateLocked) CanEdit() bool { return false }
func (StatePaid) CanEdit() bool   { return false }

// StateOf derives the lifecycle state from a ticket row and, when the
// ticket references one, its invoice. A nil ticket is an empty slot.
func StateOf(ticket *TemporalTicket, invoice *SimpleInvoice) TicketState {
	if ticket == nil {
		return StateEmpty{}
	}
	if ticket.SimpleInvoiceID == nil {
		return StateOpen{TicketID: ticket.ID}
	}
	if invoice != nil && invoice.Paid {
		return StatePaid{InvoiceID: invoice.ID}
	}
	return StateLocked{TicketID: ticket.ID, InvoiceID: *ticket.SimpleInvoiceID}
}
