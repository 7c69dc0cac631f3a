package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced product, ticket or invoice does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrTicketLocked means the ticket already has an invoice and cannot be edited.
	ErrTicketLocked = errors.New("ticket is locked by an invoice")
	// ErrInvoicePaid means the invoice is paid and the operation is no longer allowed.
	ErrInvoicePaid = errors.New("invoice is already paid")
)

// StorageError wraps a failing database statement. The enclosing
// transaction has been rolled back when one of these surfaces.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError, passing nil through.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// RenderError means font loading or page construction failed. It is
// fatal for the print attempt only; persisted state is unaffected.
type RenderError struct {
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("render: %s", e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PrinterError means the physical sink rejected a rendered document.
// The ticket stays Locked so the operator can retry without recomputing.
type PrinterError struct {
	JobLabel string
	Err      error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer: job %s: %v", e.JobLabel, e.Err)
}

func (e *PrinterError) Unwrap() error { return e.Err }
