package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"HotelPos/app/errs"
	"HotelPos/app/models"
)

// InvoiceService converts temporal tickets into immutable simple invoices
// and drives the invoice side of the ticket lifecycle.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// lifecycleState loads the ticket's invoice (when one is stamped) and
// derives the slot's lifecycle state from both rows. Every gate below
// goes through the state, not through field checks.
func lifecycleState(tx *gorm.DB, ticket *models.TemporalTicket) (*models.SimpleInvoice, models.TicketState, error) {
	if ticket.SimpleInvoiceID == nil {
		return nil, models.StateOf(ticket, nil), nil
	}
	var invoice models.SimpleInvoice
	if err := tx.First(&invoice, *ticket.SimpleInvoiceID).Error; err != nil {
		return nil, nil, err
	}
	return &invoice, models.StateOf(ticket, &invoice), nil
}

// CreateFromTemporalTicket freezes a ticket into a new simple invoice.
// Invoice insert, line copies and the ticket stamp commit as one
// transaction; a failure anywhere leaves no invoice and no stamp behind.
// The frozen line price folds the quantity in, since sold lines carry
// a single amount.
func (s *InvoiceService) CreateFromTemporalTicket(ticketID uint) (*models.SimpleInvoice, error) {
	var invoiceID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.TemporalTicket
		if err := tx.Preload("Items").First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		if !models.StateOf(&ticket, nil).CanEdit() {
			return errs.ErrTicketLocked
		}

		invoice := models.SimpleInvoice{
			PaymentMethodID: models.PaymentMethodCash,
			Paid:            false,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for _, item := range ticket.Items {
			line := models.InvoiceLineItem{
				SimpleInvoiceID:   invoice.ID,
				OriginalProductID: item.OriginalProductID,
				Price:             item.Price * float64(item.Quantity),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&ticket).Updates(map[string]interface{}{
			"simple_invoice_id": invoice.ID,
			"ticket_status":     models.TicketStatusPrinted,
		}).Error; err != nil {
			return err
		}
		invoiceID = invoice.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrTicketLocked) {
			return nil, err
		}
		return nil, errs.Storage("create invoice from ticket", err)
	}
	return s.GetSingle(invoiceID)
}

// GetSingle rehydrates one invoice with its lines, for re-printing an
// already locked ticket.
func (s *InvoiceService) GetSingle(invoiceID uint) (*models.SimpleInvoice, error) {
	var invoice models.SimpleInvoice
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sold_products.id ASC")
	}).Preload("PaymentMethod").First(&invoice, invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage("get invoice", err)
	}
	return &invoice, nil
}

// GetAll returns all non-deleted invoices, newest first.
func (s *InvoiceService) GetAll() ([]models.SimpleInvoice, error) {
	var invoices []models.SimpleInvoice
	err := s.db.Preload("Items").Preload("PaymentMethod").
		Order("id DESC").Find(&invoices).Error
	if err != nil {
		return nil, errs.Storage("list invoices", err)
	}
	return invoices, nil
}

// InvoiceForTicket returns the ticket's invoice, creating it when the
// ticket is still open. This is the idempotent path the print worker
// uses: printing twice never creates a second invoice.
func (s *InvoiceService) InvoiceForTicket(ticketID uint) (*models.SimpleInvoice, error) {
	var ticket models.TemporalTicket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage("get ticket", err)
	}
	if ticket.SimpleInvoiceID != nil {
		return s.GetSingle(*ticket.SimpleInvoiceID)
	}
	return s.CreateFromTemporalTicket(ticketID)
}

// Unlock deletes a locked ticket's invoice and reopens the ticket for
// editing. Invoice delete, line delete and the stamp clear commit as one
// transaction. A paid invoice cannot be unlocked.
func (s *InvoiceService) Unlock(ticketID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.TemporalTicket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		invoice, state, err := lifecycleState(tx, &ticket)
		if err != nil {
			return err
		}
		switch state.(type) {
		case models.StatePaid:
			return errs.ErrInvoicePaid
		case models.StateLocked:
		default:
			return fmt.Errorf("ticket %d has no invoice to unlock", ticketID)
		}
		if err := tx.Where("simple_invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(invoice).Error; err != nil {
			return err
		}
		return tx.Model(&ticket).Updates(map[string]interface{}{
			"simple_invoice_id": nil,
			"ticket_status":     models.TicketStatusPending,
		}).Error
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvoicePaid) {
			return err
		}
		return errs.Storage("unlock ticket", err)
	}
	return nil
}

// MarkAsPaid settles a locked ticket's invoice: records the payment
// method, flips the paid flag and retires the ticket row so the table
// slot reads as free. Paying twice is rejected.
func (s *InvoiceService) MarkAsPaid(ticketID uint, paymentMethodID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.TemporalTicket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		invoice, state, err := lifecycleState(tx, &ticket)
		if err != nil {
			return err
		}
		switch state.(type) {
		case models.StatePaid:
			return errs.ErrInvoicePaid
		case models.StateLocked:
		default:
			return fmt.Errorf("ticket %d has no invoice to pay", ticketID)
		}
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"paid":              true,
			"payment_method_id": paymentMethodID,
		}).Error; err != nil {
			return err
		}
		return tx.Delete(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvoicePaid) {
			return err
		}
		return errs.Storage("mark invoice paid", err)
	}
	return nil
}
