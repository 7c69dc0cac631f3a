package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"HotelPos/app/errs"
	"HotelPos/app/models"
)

// Catalog resolves product IDs against the product catalog.
type Catalog interface {
	GetProduct(id uint) (*models.Product, error)
}

// TicketService manages temporal tickets, the editable in-progress orders
// bound to a table at a location.
type TicketService struct {
	db      *gorm.DB
	catalog Catalog
}

func NewTicketService(db *gorm.DB, catalog Catalog) *TicketService {
	return &TicketService{db: db, catalog: catalog}
}

// GetAll loads every active ticket with its line items in a single joined
// query. Tickets come back in creation order, line items in insertion order.
func (s *TicketService) GetAll() ([]models.TemporalTicket, error) {
	rows, err := s.db.Raw(`
		SELECT t.id, t.table_id, t.ticket_location, t.ticket_status, t.simple_invoice_id,
		       p.id, p.original_product_id, p.name, p.quantity, p.price
		FROM temporal_tickets t
		LEFT JOIN temporal_products p ON p.temporal_ticket_id = t.id
		WHERE t.deleted_at IS NULL
		ORDER BY t.id ASC, p.id ASC`).Rows()
	if err != nil {
		return nil, errs.Storage("list tickets", err)
	}
	defer rows.Close()

	byID := make(map[uint]*models.TemporalTicket)
	var order []uint
	for rows.Next() {
		var (
			ticketID   uint
			tableID    int
			location   int
			status     int
			invoiceID  sql.NullInt64
			itemID     sql.NullInt64
			productID  sql.NullInt64
			name       sql.NullString
			quantity   sql.NullInt64
			price      sql.NullFloat64
		)
		if err := rows.Scan(&ticketID, &tableID, &location, &status, &invoiceID,
			&itemID, &productID, &name, &quantity, &price); err != nil {
			return nil, errs.Storage("scan ticket row", err)
		}
		ticket, ok := byID[ticketID]
		if !ok {
			ticket = &models.TemporalTicket{
				ID:             ticketID,
				TableID:        tableID,
				TicketLocation: models.TicketLocation(location),
				TicketStatus:   models.TicketStatus(status),
			}
			if invoiceID.Valid {
				id := uint(invoiceID.Int64)
				ticket.SimpleInvoiceID = &id
			}
			byID[ticketID] = ticket
			order = append(order, ticketID)
		}
		if itemID.Valid {
			ticket.Items = append(ticket.Items, models.TemporalLineItem{
				ID:                uint(itemID.Int64),
				TemporalTicketID:  ticketID,
				OriginalProductID: uint(productID.Int64),
				Name:              name.String,
				Quantity:          int(quantity.Int64),
				Price:             price.Float64,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate ticket rows", err)
	}

	tickets := make([]models.TemporalTicket, 0, len(order))
	for _, id := range order {
		ticket := byID[id]
		sort.Slice(ticket.Items, func(i, j int) bool {
			return ticket.Items[i].ID < ticket.Items[j].ID
		})
		tickets = append(tickets, *ticket)
	}
	return tickets, nil
}

// AddProduct appends one unit of a product to the open ticket at the given
// table and location, creating the ticket if none is open there. The ticket
// lookup, creation and line insert happen in one transaction, so the slot
// never ends up with a ticket and no line.
func (s *TicketService) AddProduct(tableID int, location models.TicketLocation, productID uint) error {
	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return fmt.Errorf("add product %d: %w", productID, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.TemporalTicket
		err := tx.Where("table_id = ? AND ticket_location = ?", tableID, location).
			First(&ticket).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ticket = models.TemporalTicket{
				TableID:        tableID,
				TicketLocation: location,
				TicketStatus:   models.TicketStatusPending,
			}
			if err := tx.Create(&ticket).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if !models.StateOf(&ticket, nil).CanEdit() {
				return errs.ErrTicketLocked
			}
		}

		line := models.TemporalLineItem{
			TemporalTicketID:  ticket.ID,
			OriginalProductID: product.ID,
			Name:              product.Name,
			Quantity:          1,
			Price:             product.PriceFor(location),
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		if errors.Is(err, errs.ErrTicketLocked) {
			return errs.ErrTicketLocked
		}
		return errs.Storage("add product to ticket", err)
	}
	return nil
}

// EditLineItem persists a line's quantity and price after keypad edits.
// Negative values are rejected and lines on a locked ticket cannot change.
func (s *TicketService) EditLineItem(itemID uint, quantity int, price float64) error {
	if quantity < 0 || price < 0 {
		return fmt.Errorf("edit line item %d: negative values are not allowed", itemID)
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var line models.TemporalLineItem
		if err := tx.First(&line, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		var ticket models.TemporalTicket
		if err := tx.First(&ticket, line.TemporalTicketID).Error; err != nil {
			return err
		}
		if !models.StateOf(&ticket, nil).CanEdit() {
			return errs.ErrTicketLocked
		}
		return tx.Model(&line).Updates(map[string]interface{}{
			"quantity": quantity,
			"price":    price,
		}).Error
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrTicketLocked) {
			return err
		}
		return errs.Storage("edit line item", err)
	}
	return nil
}

// DeleteLineItem removes a line from its ticket. Deleting the last line
// removes the ticket as well, freeing the table slot.
func (s *TicketService) DeleteLineItem(itemID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var line models.TemporalLineItem
		if err := tx.First(&line, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}
		var ticket models.TemporalTicket
		if err := tx.First(&ticket, line.TemporalTicketID).Error; err != nil {
			return err
		}
		if !models.StateOf(&ticket, nil).CanEdit() {
			return errs.ErrTicketLocked
		}
		if err := tx.Delete(&line).Error; err != nil {
			return err
		}
		var remaining int64
		if err := tx.Model(&models.TemporalLineItem{}).
			Where("temporal_ticket_id = ?", ticket.ID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Delete(&ticket).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrTicketLocked) {
			return err
		}
		return errs.Storage("delete line item", err)
	}
	return nil
}
