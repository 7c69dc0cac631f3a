package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment method ids seeded by the database package.
const (
	PaymentMethodCash     uint = 1 // Efectivo
	PaymentMethodCard     uint = 2 // Tarjeta
	PaymentMethodRoomBill uint = 3 // Adeudo, charged to a reservation
)

// PaymentMethod is a seeded lookup row; rows are never created at runtime.
type PaymentMethod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;unique" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SimpleInvoice is the immutable billing snapshot of a temporal ticket.
// Once one exists the ticket it came from is locked; deleting the
// invoice (unlock) is the only way back.
type SimpleInvoice struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	PaymentMethodID uint              `gorm:"default:1" json:"payment_method_id"`
	PaymentMethod   *PaymentMethod    `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
	Paid            bool              `gorm:"default:false" json:"paid"`
	Items           []InvoiceLineItem `gorm:"foreignKey:SimpleInvoiceID" json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `gorm:"index" json:"deleted_at,omitempty"`
}

// Total sums the frozen line prices.
func (inv *SimpleInvoice) Total() float64 {
	var total float64
	for _, item := range inv.Items {
		total += item.Price
	}
	return total
}

// InvoiceLineItem is a frozen copy of a ticket line at conversion time.
type InvoiceLineItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	SimpleInvoiceID   uint      `gorm:"index;not null" json:"simple_invoice_id"`
	OriginalProductID uint      `gorm:"index;not null" json:"original_product_id"`
	Price             float64   `json:"price"`
	CreatedAt         time.Time `json:"created_at"`
}

func (InvoiceLineItem) TableName() string { return "sold_products" }
