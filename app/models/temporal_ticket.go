package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TicketLocation identifies which physical area a table belongs to.
type TicketLocation int

const (
	LocationBar        TicketLocation = 1
	LocationRestaurant TicketLocation = 2
	LocationGarden     TicketLocation = 3
)

func (l TicketLocation) String() string {
	switch l {
	case LocationBar:
		return "bar"
	case LocationRestaurant:
		return "restaurant"
	case LocationGarden:
		return "garden"
	}
	return fmt.Sprintf("location(%d)", int(l))
}

func (l *TicketLocation) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*l = TicketLocation(v)
	case int:
		*l = TicketLocation(v)
	default:
		return fmt.Errorf("cannot scan %T into TicketLocation", value)
	}
	return nil
}

func (l TicketLocation) Value() (driver.Value, error) {
	return int64(l), nil
}

// TicketStatus tracks whether a ticket has been sent to print.
type TicketStatus int

const (
	TicketStatusPending TicketStatus = 0
	TicketStatusPrinted TicketStatus = 1
)

func (s *TicketStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*s = TicketStatus(v)
	case int:
		*s = TicketStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into TicketStatus", value)
	}
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

// TemporalTicket is a live, editable order bound to one (table, location)
// slot. At most one non-deleted ticket exists per slot; the partial
// unique index in the database enforces it.
type TemporalTicket struct {
	ID              uint               `gorm:"primaryKey" json:"id"`
	TableID         int                `gorm:"index;not null" json:"table_id"`
	TicketLocation  TicketLocation     `gorm:"not null" json:"ticket_location"`
	TicketStatus    TicketStatus       `gorm:"default:0" json:"ticket_status"`
	SimpleInvoiceID *uint              `gorm:"index" json:"simple_invoice_id,omitempty"`
	Items           []TemporalLineItem `gorm:"foreignKey:TemporalTicketID" json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"deleted_at,omitempty"`
}

// TemporalLineItem is one order line. Name and price are snapshots taken
// when the line was added, so later catalog edits never rewrite an open
// order.
type TemporalLineItem struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	TemporalTicketID  uint      `gorm:"index;not null" json:"temporal_ticket_id"`
	OriginalProductID uint      `gorm:"index;not null" json:"original_product_id"`
	Name              string    `gorm:"not null" json:"name"`
	Quantity          int       `gorm:"default:1" json:"quantity"`
	Price             float64   `json:"price"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Keypad projections. The numpad edits these digit by digit; they are
	// coerced to the canonical numeric fields before anything is computed
	// or persisted.
	QuantityInput string `gorm:"-" json:"quantity_input,omitempty"`
	PriceInput    string `gorm:"-" json:"price_input,omitempty"`
}

func (TemporalLineItem) TableName() string { return "temporal_products" }

// ApplyQuantityInput coerces a keypad quantity projection onto the line.
// Empty input resets the quantity to zero; anything unparsable is ignored.
func (li *TemporalLineItem) ApplyQuantityInput(input string) {
	if input == "" {
		li.Quantity = 0
		li.QuantityInput = ""
		return
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 0 {
		return
	}
	li.Quantity = n
	li.QuantityInput = input
}

// ApplyPriceInput coerces a keypad price projection onto the line. A
// keystroke that would add a third digit past the decimal point is a
// no-op, so the stored price never carries sub-cent noise.
func (li *TemporalLineItem) ApplyPriceInput(input string) {
	if len(input) > len(li.PriceInput) {
		if idx := strings.Index(li.PriceInput, "."); idx >= 0 && len(li.PriceInput)-idx > 2 {
			return
		}
	}
	if input == "" {
		li.Price = 0
		li.PriceInput = ""
		return
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || v < 0 {
		return
	}
	li.Price = v
	li.PriceInput = input
}
