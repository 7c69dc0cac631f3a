package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product with its two venue prices.
// Prices are tax-inclusive; the tax portion is decomposed at print time.
type Product struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	CategoryID    *uint            `gorm:"index" json:"category_id,omitempty"`
	Category      *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name          string           `gorm:"not null" json:"name"`
	InsidePrice   float64          `json:"inside_price"`             // price when served at the bar
	OutsidePrice  float64          `json:"outside_price"`            // price on the restaurant/garden floor
	TaxPercentage *float64         `json:"tax_percentage,omitempty"` // nil means the default rate applies
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

// PriceFor returns the unit price for the given ticket location.
func (p *Product) PriceFor(location TicketLocation) float64 {
	if location == LocationBar {
		return p.InsidePrice
	}
	return p.OutsidePrice
}

// ProductCategory groups catalog products for the selection grid.
type ProductCategory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;unique" json:"name"`
	Products  []Product      `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
