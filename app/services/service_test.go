package services

import (
	"testing"

	"gorm.io/gorm"

	"HotelPos/app/database"
	"HotelPos/app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenLocal(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (beer, coffee models.Product) {
	t.Helper()
	ten := 10.0
	beer = models.Product{Name: "Estrella Galicia", InsidePrice: 2.00, OutsidePrice: 2.50}
	coffee = models.Product{Name: "Café con leche", InsidePrice: 1.50, OutsidePrice: 1.80, TaxPercentage: &ten}
	for _, p := range []*models.Product{&beer, &coffee} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product %s: %v", p.Name, err)
		}
	}
	return beer, coffee
}

func newTestServices(t *testing.T) (*gorm.DB, *TicketService, *InvoiceService) {
	t.Helper()
	db := newTestDB(t)
	products := NewProductService(db)
	return db, NewTicketService(db, products), NewInvoiceService(db)
}
