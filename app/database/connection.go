package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"HotelPos/app/config"
	"HotelPos/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// resolveDSN picks the connection string.
// Priority: DATABASE_URL > config.json settings > individual variables
// (DB_HOST, DB_PORT, etc.) > defaults.
func resolveDSN(cfg *config.AppConfig) string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		log.Printf("Using DATABASE_URL for database connection")
		return dsn
	}
	if cfg != nil {
		return buildDSNFromConfig(cfg)
	}
	return buildDSN()
}

// buildDSN constructs the database connection string from environment variables
func buildDSN() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	if user == "" {
		user = "postgres"
	}
	if password == "" {
		password = "postgres"
	}
	if dbname == "" {
		dbname = "hotelpos"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	log.Printf("Built database connection from individual variables: host=%s port=%s dbname=%s sslmode=%s",
		host, port, dbname, sslmode)

	return dsn
}

// buildDSNFromConfig builds DSN from AppConfig
func buildDSNFromConfig(cfg *config.AppConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.SSLMode,
	)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open connects to the main PostgreSQL database, runs migrations and
// seeds lookup data. The returned handle is passed explicitly into every
// service; there is no package-level connection.
func Open(appConfig *config.AppConfig) (*gorm.DB, error) {
	dsn := resolveDSN(appConfig)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Prepare(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenLocal opens a file-backed (or :memory:) SQLite database with the
// same schema. Used for single-terminal installs and tests.
func OpenLocal(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	if err := Prepare(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Prepare runs migrations and seeds lookup rows on an open handle.
func Prepare(db *gorm.DB) error {
	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := SeedInitialData(db); err != nil {
		log.Printf("Warning: failed to seed initial data: %v", err)
	}
	return nil
}

// RunMigrations runs database migrations
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Catalog models
		&models.ProductCategory{},
		&models.Product{},

		// Ticket models
		&models.TemporalTicket{},
		&models.TemporalLineItem{},

		// Invoice models
		&models.PaymentMethod{},
		&models.SimpleInvoice{},
		&models.InvoiceLineItem{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	createIndexes(db)
	return nil
}

// createIndexes creates database indexes for better query performance
func createIndexes(db *gorm.DB) {
	// One live ticket per (table, location) slot. Partial so a retired
	// slot can be reopened after its ticket is soft deleted.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_temporal_tickets_slot ON temporal_tickets(table_id, ticket_location) WHERE deleted_at IS NULL")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_temporal_products_ticket_id ON temporal_products(temporal_ticket_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sold_products_invoice_id ON sold_products(simple_invoice_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_simple_invoices_created_at ON simple_invoices(created_at)")
}

// SeedInitialData seeds the payment method lookup rows. They are fixed
// ids the rest of the system refers to by constant.
func SeedInitialData(db *gorm.DB) error {
	paymentMethods := []models.PaymentMethod{
		{ID: models.PaymentMethodCash, Name: "Efectivo"},
		{ID: models.PaymentMethodCard, Name: "Tarjeta"},
		{ID: models.PaymentMethodRoomBill, Name: "Adeudo"},
	}

	for _, pm := range paymentMethods {
		var count int64
		db.Model(&models.PaymentMethod{}).Where("id = ?", pm.ID).Count(&count)
		if count == 0 {
			if err := db.Create(&pm).Error; err != nil {
				return fmt.Errorf("seed payment method %s: %w", pm.Name, err)
			}
		}
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
