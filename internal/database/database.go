package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"orderwatch/internal/models"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for single-host deployments
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
	} else {
		// PostgreSQL when the admin backend shares the store
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		product_order_id TEXT UNIQUE NOT NULL,
		payment_date TEXT,
		orderer_name TEXT,
		product_name TEXT,
		product_option TEXT,
		quantity INTEGER,
		total_payment_amount BIGINT,
		recipient_name TEXT,
		recipient_tel TEXT,
		shipping_address TEXT,
		created_at TIMESTAMP,
		updated_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS documents (
		doc_id TEXT PRIMARY KEY,
		date TEXT,
		document_number TEXT,
		company_name TEXT,
		biz_number TEXT,
		items TEXT,
		subtotal BIGINT,
		tax BIGINT,
		total_amount BIGINT,
		notes TEXT,
		top_memo TEXT,
		created_at TEXT,
		updated_at TEXT,
		type TEXT
	);
	`

	err = db.Exec(createTablesSQL).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

// SaveOrder inserts a notified order, ignoring ids already stored (the store
// is a sink, not the dedup source).
func (d *Database) SaveOrder(order *models.Order) error {
	return d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_order_id"}},
		DoNothing: true,
	}).Create(order).Error
}

// SaveDocument inserts a purchase document. Documents are never mutated after
// creation, so conflicts on doc_id are ignored.
func (d *Database) SaveDocument(doc *models.PurchaseDocument) error {
	return d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_id"}},
		DoNothing: true,
	}).Create(doc).Error
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
