package model

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию таблиц календаря.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Instructor{},
		&Booking{},
		&BookingItem{},
	)
}

// sqliteSchema: схема для SQLite, дефолты now()/gen_random_uuid()
// из тегов GORM там не поддерживаются.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS instructors (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT,
		disciplines TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		instructor_id TEXT NOT NULL,
		customer_id TEXT,
		start_date DATE,
		end_date DATE,
		created_at DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS booking_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		booking_id INTEGER NOT NULL,
		booking_slot_id INTEGER NOT NULL,
		day_slot_id INTEGER NOT NULL,
		date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		total_minutes INTEGER NOT NULL,
		hourly_rate REAL NOT NULL DEFAULT 0,
		offer_id INTEGER,
		created_at DATETIME
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_instructor_id ON bookings (instructor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_booking_items_date ON booking_items (date);`,
	`CREATE INDEX IF NOT EXISTS idx_booking_items_booking_id ON booking_items (booking_id);`,
}

// Migrate выбирает способ миграции по диалекту.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return AutoMigrate(db)
	}
	for _, stmt := range sqliteSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}
