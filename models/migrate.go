package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate migrates every model and creates the indexes GORM tags cannot
// express. Used by main at startup and by the test suites against SQLite.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Profile{},
		&Service{},
		&Product{},
		&Reservation{},
		&Testimonial{},
		&Consultation{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// A user may hold at most one non-cancelled reservation per
	// (booking_date, booking_time) slot. This partial index is the actual
	// guarantee; the pre-insert existence check in the reservation handler is
	// only a fast path. Partial indexes are supported by both PostgreSQL and
	// SQLite, so tests exercise the same constraint as production.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_user_slot
		 ON reservations (user_id, booking_date, booking_time)
		 WHERE status <> 'cancelled' AND booking_time IS NOT NULL AND deleted_at IS NULL`,
	).Error; err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}

	return nil
}
