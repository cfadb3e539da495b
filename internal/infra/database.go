package infra

import (
	"fmt"

	"github.com/lturcios/turicash-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies idempotent SQL patches that
// AutoMigrate cannot express (partial/composite indexes).
//
// Pool sizing: a fixed cap of 10 open connections; callers queue for a free
// connection instead of failing. Each sync transaction holds exactly one
// connection for its full duration.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Location{},
		&model.User{},
		&model.Item{},
		&model.Ticket{},
		&model.TicketItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate does not cover.
// Each statement uses IF NOT EXISTS semantics so re-running on an
// already-patched database is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// History queries filter by location + local date range and sort newest first.
		`CREATE INDEX IF NOT EXISTS idx_tickets_location_created_local
		     ON tickets (location_id, created_at_local DESC)`,
		// Dashboard top-items groups ticket lines by catalog item.
		`CREATE INDEX IF NOT EXISTS idx_ticket_items_item_name
		     ON ticket_items (item_id, item_name)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
