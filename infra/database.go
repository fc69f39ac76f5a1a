package infra

import (
	"fmt"
	"log/slog"

	"github.com/goldenbridge/bankapi/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the database handle for the process. The handle is
// constructed once at startup, passed to the unit of work, and closed via
// CloseDB at shutdown.
func NewDBConnection(cfg config.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AdminUser{},
		&Transaction{},
		&Loan{},
		&Activity{},
		&SupportTicket{},
		&TicketMessage{},
	)
}

// CloseDB releases the underlying connection pool.
func CloseDB(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to access underlying sql.DB", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
