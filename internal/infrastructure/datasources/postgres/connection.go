package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"creatorverse.backend/internal/config"
)

var (
	gormOpen = gorm.Open
	dbPing   = func(db *sql.DB) error { return db.Ping() }
)

// Open prepares a gorm handle over pgx without touching the network. Simple
// protocol keeps it usable behind transaction poolers.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gormOpen(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:          false,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewConnection opens the database described by cfg and checks it answers.
func NewConnection(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg.URL())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := dbPing(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
