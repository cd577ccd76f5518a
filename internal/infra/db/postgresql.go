// Package db opens the PostgreSQL database that backs users, goals, entries and the email queue.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// Database wraps the GORM connection.
type Database struct {
	db *gorm.DB
}

// NewPostgresConnection connects to PostgreSQL, retrying while the server is
// still starting. It gives up after cfg.ConnectAttempts pings.
func NewPostgresConnection(ctx context.Context, cfg *config.DatabaseConfig) (*Database, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	database := &Database{db: gormDB}

	attempts := max(cfg.ConnectAttempts, 1)
	backoff := 500 * time.Millisecond
	for attempt := 1; ; attempt++ {
		err = database.Ping(ctx)
		if err == nil {
			break
		}
		if attempt == attempts {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
		}
		slog.Warn("Database not ready, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			_ = sqlDB.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 8*time.Second)
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)
	return database, nil
}

// NewFromGorm wraps an already opened connection, such as an in-memory SQLite database.
func NewFromGorm(db *gorm.DB) *Database {
	return &Database{db: db}
}

// DB returns the underlying GORM database instance.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping checks the connection with a two second ceiling.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Healthy adapts Ping to the health endpoint.
func (d *Database) Healthy() bool {
	if err := d.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		return false
	}
	return true
}

// Migrate creates or updates every table, parents before children.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(model.Migrations()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	slog.Info("Database migrations completed")
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}
