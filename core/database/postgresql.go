package database

import (
	"context"
	"fmt"
	"time"

	"room-booking-api/core/config"
	"room-booking-api/core/constants"
	"room-booking-api/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type IDatabase interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	PingContext(ctx context.Context) error
	Close() error
}

type Database struct {
	sqlx *sqlx.DB
}

// DSN builds a lib/pq connection string from the database section.
func DSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = constants.DatabaseSSLMode
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)
}

func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	logger.Info("Database:InitDB:Start", "host", cfg.Host, "database", cfg.DBName)

	sqlxDB, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
	if err != nil {
		logger.Error("Database:InitDB:Connect", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlxDB.SetMaxOpenConns(constants.DatabaseMaxOpenConns)
	sqlxDB.SetMaxIdleConns(constants.DatabaseMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(time.Duration(constants.DatabaseConnMaxLifetime) * time.Minute)

	if err = sqlxDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		logger.Error("Database:InitDB:Ping", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Database{sqlx: sqlxDB}

	logger.Info("Database:InitDB:Success",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"maxOpenConns", constants.DatabaseMaxOpenConns,
		"maxIdleConns", constants.DatabaseMaxIdleConns,
	)
	return db, nil
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) PingContext(ctx context.Context) error {
	return d.sqlx.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.sqlx.Close()
}
