package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"academy-assistant/internal/common/config"

	_ "github.com/lib/pq"
)

// membersSchema is the table read by the member lookup.
const membersSchema = `
CREATE TABLE IF NOT EXISTS academy_members (
	talent_id        VARCHAR(16) PRIMARY KEY,
	kind             VARCHAR(16) NOT NULL,
	name             TEXT        NOT NULL,
	age              INTEGER     NOT NULL,
	position         VARCHAR(8),
	specialty        TEXT,
	years_experience INTEGER     NOT NULL DEFAULT 0,
	level            TEXT        NOT NULL DEFAULT '',
	previous_club    TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool; the connection is not verified until Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

// Migrate creates the member directory table when it is missing.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, membersSchema); err != nil {
		return fmt.Errorf("create academy_members: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
