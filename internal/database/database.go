package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// Connect creates a new database connection pool
func Connect(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	// A single kitchen writes to this database; keep the pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Println("Database connected successfully")
	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations applies pending migrations in version order
func RunMigrations(db *DB) error {
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for i, migration := range migrations {
		version := i + 1

		var exists bool
		err := db.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", version, err)
		}

		if exists {
			continue
		}

		log.Printf("Applying migration %d...", version)
		_, err = db.Pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}

		_, err = db.Pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			version,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		log.Printf("Migration %d applied successfully", version)
	}

	return nil
}

// migrations are applied in slice order; version = index + 1
var migrations = []string{
	migration001,
	migration002,
}

const migration001 = `
-- Single-row attendance state
CREATE TABLE IF NOT EXISTS attendance_state (
    id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    draft_monday INT NOT NULL DEFAULT 0 CHECK (draft_monday >= 0),
    draft_tuesday INT NOT NULL DEFAULT 0 CHECK (draft_tuesday >= 0),
    monday INT NOT NULL DEFAULT 0 CHECK (monday >= 0),
    tuesday INT NOT NULL DEFAULT 0 CHECK (tuesday >= 0),
    committed_at TIMESTAMP,
    updated_at TIMESTAMP DEFAULT NOW()
);
`

const migration002 = `
-- Reported leftovers; a missing row means the value was never entered
CREATE TABLE IF NOT EXISTS leftovers (
    ingredient_key VARCHAR(50) PRIMARY KEY,
    quantity DOUBLE PRECISION NOT NULL CHECK (quantity >= 0),
    updated_at TIMESTAMP DEFAULT NOW()
);
`
