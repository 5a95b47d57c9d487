package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(36)  PRIMARY KEY,
		username      VARCHAR(50)  NOT NULL UNIQUE,
		email         VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         VARCHAR(36)  PRIMARY KEY,
		title      VARCHAR(200) NOT NULL,
		content    TEXT         NOT NULL,
		author_id  VARCHAR(36)  NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username))`,
	`CREATE INDEX IF NOT EXISTS posts_author_created_idx ON posts (author_id, created_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username))`,
	`CREATE INDEX IF NOT EXISTS posts_author_created_idx ON posts (author_id, created_at DESC)`,
}

// EnsureSchema creates the users and posts tables if they do not exist.
// Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	stmts := postgresSchema
	if db.DriverName() == DriverSQLite {
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: ensure schema: %w", err)
		}
	}
	return nil
}
