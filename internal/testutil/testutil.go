package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/blogspot/internal/db"
)

const Secret = "test-secret"

var dbSeq atomic.Int64

// OpenTestDB opens a fresh shared-cache in-memory SQLite database with
// foreign keys on and the schema applied. It is closed on test cleanup.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, dbSeq.Add(1))

	d, err := db.Connect(db.DriverSQLite, dsn, db.PoolConfig{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if err := db.EnsureSchema(context.Background(), d); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return d
}

// SeedUser inserts a user row directly and returns its id.
func SeedUser(t *testing.T, d *sqlx.DB, id, username, email string) string {
	t.Helper()
	_, err := d.Exec(d.Rebind(`INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`),
		id, username, email, "x")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedPost inserts a post with an explicit creation time offset in seconds
// from now, so ordering is deterministic.
func SeedPost(t *testing.T, d *sqlx.DB, id, authorID, title string, ageSeconds int) {
	t.Helper()
	_, err := d.Exec(d.Rebind(`
		INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, datetime('now', ?), datetime('now', ?))
	`), id, title, "content of "+title, authorID, fmt.Sprintf("-%d seconds", ageSeconds), fmt.Sprintf("-%d seconds", ageSeconds))
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
}
