package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// PoolConfig bounds the connection pool. Callers beyond MaxOpen wait for a
// free connection.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

func Connect(driver, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch driver {
	case DriverPostgres:
		db, err = openPostgres(dsn)
	case DriverSQLite:
		db, err = sqlx.Open(DriverSQLite, sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	// ---- Connection Pool Settings ----
	if driver == DriverSQLite {
		// one writer at a time; also keeps shared in-memory databases alive
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(pool.MaxOpen)
		db.SetMaxIdleConns(pool.MaxIdle)
		db.SetConnMaxLifetime(pool.MaxLifetime)
	}

	// ---- Connectivity Check ----
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	// ---- Health Check Query ----
	if err := Ping(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Ping runs a trivial query through the pool.
func Ping(ctx context.Context, db *sqlx.DB) error {
	var tmp int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&tmp); err != nil {
		return fmt.Errorf("db: health check failed: %w", err)
	}
	return nil
}

func openPostgres(dsn string) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	cfg.ConnectTimeout = 5 * time.Second

	return sqlx.NewDb(stdlib.OpenDB(*cfg), DriverPostgres), nil
}

// sqliteDSN turns on foreign key enforcement for every connection the
// driver opens unless the caller already configured it.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}
