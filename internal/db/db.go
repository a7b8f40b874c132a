package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Dialect identifies the SQL flavour behind a connection. Its value is the database/sql driver name.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "pgx"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// ParseURL maps a DATABASE_URL onto a dialect and the DSN its driver expects.
// postgres:// and postgresql:// URLs select PostgreSQL; sqlite://path, file: URIs and bare paths select SQLite.
func ParseURL(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Postgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return SQLite, withPragmas(strings.TrimPrefix(databaseURL, "sqlite://")), nil
	case strings.Contains(databaseURL, "://"):
		return "", "", fmt.Errorf("unsupported database url scheme in %q", databaseURL)
	case databaseURL == "":
		return "", "", fmt.Errorf("database url is empty")
	default:
		return SQLite, withPragmas(databaseURL), nil
	}
}

func withPragmas(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}

// Connect opens a connection pool for databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, Dialect, error) {
	dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}

	pool, err := sqlx.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch dialect {
	case SQLite:
		// SQLite allows a single writer; one connection also keeps :memory: databases shared.
		pool.SetMaxOpenConns(1)
	case Postgres:
		pool.SetMaxOpenConns(25)
		pool.SetMaxIdleConns(5)
		pool.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	slog.InfoContext(ctx, "Connected to database", "db.dialect", string(dialect))
	return pool, dialect, nil
}

// Contains returns a case-sensitive substring predicate on column for one bind parameter.
// The term is matched literally; % and _ carry no wildcard meaning.
func (d Dialect) Contains(column string) string {
	if d == Postgres {
		return fmt.Sprintf("strpos(%s, ?) > 0", column)
	}
	return fmt.Sprintf("instr(%s, ?) > 0", column)
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, DB *sqlx.DB, dialect Dialect) error {
	statements := sqliteSchema
	if dialect == Postgres {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	slog.InfoContext(ctx, "DB schema verified.", "db.dialect", string(dialect))
	return nil
}

// Reset drops every table so Migrate can rebuild the schema from scratch.
func Reset(ctx context.Context, DB *sqlx.DB) error {
	for _, table := range []string{"messages", "listings", "users"} {
		if _, err := DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(50) PRIMARY KEY,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		image TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		created VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		rented VARCHAR(50) REFERENCES users(username) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		time_sent TIMESTAMP NOT NULL,
		to_user VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		from_user VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		listing_id INTEGER NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		CHECK (to_user <> from_user)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_to_user ON messages (to_user);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username VARCHAR(50) PRIMARY KEY,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE TABLE IF NOT EXISTS listings (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		image TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		created VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		rented VARCHAR(50) REFERENCES users(username) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS messages (
		id SERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		time_sent TIMESTAMPTZ NOT NULL,
		to_user VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		from_user VARCHAR(50) NOT NULL REFERENCES users(username) ON DELETE CASCADE,
		listing_id INTEGER NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		CHECK (to_user <> from_user)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_to_user ON messages (to_user);`,
}
