// Package sqlstore implements storage.Store on database/sql. It supports a
// SQLite dialect (pure Go, no CGO) and a PostgreSQL dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/storeadmin/internal/auth"
	"github.com/mmynk/storeadmin/internal/storage"
)

var (
	_ storage.Store    = (*Store)(nil)
	_ auth.UserStorage = (*Store)(nil)
)

// Store implements storage.Store and auth.UserStorage.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the database for the named driver ("sqlite" or
// "postgres") and runs migrations.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// OpenSQLite opens the SQLite database at path, creating parent directories,
// and runs migrations. Foreign keys are enforced on every connection.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return open(ctx, db, SQLite)
}

// OpenPostgres connects to PostgreSQL with the given connection string and
// runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return open(ctx, db, Postgres)
}

func open(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := New(db, d)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// New wraps an existing connection. It does not run migrations.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *Store) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, s.dialect.rebind(query), args...)
}

func (s *Store) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, s.dialect.rebind(query), args...)
}

// withTx runs fn in a transaction, committing if it returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// updateScoped runs an UPDATE whose WHERE clause matches on id and store_id
// and returns the number of rows matched.
func (s *Store) updateScoped(ctx context.Context, q querier, query string, args ...any) (int64, error) {
	res, err := s.exec(ctx, q, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// deleteScoped deletes the row with id from table within storeID.
// A foreign key violation is reported as storage.ErrReferenced.
func (s *Store) deleteScoped(ctx context.Context, table, storeID, id string) (int64, error) {
	res, err := s.exec(ctx, s.db,
		"DELETE FROM "+table+" WHERE id = ? AND store_id = ?",
		id, storeID,
	)
	if err != nil {
		if s.dialect.isForeignKeyViolation(err) {
			return 0, fmt.Errorf("failed to delete from %s: %w", table, storage.ErrReferenced)
		}
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return res.RowsAffected()
}

// requireInStore checks that table has a row with id in storeID.
func (s *Store) requireInStore(ctx context.Context, q querier, table, id, storeID string) error {
	var one int
	err := s.queryRow(ctx, q,
		"SELECT 1 FROM "+table+" WHERE id = ? AND store_id = ?",
		id, storeID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %q: %w", table, id, storage.ErrInvalidReference)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s reference: %w", table, err)
	}
	return nil
}

// placeholders returns "?, ?, ..." with n placeholders.
// Used for building IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
