package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/mattn/go-sqlite3"
)

// writeRetry bounds how long a write waits on a busy database.
var writeRetry = common.RetryOptions{
	MaxAttempts:  5,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2.0,
}

// SQLiteMedium implements Medium with a single kv table.
type SQLiteMedium struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteMedium opens (and creates if needed) the database at dbPath.
// Call Migrate before use.
func NewSQLiteMedium(dbPath string) (*SQLiteMedium, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteMedium{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Get implements Medium.
func (s *SQLiteMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	var text string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key: %w", err)
	}
	return text, true, nil
}

// Set implements Medium. Busy or locked databases are retried with backoff.
func (s *SQLiteMedium) Set(ctx context.Context, key, text string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	return common.WithRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, key, text, time.Now().UTC())
		if err == nil {
			return nil
		}
		return &common.RetryableError{
			Err:       fmt.Errorf("failed to store key: %w", err),
			Retryable: isBusy(err),
		}
	}, writeRetry)
}

// Close closes the database connection.
func (s *SQLiteMedium) Close() error {
	return s.db.Close()
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
