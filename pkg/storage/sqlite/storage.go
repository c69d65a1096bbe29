package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/cardroyale/internal/logging"
	"github.com/fadedpez/cardroyale/pkg/db"
	"github.com/fadedpez/cardroyale/pkg/storage"
)

// Storage implements storage.Store on the snapshots table
type Storage struct {
	db    *sql.DB
	owned bool
}

// New opens the database at path, migrating it if needed
func New(path string, logger *logging.Logger) (*Storage, error) {
	conn, err := db.OpenSQLite(path, logger)
	if err != nil {
		return nil, err
	}
	return &Storage{db: conn, owned: true}, nil
}

// NewWithDB uses an already migrated connection; Close leaves it open
func NewWithDB(conn *sql.DB) *Storage {
	return &Storage{db: conn}
}

// Get returns the blob stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the blob stored under key
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

// Close closes the database if this store opened it
func (s *Storage) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
