package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// StateRepository persists one JSON document per collection under a
// string key, mirroring the key/value layout the browser client used.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type SQLiteStateRepository struct {
	database *sql.DB
}

func NewStateRepository(database *sql.DB) *SQLiteStateRepository {
	return &SQLiteStateRepository{database: database}
}

// Get returns the stored document, or "" when the key has never been
// written. Absence is not an error; callers fall back to defaults.
func (repository *SQLiteStateRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := repository.database.QueryRowContext(ctx,
		"SELECT value FROM app_state WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting state %s: %w", key, err)
	}
	return value, nil
}

func (repository *SQLiteStateRepository) Set(ctx context.Context, key string, value string) error {
	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting state %s: %w", key, err)
	}
	return nil
}
