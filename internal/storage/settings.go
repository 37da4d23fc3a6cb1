package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Settings keys. These are the only keys the application reads or writes.
const (
	SettingTitle    = "title"
	SettingSubtitle = "subtitle"
	SettingTheme    = "theme"
)

// Setting returns the value stored under key.
func (s *SQLiteStore) Setting(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: setting %s", ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting: %w", err)
	}
	return value, nil
}

// SetSetting stores value under key, creating or replacing it.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value); err != nil {
		return fmt.Errorf("failed to write setting: %w", err)
	}
	return nil
}
