package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caixa-app/caixa/internal/model"
	"github.com/mattn/go-sqlite3"
)

// ListCategories returns all categories ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a new category. A name that already exists is
// reported as ErrDuplicateCategory rather than leaking the constraint
// violation to the caller.
func (s *SQLiteStore) CreateCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "name", name)
	return nil
}

// RenameCategory renames a category and moves every referencing
// transaction to the new name. The cascade runs in a single database
// transaction so the rename is atomic.
func (s *SQLiteStore) RenameCategory(ctx context.Context, oldName, newName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(oldName, "oldName"); err != nil {
		return err
	}
	if err := validateString(newName, "newName"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "UPDATE categories SET name = ? WHERE name = ?", newName, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
		}
		return fmt.Errorf("failed to rename category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", ErrNotFound, oldName)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE transactions SET category = ? WHERE category = ?", newName, oldName); err != nil {
		return fmt.Errorf("failed to update referencing transactions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rename: %w", err)
	}

	slog.Info("renamed category", "from", oldName, "to", newName)
	return nil
}

// DeleteCategory removes a category. Transactions referencing the name are
// left untouched and keep the now-dangling category string.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", ErrNotFound, name)
	}

	slog.Info("deleted category", "name", name)
	return nil
}

// isUniqueViolation reports whether err is a SQLite uniqueness constraint
// failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
