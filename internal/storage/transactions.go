package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caixa-app/caixa/internal/model"
	"github.com/caixa-app/caixa/internal/service"
)

// SaveTransaction inserts a single transaction and assigns its identity.
func (s *SQLiteStore) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (kind, description, amount, category, date) VALUES (?, ?, ?, ?, ?)`,
		string(txn.Kind), txn.Description, txn.Amount, txn.Category, txn.Date)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}
	txn.ID = id

	slog.Debug("saved transaction", "id", id, "kind", txn.Kind, "amount", txn.Amount)
	return nil
}

// SaveTransactions inserts a batch of transactions in a single database
// transaction: all rows or none.
func (s *SQLiteStore) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(txns); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (kind, description, amount, category, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range txns {
		if _, err := stmt.ExecContext(ctx,
			string(txns[i].Kind), txns[i].Description, txns[i].Amount, txns[i].Category, txns[i].Date); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListTransactions returns the ordered set of transactions matching the
// active filters of c. The caller applies any display cap; the full
// filtered set is what the aggregates are defined over.
func (s *SQLiteStore) ListTransactions(ctx context.Context, c model.Criteria) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query, args := buildListQuery(c, s.now())
	return s.scanTransactions(ctx, query, args...)
}

// AllTransactions returns every transaction, unfiltered, for export.
func (s *SQLiteStore) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.scanTransactions(ctx,
		"SELECT id, kind, description, amount, category, date FROM transactions ORDER BY id")
}

func (s *SQLiteStore) scanTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var kind string
		if err := rows.Scan(&txn.ID, &kind, &txn.Description, &txn.Amount, &txn.Category, &txn.Date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Kind = model.Kind(kind)
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

// Summarize computes the income and expense totals over the set of
// transactions matching c, using the same WHERE clause as ListTransactions.
func (s *SQLiteStore) Summarize(ctx context.Context, c model.Criteria) (service.Summary, error) {
	if err := validateContext(ctx); err != nil {
		return service.Summary{}, err
	}

	query, args := buildSummaryQuery(c, s.now())

	var summary service.Summary
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&summary.TotalIncome, &summary.TotalExpense)
	if err != nil {
		return service.Summary{}, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return summary, nil
}

// TransactionExists reports whether a transaction with the given dedup key
// is already stored.
func (s *SQLiteStore) TransactionExists(ctx context.Context, key model.DedupKey) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM transactions WHERE description = ? AND date = ? AND amount = ? LIMIT 1`,
		key.Description, key.Date, key.Amount).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe for duplicate: %w", err)
	}
	return true, nil
}

// UpdateDescription replaces the description of one transaction.
func (s *SQLiteStore) UpdateDescription(ctx context.Context, id int64, description string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.updateField(ctx, id, "description", description)
}

// UpdateCategory reassigns one transaction to a category.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, id int64, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	return s.updateField(ctx, id, "category", category)
}

func (s *SQLiteStore) updateField(ctx context.Context, id int64, column, value string) error {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE transactions SET %s = ? WHERE id = ?", column), value, id)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	return nil
}

// ReassignCategory moves all the given transactions to a category in a
// single database transaction.
func (s *SQLiteStore) ReassignCategory(ctx context.Context, ids []int64, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIDs(ids); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE transactions SET category = ? WHERE id IN (%s)", idPlaceholders(len(ids)))
	args := make([]any, 0, len(ids)+1)
	args = append(args, category)
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reassign category: %w", err)
	}

	slog.Info("reassigned category", "category", category, "count", len(ids))
	return nil
}

// DeleteTransactions removes the given transactions. Deletes are
// irreversible; no history is kept.
func (s *SQLiteStore) DeleteTransactions(ctx context.Context, ids []int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateIDs(ids); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM transactions WHERE id IN (%s)", idPlaceholders(len(ids)))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	slog.Info("deleted transactions", "count", len(ids))
	return nil
}

func idPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
