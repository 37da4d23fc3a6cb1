// Package service defines the interfaces between the application's
// components: the persistence layer, the statement parser, and the values
// they exchange.
package service

import (
	"context"
	"time"

	"github.com/caixa-app/caixa/internal/model"
)

// Store is the contract for the persistence layer. A single store handle is
// owned by the application context and passed into every component; nothing
// reaches for a global connection.
type Store interface {
	// Transaction operations.
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	ListTransactions(ctx context.Context, c model.Criteria) ([]model.Transaction, error)
	AllTransactions(ctx context.Context) ([]model.Transaction, error)
	Summarize(ctx context.Context, c model.Criteria) (Summary, error)
	TransactionExists(ctx context.Context, key model.DedupKey) (bool, error)
	UpdateDescription(ctx context.Context, id int64, description string) error
	UpdateCategory(ctx context.Context, id int64, category string) error
	ReassignCategory(ctx context.Context, ids []int64, category string) error
	DeleteTransactions(ctx context.Context, ids []int64) error

	// Category operations.
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	DeleteCategory(ctx context.Context, name string) error

	// Settings operations.
	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// StatementRecord is one entry of a parsed bank statement, in the external
// parser's shape: the amount keeps its sign (negative for debits) and the
// posted date is a real calendar date.
type StatementRecord struct {
	Posted time.Time
	Memo   string
	Amount float64
}

// StatementParser turns a statement document on disk into records. The
// structural parse is delegated to an external library; implementations
// report invalid input as a parse error and must not partially succeed.
type StatementParser interface {
	Parse(ctx context.Context, path string) ([]StatementRecord, error)
}

// Summary holds the aggregates computed over a filtered transaction set,
// not over the whole table.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
}

// Net returns income minus expense.
func (s Summary) Net() float64 {
	return s.TotalIncome - s.TotalExpense
}

// Ratio is the share of income in the total activity, driving the
// proportion indicator. With no activity at all the ratio is undefined and
// the midpoint 0.5 is returned so the indicator renders centered.
func (s Summary) Ratio() float64 {
	total := s.TotalIncome + s.TotalExpense
	if total <= 0 {
		return 0.5
	}
	return s.TotalIncome / total
}
