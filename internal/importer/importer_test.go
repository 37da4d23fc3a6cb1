package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixa-app/caixa/internal/model"
	"github.com/caixa-app/caixa/internal/service"
	"github.com/caixa-app/caixa/internal/storage"
)

// fakeParser returns canned records regardless of the document content.
type fakeParser struct {
	records []service.StatementRecord
	err     error
}

func (p *fakeParser) Parse(_ context.Context, _ string) ([]service.StatementRecord, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

// blockingParser parks until released, keeping an import in flight.
type blockingParser struct {
	started     chan struct{}
	release     chan struct{}
	startedOnce sync.Once
}

func (p *blockingParser) Parse(_ context.Context, _ string) ([]service.StatementRecord, error) {
	p.startedOnce.Do(func() { close(p.started) })
	<-p.release
	return nil, nil
}

func createTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func writeStatement(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.ofx")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func sampleRecords() []service.StatementRecord {
	return []service.StatementRecord{
		{
			Posted: time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC),
			Memo:   "CLIENT PAYMENT",
			Amount: 1250.00,
		},
		{
			Posted: time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC),
			Memo:   "GROCERY MARKET",
			Amount: -125.00,
		},
	}
}

func TestImportInsertsRecords(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	imp := New(store, &fakeParser{records: sampleRecords()})

	inserted, err := imp.Import(ctx, writeStatement(t, "irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	txns, err := store.AllTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	byDesc := make(map[string]model.Transaction)
	for _, txn := range txns {
		byDesc[txn.Description] = txn
	}

	income := byDesc["CLIENT PAYMENT"]
	assert.Equal(t, model.KindIncome, income.Kind)
	assert.Equal(t, 1250.00, income.Amount)
	assert.Equal(t, "15/01/2024", income.Date)
	assert.Equal(t, model.FallbackCategory, income.Category)

	expense := byDesc["GROCERY MARKET"]
	assert.Equal(t, model.KindExpense, expense.Kind)
	assert.Equal(t, 125.00, expense.Amount)
}

func TestImportSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	imp := New(store, &fakeParser{records: sampleRecords()})
	path := writeStatement(t, "irrelevant")

	inserted, err := imp.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// The same document again: everything is already stored.
	inserted, err = imp.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	txns, err := store.AllTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestImportSkipsDuplicatesWithinDocument(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	records := sampleRecords()
	records = append(records, records[0])
	imp := New(store, &fakeParser{records: records})

	inserted, err := imp.Import(ctx, writeStatement(t, "irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}

func TestImportReportsSkippedCount(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	imp := New(store, &fakeParser{records: sampleRecords()})
	path := writeStatement(t, "irrelevant")

	_, err := imp.Import(ctx, path)
	require.NoError(t, err)

	res := <-imp.Start(ctx, path)
	require.NoError(t, res.Err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 2, res.Skipped)
}

func TestImportParseFailureWritesNothing(t *testing.T) {
	// Scratch temp dir so leftover intermediate files are observable.
	tmpDir := t.TempDir()
	t.Setenv("TMPDIR", tmpDir)

	ctx := context.Background()
	store := createTestStore(t)
	parseErr := errors.New("boom")
	imp := New(store, &fakeParser{err: parseErr})

	_, err := imp.Import(ctx, writeStatement(t, "irrelevant"))
	require.Error(t, err)
	assert.ErrorIs(t, err, parseErr)

	txns, err := store.AllTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txns)

	// The intermediate temp file is removed even when the parse fails.
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportMissingFile(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	imp := New(store, &fakeParser{})

	_, err := imp.Import(ctx, filepath.Join(t.TempDir(), "missing.ofx"))
	require.Error(t, err)

	// The failed run must not leave the importer marked busy.
	inserted, err := imp.Import(ctx, writeStatement(t, "irrelevant"))
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestImportRejectsConcurrentRun(t *testing.T) {
	ctx := context.Background()
	store := createTestStore(t)
	parser := &blockingParser{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	imp := New(store, parser)

	ch := imp.Start(ctx, writeStatement(t, "irrelevant"))
	<-parser.started

	_, err := imp.Import(ctx, writeStatement(t, "irrelevant"))
	assert.ErrorIs(t, err, ErrImportRunning)

	close(parser.release)
	res := <-ch
	require.NoError(t, res.Err)

	// Once the first run completes, the importer accepts work again.
	_, err = imp.Import(ctx, writeStatement(t, "irrelevant"))
	require.NoError(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		rec  service.StatementRecord
		want model.Transaction
	}{
		{
			name: "debit becomes expense with absolute amount",
			rec: service.StatementRecord{
				Posted: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
				Memo:   "UTILITY BILL",
				Amount: -42.50,
			},
			want: model.Transaction{
				Kind:        model.KindExpense,
				Description: "UTILITY BILL",
				Amount:      42.50,
				Category:    model.FallbackCategory,
				Date:        "05/03/2024",
			},
		},
		{
			name: "credit becomes income",
			rec: service.StatementRecord{
				Posted: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
				Memo:   "INVOICE 42",
				Amount: 900,
			},
			want: model.Transaction{
				Kind:        model.KindIncome,
				Description: "INVOICE 42",
				Amount:      900,
				Category:    model.FallbackCategory,
				Date:        "31/12/2024",
			},
		},
		{
			name: "zero amount is an expense",
			rec: service.StatementRecord{
				Posted: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				Memo:   "ADJUSTMENT",
				Amount: 0,
			},
			want: model.Transaction{
				Kind:        model.KindExpense,
				Description: "ADJUSTMENT",
				Amount:      0,
				Category:    model.FallbackCategory,
				Date:        "01/06/2024",
			},
		},
		{
			name: "double encoded memo is repaired",
			rec: service.StatementRecord{
				Posted: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
				Memo:   "CafÃ©",
				Amount: -10,
			},
			want: model.Transaction{
				Kind:        model.KindExpense,
				Description: "Café",
				Amount:      10,
				Category:    model.FallbackCategory,
				Date:        "01/06/2024",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.rec))
		})
	}
}
