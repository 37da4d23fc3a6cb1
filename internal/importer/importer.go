// Package importer runs the bank-statement import pipeline: read and
// repair the document, parse it, normalize the records into the local
// transaction shape, deduplicate against the store, and commit the
// survivors in one batch.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"

	"github.com/caixa-app/caixa/internal/model"
	"github.com/caixa-app/caixa/internal/ofx"
	"github.com/caixa-app/caixa/internal/service"
)

// ErrImportRunning is returned when an import is started while another is
// still in flight. Only one import runs at a time.
var ErrImportRunning = errors.New("an import is already running")

// Importer owns the import pipeline. The store handle is passed in, never
// reached globally.
type Importer struct {
	store  service.Store
	parser service.StatementParser
	busy   atomic.Bool
}

// New creates an importer over the given store and parser.
func New(store service.Store, parser service.StatementParser) *Importer {
	return &Importer{store: store, parser: parser}
}

// Result is the completion notification of an asynchronous import.
type Result struct {
	Err      error
	Inserted int
	Skipped  int
}

// Start runs the pipeline on its own goroutine and delivers the result on
// the returned channel. The channel is buffered, so the worker never blocks
// on a consumer, and it is closed after the single result.
func (i *Importer) Start(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		inserted, skipped, err := i.run(ctx, path)
		ch <- Result{Inserted: inserted, Skipped: skipped, Err: err}
	}()
	return ch
}

// Import runs the pipeline synchronously and returns the number of newly
// inserted transactions. Records already present in the store are skipped
// silently. Any failure before the commit aborts the whole run; the store
// is never left partially written.
func (i *Importer) Import(ctx context.Context, path string) (int, error) {
	inserted, _, err := i.run(ctx, path)
	return inserted, err
}

func (i *Importer) run(ctx context.Context, path string) (inserted, skipped int, err error) {
	if !i.busy.CompareAndSwap(false, true) {
		return 0, 0, ErrImportRunning
	}
	defer i.busy.Store(false)

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read statement file: %w", err)
	}

	repaired := ofx.Repair(raw)

	// The parser consumes a file path, so the repaired text gets its own
	// temp file. It is removed on every path, including failures.
	tmp, err := os.CreateTemp("", "caixa-import-*.ofx")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(repaired); err != nil {
		_ = tmp.Close()
		return 0, 0, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, 0, fmt.Errorf("failed to close temp file: %w", err)
	}

	records, err := i.parser.Parse(ctx, tmpPath)
	if err != nil {
		return 0, 0, err
	}

	var batch []model.Transaction
	seen := make(map[model.DedupKey]bool)
	for _, rec := range records {
		txn := Normalize(rec)
		key := txn.DedupKey()

		// A record is a duplicate if it is already stored or if the same
		// document carries it twice.
		if seen[key] {
			skipped++
			continue
		}
		exists, err := i.store.TransactionExists(ctx, key)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to check for duplicate: %w", err)
		}
		if exists {
			skipped++
			continue
		}
		seen[key] = true
		batch = append(batch, txn)
	}

	if len(batch) > 0 {
		if err := i.store.SaveTransactions(ctx, batch); err != nil {
			return 0, 0, fmt.Errorf("failed to save imported transactions: %w", err)
		}
	}

	slog.Info("import complete",
		"file", path,
		"parsed", len(records),
		"inserted", len(batch),
		"duplicates", skipped)

	return len(batch), skipped, nil
}

// Normalize maps an external statement record into the local transaction
// shape: the sign moves into the kind, the magnitude is stored absolute,
// the memo goes through the double-encoding repair, the posted date becomes
// display text, and the category falls back to the default.
func Normalize(rec service.StatementRecord) model.Transaction {
	kind := model.KindExpense
	if rec.Amount > 0 {
		kind = model.KindIncome
	}

	return model.Transaction{
		Kind:        kind,
		Description: ofx.RepairMemo(rec.Memo),
		Amount:      math.Abs(rec.Amount),
		Category:    model.FallbackCategory,
		Date:        model.FormatDate(rec.Posted),
	}
}
