package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/caixa-app/caixa/internal/model"
)

// testNow is the fixed clock the query tests run against.
var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// createTestStore creates a migrated store on a scratch database with a
// fixed clock.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	store.now = func() time.Time { return testNow }
	return store
}

// seedTransactions inserts the given transactions one by one.
func seedTransactions(t *testing.T, store *SQLiteStore, txns []model.Transaction) {
	t.Helper()
	ctx := context.Background()
	for i := range txns {
		if err := store.SaveTransaction(ctx, &txns[i]); err != nil {
			t.Fatalf("Failed to seed transaction %d: %v", i, err)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestMigrateSeedsDefaults(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != len(model.DefaultCategories) {
		t.Fatalf("got %d seeded categories, want %d", len(categories), len(model.DefaultCategories))
	}

	for _, key := range []string{SettingTitle, SettingSubtitle, SettingTheme} {
		if _, err := store.Setting(ctx, key); err != nil {
			t.Errorf("default setting %s missing: %v", key, err)
		}
	}
}

func TestSaveTransactionAssignsID(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	txn := model.Transaction{
		Kind:        model.KindExpense,
		Description: "Coffee",
		Amount:      4.50,
		Category:    "Food",
		Date:        "05/03/2024",
	}
	if err := store.SaveTransaction(ctx, &txn); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}
	if txn.ID == 0 {
		t.Error("SaveTransaction must assign an identity")
	}
}

func TestSaveTransactionRejectsInvalid(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{
			name: "unknown kind",
			txn:  model.Transaction{Kind: "transfer", Description: "x", Amount: 1, Category: "c", Date: "05/03/2024"},
		},
		{
			name: "negative amount",
			txn:  model.Transaction{Kind: model.KindExpense, Description: "x", Amount: -1, Category: "c", Date: "05/03/2024"},
		},
		{
			name: "malformed date",
			txn:  model.Transaction{Kind: model.KindExpense, Description: "x", Amount: 1, Category: "c", Date: "2024-03-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := tt.txn
			if err := store.SaveTransaction(ctx, &txn); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	txns := []model.Transaction{
		{Kind: model.KindExpense, Description: "One", Amount: 10, Category: "General", Date: "01/03/2024"},
		{Kind: model.KindExpense, Description: "Two", Amount: 20, Category: "General", Date: "02/03/2024"},
		{Kind: model.KindIncome, Description: "Three", Amount: 30, Category: "General", Date: "03/03/2024"},
	}
	seedTransactions(t, store, txns)

	if err := store.UpdateDescription(ctx, txns[0].ID, "One edited"); err != nil {
		t.Fatalf("UpdateDescription failed: %v", err)
	}
	if err := store.UpdateCategory(ctx, txns[0].ID, "Food"); err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if err := store.UpdateDescription(ctx, 99999, "ghost"); err == nil {
		t.Error("updating a missing transaction must fail")
	}

	if err := store.ReassignCategory(ctx, []int64{txns[1].ID, txns[2].ID}, "Operations"); err != nil {
		t.Fatalf("ReassignCategory failed: %v", err)
	}

	rows, err := store.ListTransactions(ctx, model.Criteria{Category: "Operations"})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d transactions in Operations, want 2", len(rows))
	}

	if err := store.DeleteTransactions(ctx, []int64{txns[0].ID, txns[1].ID}); err != nil {
		t.Fatalf("DeleteTransactions failed: %v", err)
	}
	all, err := store.AllTransactions(ctx)
	if err != nil {
		t.Fatalf("AllTransactions failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d transactions after delete, want 1", len(all))
	}
}

func TestTransactionExists(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	seedTransactions(t, store, []model.Transaction{
		{Kind: model.KindExpense, Description: "Coffee", Amount: 4.50, Category: "Food", Date: "05/03/2024"},
	})

	exists, err := store.TransactionExists(ctx, model.DedupKey{Description: "Coffee", Date: "05/03/2024", Amount: 4.50})
	if err != nil {
		t.Fatalf("TransactionExists failed: %v", err)
	}
	if !exists {
		t.Error("expected stored transaction to be found")
	}

	exists, err = store.TransactionExists(ctx, model.DedupKey{Description: "Coffee", Date: "06/03/2024", Amount: 4.50})
	if err != nil {
		t.Fatalf("TransactionExists failed: %v", err)
	}
	if exists {
		t.Error("different date must not count as a duplicate")
	}
}

func TestSaveTransactionsBatch(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	batch := []model.Transaction{
		{Kind: model.KindIncome, Description: "A", Amount: 1, Category: "General", Date: "01/03/2024"},
		{Kind: model.KindExpense, Description: "B", Amount: 2, Category: "General", Date: "02/03/2024"},
	}
	if err := store.SaveTransactions(ctx, batch); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	all, err := store.AllTransactions(ctx)
	if err != nil {
		t.Fatalf("AllTransactions failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d rows, want 2", len(all))
	}

	// A batch containing an invalid row writes nothing.
	bad := []model.Transaction{
		{Kind: model.KindIncome, Description: "C", Amount: 3, Category: "General", Date: "03/03/2024"},
		{Kind: "transfer", Description: "D", Amount: 4, Category: "General", Date: "04/03/2024"},
	}
	if err := store.SaveTransactions(ctx, bad); err == nil {
		t.Fatal("expected batch with invalid row to fail")
	}
	all, err = store.AllTransactions(ctx)
	if err != nil {
		t.Fatalf("AllTransactions failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("failed batch must not insert rows, got %d", len(all))
	}
}
