// Package export writes the transaction table to a spreadsheet workbook.
package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/caixa-app/caixa/internal/service"
)

// DefaultFilename is the workbook written into the export directory.
const DefaultFilename = "Financeiro.xlsx"

const sheetName = "Transactions"

// Exporter dumps the full, unfiltered transaction table to an XLSX file.
type Exporter struct {
	store service.Store
}

// New creates an exporter over the given store.
func New(store service.Store) *Exporter {
	return &Exporter{store: store}
}

// Export writes the workbook into dir and returns the full path of the
// written file.
func (e *Exporter) Export(ctx context.Context, dir string) (string, error) {
	txns, err := e.store.AllTransactions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load transactions: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Kind", "Description", "Amount", "Category", "Date"}
	for col, h := range headers {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return "", fmt.Errorf("failed to compute header cell: %w", cellErr)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "F1", headerStyle)
	}

	for row, txn := range txns {
		values := []any{txn.ID, string(txn.Kind), txn.Description, txn.Amount, txn.Category, txn.Date}
		for col, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, row+2)
			if cellErr != nil {
				return "", fmt.Errorf("failed to compute cell: %w", cellErr)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("failed to write row %d: %w", row+1, err)
			}
		}
	}

	path := filepath.Join(dir, DefaultFilename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}
