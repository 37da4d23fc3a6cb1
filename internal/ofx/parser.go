package ofx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aclindsa/ofxgo"

	"github.com/caixa-app/caixa/internal/service"
)

// ErrParse marks a statement document the external library could not read.
var ErrParse = errors.New("statement parse failed")

// Parser implements service.StatementParser on top of ofxgo.
type Parser struct{}

// NewParser creates a new statement parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the (already repaired) document at path and returns its
// records with their signed amounts. Structural failures come back wrapped
// in ErrParse; partial results are never returned.
func (p *Parser) Parse(_ context.Context, path string) ([]service.StatementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	resp, err := ofxgo.ParseResponse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var records []service.StatementRecord
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			records = append(records, statementRecords(stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			records = append(records, statementRecords(stmt.BankTranList)...)
		}
	}

	slog.Debug("parsed statement document",
		"records", len(records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return records, nil
}

func statementRecords(list *ofxgo.TransactionList) []service.StatementRecord {
	if list == nil {
		return nil
	}

	records := make([]service.StatementRecord, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		amount, _ := tx.TrnAmt.Float64()
		records = append(records, service.StatementRecord{
			Amount: amount,
			Memo:   recordMemo(tx),
			Posted: tx.DtPosted.Time,
		})
	}
	return records
}

// recordMemo picks the description field. The memo usually carries the
// fuller text; the name field is the fallback.
func recordMemo(tx ofxgo.Transaction) string {
	if tx.Memo != "" {
		return string(tx.Memo)
	}
	return string(tx.Name)
}
