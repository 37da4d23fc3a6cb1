package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caixa-app/caixa/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record a transaction manually",
		Long: `Record a single transaction.

The amount accepts decimal comma or point and must be non-negative;
direction is given by --kind, never by a sign on the amount.

Examples:
  caixa add "Office supplies" 42,50
  caixa add "Invoice #1034" 1200.00 --kind income --category Sales
  caixa add "Lunch" 18.90 --date 05/03/2024`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().StringP("kind", "k", string(model.KindExpense), "income or expense")
	cmd.Flags().StringP("category", "c", model.FallbackCategory, "category name")
	cmd.Flags().StringP("date", "d", "", "date as DD/MM/YYYY (default: today)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	amount, err := model.ParseAmount(args[1])
	if err != nil {
		return err
	}

	kindFlag, _ := cmd.Flags().GetString("kind")
	kind := model.Kind(kindFlag)
	if !kind.Valid() {
		return fmt.Errorf("unknown kind %q: use income or expense", kindFlag)
	}

	category, _ := cmd.Flags().GetString("category")
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = model.FormatDate(nowFunc())
	}
	if !model.ValidDate(date) {
		return fmt.Errorf("malformed date %q: expected DD/MM/YYYY", date)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txn := model.Transaction{
		Kind:        kind,
		Description: args[0],
		Amount:      amount,
		Category:    category,
		Date:        date,
	}
	if err := store.SaveTransaction(ctx, &txn); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded #%d: %s %s %.2f (%s)\n",
		txn.ID, txn.Date, txn.Description, txn.Amount, txn.Kind)
	return nil
}
