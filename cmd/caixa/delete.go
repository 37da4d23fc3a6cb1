package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id> [id...]",
		Short: "Delete one or more transactions",
		Long: `Delete transactions by id. Deletes are irreversible; there is
no history or undo.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteTransactions(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transaction(s)\n", len(ids))
	return nil
}
