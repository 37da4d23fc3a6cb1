package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func recategorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recategorize <id> [id...]",
		Short: "Move a batch of transactions to a category",
		Long: `Reassign the category of every listed transaction in one go.

Example:
  caixa recategorize 12 15 19 --to Operations`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecategorize,
	}

	cmd.Flags().String("to", "", "target category name (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runRecategorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetString("to")

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.ReassignCategory(ctx, ids, target); err != nil {
		return fmt.Errorf("failed to reassign category: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved %d transaction(s) to %s\n", len(ids), target)
	return nil
}
