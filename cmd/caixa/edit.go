package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction's description or category",
		Long: `Edit a single transaction in place. Edits are irreversible
overwrites; no history is kept.

Examples:
  caixa edit 42 --description "Corrected memo"
  caixa edit 42 --category Food`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("category", "", "new category name")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	if description == "" && category == "" {
		return fmt.Errorf("nothing to edit: pass --description and/or --category")
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if description != "" {
		if err := store.UpdateDescription(ctx, id, description); err != nil {
			return fmt.Errorf("failed to update description: %w", err)
		}
	}
	if category != "" {
		if err := store.UpdateCategory(ctx, id, category); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d\n", id)
	return nil
}
