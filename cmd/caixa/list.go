package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caixa-app/caixa/internal/cli"
	"github.com/caixa-app/caixa/internal/model"
	"github.com/caixa-app/caixa/internal/storage"
	"github.com/caixa-app/caixa/internal/view"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with filters, sorting, and totals",
		Long: `List transactions matching the given filters.

The income and expense totals shown are computed over the full filtered
set, not only the rows displayed, so "totals for this month" style views
work with any display limit.

Examples:
  # Everything, newest first
  caixa list

  # This month's groceries, largest first
  caixa list --range current-month --category Food --sort amount-desc

  # A custom period
  caixa list --range custom --from 01/01/2024 --to 31/03/2024`,
		RunE: runList,
	}

	cmd.Flags().StringP("search", "s", "", "case-insensitive substring match on description")
	cmd.Flags().StringP("category", "c", "", "exact category filter (empty = all)")
	cmd.Flags().StringP("range", "r", "all", "date range: all, current-month, previous-month, custom")
	cmd.Flags().String("from", "", "custom range start (DD/MM/YYYY)")
	cmd.Flags().String("to", "", "custom range end (DD/MM/YYYY)")
	cmd.Flags().String("sort", "date-desc", "sort: date-desc, date-asc, amount-desc, amount-asc")
	cmd.Flags().IntP("limit", "n", view.DefaultLimit, "maximum rows to display")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	rangeMode, _ := cmd.Flags().GetString("range")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	sortKey, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	criteria := model.Criteria{
		Search:   search,
		Category: category,
		Range:    model.DateRange(rangeMode),
		Start:    from,
		End:      to,
		Sort:     model.SortKey(sortKey),
	}

	state := view.NewState()
	state.SetCriteria(criteria)
	if limit > view.DefaultLimit {
		state.LoadMore(limit - view.DefaultLimit)
	}

	rows, err := store.ListTransactions(ctx, criteria)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	summary, err := store.Summarize(ctx, criteria)
	if err != nil {
		return fmt.Errorf("failed to summarize transactions: %w", err)
	}

	title, err := store.Setting(ctx, storage.SettingTitle)
	if err != nil {
		title = "FINANCE TRACKER"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.TitleStyle.Render(title))
	fmt.Fprintln(out, cli.RatioBar(summary.Ratio(), 40))
	fmt.Fprintf(out, "%s  %s  %s\n\n",
		cli.BoldStyle.Render(fmt.Sprintf("Balance: %.2f", summary.Net())),
		cli.IncomeStyle.Render(fmt.Sprintf("Income: %.2f", summary.TotalIncome)),
		cli.ExpenseStyle.Render(fmt.Sprintf("Expense: %.2f", summary.TotalExpense)))

	visible := state.Visible(rows)
	if limit > 0 && limit < len(visible) {
		visible = visible[:limit]
	}
	for _, txn := range visible {
		amountStyle := cli.ExpenseStyle
		if txn.Kind == model.KindIncome {
			amountStyle = cli.IncomeStyle
		}
		fmt.Fprintf(out, "%6d  %s  %-40s  %-15s  %s\n",
			txn.ID,
			cli.SubtleStyle.Render(txn.Date),
			txn.Description,
			cli.SubtleStyle.Render(txn.Category),
			amountStyle.Render(fmt.Sprintf("%10.2f", txn.Amount)))
	}

	if len(rows) > len(visible) {
		fmt.Fprintln(out, cli.SubtleStyle.Render(
			fmt.Sprintf("... %d more (raise --limit to show)", len(rows)-len(visible))))
	}

	return nil
}
