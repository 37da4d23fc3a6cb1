package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/caixa-app/caixa/internal/importer"
	"github.com/caixa-app/caixa/internal/ofx"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX bank statement",
		Long: `Import a bank statement in OFX format.

Known file defects (bad encodings, malformed institution tags) are
repaired before parsing. Records already present in the ledger (same
description, date and amount) are skipped silently. The whole file is
imported or nothing is: a parse failure never leaves partial rows behind.

Example:
  caixa import ~/Downloads/statement.ofx`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imp := importer.New(store, ofx.NewParser())

	// The pipeline runs on its own goroutine and reports back on a
	// channel; the command just spins the indicator until it does.
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	results := imp.Start(ctx, path)
	var result importer.Result
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

wait:
	for {
		select {
		case result = <-results:
			break wait
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()

	if result.Err != nil {
		return fmt.Errorf("import failed: %w", result.Err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transaction(s), skipped %d duplicate(s)\n",
		result.Inserted, result.Skipped)
	return nil
}
