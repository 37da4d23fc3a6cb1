package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caixa-app/caixa/internal/config"
	"github.com/caixa-app/caixa/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every transaction to a spreadsheet",
		Long: `Write the full, unfiltered transaction table to an XLSX
workbook (` + export.DefaultFilename + `) in the export directory.`,
		RunE: runExport,
	}

	cmd.Flags().String("dir", "", "directory to write the workbook into (default: current directory)")
	_ = viper.BindPFlag("export.path", cmd.Flags().Lookup("dir"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dir := viper.GetString("export.path")
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve export directory: %w", err)
		}
	}
	dir = config.ExpandPath(dir)

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	path, err := export.New(store).Export(ctx, dir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
