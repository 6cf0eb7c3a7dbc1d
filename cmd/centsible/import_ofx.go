package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/model"
	"github.com/centsible/centsible/internal/ofx"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import financial transactions from OFX or QFX (Quicken) files exported
from your bank. Duplicate transactions are skipped by content hash.

Examples:
  centsible import ~/Downloads/chase_jan_2024.qfx
  centsible import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}

			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			slog.Info("Importing OFX files", "file_count", len(allFiles), "dry_run", dryRun)

			parser := ofx.NewParser()
			seen := make(map[string]bool)
			var allTransactions []model.Transaction

			bar := progressbar.Default(int64(len(allFiles)), "importing")
			for _, filePath := range allFiles {
				f, err := os.Open(filePath)
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				transactions, err := parser.ParseFile(ctx, f)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					_ = bar.Add(1)
					continue
				}

				for _, txn := range transactions {
					if !seen[txn.Hash] {
						seen[txn.Hash] = true
						allTransactions = append(allTransactions, txn)
					}
				}
				_ = bar.Add(1)
			}

			if len(allTransactions) == 0 {
				return fmt.Errorf("no transactions parsed from %d file(s)", len(allFiles))
			}

			if dryRun {
				fmt.Printf("Would import %d transaction(s) from %d file(s).\n",
					len(allTransactions), len(allFiles))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveTransactions(ctx, allTransactions); err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			total, err := store.CountTransactions(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d transaction(s); %d total in store.\n",
				len(allTransactions), total)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}
