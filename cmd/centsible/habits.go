package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
)

func habitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "habits",
		Short: "Report on saving habits over the recent weeks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine, thresholds, err := buildEngine()
			if err != nil {
				return err
			}

			start, end := detectionWindow(thresholds)
			transactions, err := store.GetTransactionsByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			result, err := engine.DetectSavingHabit(transactions)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Saving habits"))

			if result.QualifyingWeeks < thresholds.SavingHabit.MinQualifyingWeeks {
				fmt.Println(cli.InfoStyle.Render(
					fmt.Sprintf("Only %d week(s) with both income and spending activity; need %d for a verdict.",
						result.QualifyingWeeks, thresholds.SavingHabit.MinQualifyingWeeks)))
				return nil
			}

			if result.HasSavingHabit {
				fmt.Println(cli.SuccessStyle.Render("A consistent saving habit is present."))
			} else {
				fmt.Println(cli.WarningStyle.Render("No consistent saving habit in the recent weeks."))
			}
			fmt.Printf("  weeks analyzed: %d (net-positive: %d)\n", result.QualifyingWeeks, result.PositiveWeeks)
			fmt.Printf("  consistency: %.0f%%\n", result.Consistency*100)
			fmt.Printf("  average savings rate: %.0f%% of income\n", result.AverageSavingsRate*100)

			return nil
		},
	}
}
