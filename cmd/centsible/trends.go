package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/trend"
)

func trendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show week-over-week and month-over-month spending trends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			_, thresholds, err := buildEngine()
			if err != nil {
				return err
			}

			start, end := detectionWindow(thresholds)
			transactions, err := store.GetTransactionsByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			analysis, err := trend.Analyze(transactions)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Spending trends"))

			if len(analysis.WeeklyTrend) == 0 {
				fmt.Println(cli.InfoStyle.Render("Not enough history yet for period comparisons."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "WEEK\tSPEND\tCHANGE")
			for _, d := range analysis.WeeklyTrend {
				fmt.Fprintf(w, "%s\t%.2f\t%+.1f%%\n",
					d.PeriodStart.Format("2006-01-02"), d.TotalExpense, d.ChangePercent)
			}
			_ = w.Flush()

			if len(analysis.CategoryTrends) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("Category movement (last two weeks)"))
				for _, t := range analysis.CategoryTrends {
					fmt.Printf("  %-16s %+.1f%% (%.2f → %.2f)\n",
						t.CategoryID, t.ChangePercent, t.Previous, t.Current)
				}
			}

			if len(analysis.Insights) > 0 {
				fmt.Println()
				for _, insight := range analysis.Insights {
					fmt.Println(cli.InfoStyle.Render(insight))
				}
			}

			return nil
		},
	}
}
