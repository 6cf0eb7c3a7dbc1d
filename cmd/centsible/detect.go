package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/behavior"
	"github.com/centsible/centsible/internal/cli"
	"github.com/centsible/centsible/internal/guard"
	"github.com/centsible/centsible/internal/model"
	"github.com/centsible/centsible/internal/storage"
)

func detectCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run behavioral pattern detection",
		Long: `Scan the stored transaction history for behavioral spending patterns.

Each detector returns a detection verdict with a smoothed confidence.
Confidences persist between runs (with daily decay) so one quiet week
does not erase an established pattern.`,
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

			priors, err := loadPriors(ctx, store, thresholds.Confidence.DailyDecayRate)
			if err != nil {
				return err
			}

			results, err := engine.RunAll(transactions, priors)
			if err != nil {
				return err
			}

			if !dryRun {
				for behaviorType, result := range results {
					if err := store.SaveConfidence(ctx, behaviorType, result.Confidence); err != nil {
						return err
					}
				}
			}

			printResults(results)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run detection without persisting confidences")

	return cmd
}

// loadPriors reads the stored per-detector confidences and applies the
// configured daily decay for the time elapsed since each was written.
func loadPriors(ctx context.Context, store *storage.SQLiteStorage, decayRate float64) (behavior.PriorConfidences, error) {
	priors := make(behavior.PriorConfidences, 3)
	now := time.Now()

	for _, behaviorType := range []model.BehaviorType{
		model.BehaviorSmallRecurring,
		model.BehaviorStressSpending,
		model.BehaviorEndOfMonth,
	} {
		confidence, updatedAt, err := store.GetConfidence(ctx, behaviorType)
		if err != nil {
			return nil, err
		}
		if !updatedAt.IsZero() {
			confidence = behavior.DecayConfidence(confidence, updatedAt, now, decayRate)
		}
		priors[behaviorType] = confidence
	}

	return priors, nil
}

var behaviorLabels = map[model.BehaviorType]string{
	model.BehaviorSmallRecurring: "Small recurring purchases",
	model.BehaviorStressSpending: "Stress spending",
	model.BehaviorEndOfMonth:     "End-of-month collapse",
}

func printResults(results map[model.BehaviorType]model.DetectionResult) {
	fmt.Println(cli.TitleStyle.Render("Behavioral detection"))

	responder := guard.NewResponder()

	for _, behaviorType := range []model.BehaviorType{
		model.BehaviorSmallRecurring,
		model.BehaviorStressSpending,
		model.BehaviorEndOfMonth,
	} {
		result := results[behaviorType]
		label := behaviorLabels[behaviorType]

		if result.Detected {
			fmt.Printf("%s  %s\n",
				cli.WarningStyle.Render("●"),
				cli.BoldStyle.Render(label))
			fmt.Printf("   confidence %.2f, %d signal(s)\n", result.Confidence, len(result.Signals))
			for _, signal := range result.Signals {
				fmt.Printf("   %s\n", cli.SubtleStyle.Render(
					fmt.Sprintf("%s (%s, %d occurrences)", signal.Type, signal.Evidence, signal.Count)))
			}
			if nudge := responder.Nudge(behaviorType); nudge != "" {
				fmt.Printf("   %s\n", cli.InfoStyle.Render(nudge))
			}
		} else {
			fmt.Printf("%s  %s\n",
				cli.SuccessStyle.Render("○"),
				label)
			fmt.Printf("   %s\n", cli.SubtleStyle.Render(
				fmt.Sprintf("confidence %.2f, %s", result.Confidence, result.Reason())))
		}
	}
}
