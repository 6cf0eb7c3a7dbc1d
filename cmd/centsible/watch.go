package main

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/centsible/centsible/internal/model"
)

func watchCmd() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run detection on a schedule",
		Long: `Keep centsible running and re-evaluate behavioral patterns on a cron
schedule. Each run loads the stored confidences, applies decay, runs all
detectors, and persists the new confidences.`,
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

			runOnce := func() {
				start, end := detectionWindow(thresholds)
				transactions, err := store.GetTransactionsByDateRange(ctx, start, end)
				if err != nil {
					slog.Error("Scheduled detection failed to load transactions", "error", err)
					return
				}

				priors, err := loadPriors(ctx, store, thresholds.Confidence.DailyDecayRate)
				if err != nil {
					slog.Error("Scheduled detection failed to load confidences", "error", err)
					return
				}

				results, err := engine.RunAll(transactions, priors)
				if err != nil {
					slog.Error("Scheduled detection failed", "error", err)
					return
				}

				for behaviorType, result := range results {
					if err := store.SaveConfidence(ctx, behaviorType, result.Confidence); err != nil {
						slog.Error("Failed to persist confidence",
							"detector", behaviorType, "error", err)
					}
				}

				logRunSummary(results)
			}

			c := cron.New()
			if _, err := c.AddFunc(schedule, runOnce); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			slog.Info("Watching for behavioral patterns", "schedule", schedule)
			c.Start()
			defer c.Stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "0 8 * * *", "cron schedule for detection runs")

	return cmd
}

func logRunSummary(results map[model.BehaviorType]model.DetectionResult) {
	detected := make([]string, 0, len(results))
	for behaviorType, result := range results {
		if result.Detected {
			detected = append(detected, string(behaviorType))
		}
	}
	slog.Info("Detection run complete",
		"detectors", len(results),
		"detected", detected)
}
