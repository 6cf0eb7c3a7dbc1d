// Package config holds the tunable threshold tables that parameterize the
// behavior detectors. Every detector reads from this single source; no
// detector hardcodes a magic number inline, so changing a threshold changes
// behavior without touching detector logic.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ThresholdsVersion identifies the current revision of the default
// threshold table. Bumped whenever a default value changes meaning.
const ThresholdsVersion = 3

// SmallRecurringThresholds parameterize the small-recurring-purchase
// detector.
type SmallRecurringThresholds struct {
	LookbackDays   int     `mapstructure:"lookback_days"`
	MaxAmount      float64 `mapstructure:"max_amount"`
	MinCount       int     `mapstructure:"min_count"`
	MinPerCategory int     `mapstructure:"min_per_category"`
}

// StressSpendingThresholds parameterize the stress-spending detector.
// Hour bands are half-open: [start, end). The late-night band wraps past
// midnight, so LateNightEndHour is smaller than LateNightStartHour.
type StressSpendingThresholds struct {
	LookbackDays       int `mapstructure:"lookback_days"`
	LateNightStartHour int `mapstructure:"late_night_start_hour"`
	LateNightEndHour   int `mapstructure:"late_night_end_hour"`
	PostWorkStartHour  int `mapstructure:"post_work_start_hour"`
	PostWorkEndHour    int `mapstructure:"post_work_end_hour"`
	MinOccurrences     int `mapstructure:"min_occurrences"`
	ClusterWindowHours int `mapstructure:"cluster_window_hours"`
}

// EndOfMonthThresholds parameterize the end-of-month-collapse detector.
type EndOfMonthThresholds struct {
	StartDay        int     `mapstructure:"start_day"`
	SpikeRatio      float64 `mapstructure:"spike_ratio"`
	MinBaselineDays int     `mapstructure:"min_baseline_days"`
}

// SavingHabitThresholds parameterize the saving-habit detector.
type SavingHabitThresholds struct {
	WindowWeeks        int `mapstructure:"window_weeks"`
	MinQualifyingWeeks int `mapstructure:"min_qualifying_weeks"`
	MinPositiveWeeks   int `mapstructure:"min_positive_weeks"`
}

// ConfidenceThresholds control confidence smoothing across detector runs
// and decay of stored confidence between runs.
type ConfidenceThresholds struct {
	SmoothingFactor float64 `mapstructure:"smoothing_factor"`
	DailyDecayRate  float64 `mapstructure:"daily_decay_rate"`
}

// Thresholds is the full tunable configuration for the behavior engine.
type Thresholds struct {
	SmallRecurring SmallRecurringThresholds `mapstructure:"small_recurring"`
	StressSpending StressSpendingThresholds `mapstructure:"stress_spending"`
	EndOfMonth     EndOfMonthThresholds     `mapstructure:"end_of_month"`
	SavingHabit    SavingHabitThresholds    `mapstructure:"saving_habit"`
	Confidence     ConfidenceThresholds     `mapstructure:"confidence"`
}

// DefaultThresholds returns the built-in threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallRecurring: SmallRecurringThresholds{
			LookbackDays:   30,
			MaxAmount:      15.00,
			MinCount:       6,
			MinPerCategory: 3,
		},
		StressSpending: StressSpendingThresholds{
			LookbackDays:       14,
			LateNightStartHour: 22,
			LateNightEndHour:   4,
			PostWorkStartHour:  17,
			PostWorkEndHour:    20,
			MinOccurrences:     2,
			ClusterWindowHours: 3,
		},
		EndOfMonth: EndOfMonthThresholds{
			StartDay:        24,
			SpikeRatio:      1.5,
			MinBaselineDays: 7,
		},
		SavingHabit: SavingHabitThresholds{
			WindowWeeks:        12,
			MinQualifyingWeeks: 3,
			MinPositiveWeeks:   3,
		},
		Confidence: ConfidenceThresholds{
			SmoothingFactor: 0.3,
			DailyDecayRate:  0.02,
		},
	}
}

// LoadThresholds reads threshold overrides from viper, falling back to the
// defaults for anything not set.
func LoadThresholds(v *viper.Viper) (Thresholds, error) {
	t := DefaultThresholds()

	if sub := v.Sub("thresholds"); sub != nil {
		if err := sub.Unmarshal(&t); err != nil {
			return Thresholds{}, fmt.Errorf("failed to parse thresholds config: %w", err)
		}
	}

	if err := t.Validate(); err != nil {
		return Thresholds{}, err
	}

	return t, nil
}

// Validate checks that the threshold table is internally consistent.
func (t Thresholds) Validate() error {
	if t.Confidence.SmoothingFactor <= 0 || t.Confidence.SmoothingFactor > 1 {
		return fmt.Errorf("confidence smoothing factor must be in (0, 1], got %v", t.Confidence.SmoothingFactor)
	}
	if t.Confidence.DailyDecayRate < 0 || t.Confidence.DailyDecayRate >= 1 {
		return fmt.Errorf("daily decay rate must be in [0, 1), got %v", t.Confidence.DailyDecayRate)
	}
	if t.SmallRecurring.MaxAmount <= 0 {
		return fmt.Errorf("small-recurring max amount must be positive, got %v", t.SmallRecurring.MaxAmount)
	}
	if t.SmallRecurring.MinCount < 1 || t.SmallRecurring.MinPerCategory < 1 {
		return fmt.Errorf("small-recurring minimum counts must be at least 1")
	}
	if t.StressSpending.LateNightEndHour >= t.StressSpending.LateNightStartHour {
		return fmt.Errorf("late-night band must wrap past midnight: start %d, end %d",
			t.StressSpending.LateNightStartHour, t.StressSpending.LateNightEndHour)
	}
	if t.StressSpending.PostWorkStartHour >= t.StressSpending.PostWorkEndHour {
		return fmt.Errorf("post-work band must be a same-day range: start %d, end %d",
			t.StressSpending.PostWorkStartHour, t.StressSpending.PostWorkEndHour)
	}
	if t.EndOfMonth.StartDay < 1 || t.EndOfMonth.StartDay > 28 {
		return fmt.Errorf("end-of-month start day must be in [1, 28], got %d", t.EndOfMonth.StartDay)
	}
	if t.EndOfMonth.SpikeRatio <= 1 {
		return fmt.Errorf("spike ratio must exceed 1, got %v", t.EndOfMonth.SpikeRatio)
	}
	if t.SavingHabit.MinQualifyingWeeks < 1 {
		return fmt.Errorf("saving-habit minimum qualifying weeks must be at least 1")
	}
	return nil
}
