package behavior

import (
	"time"

	"github.com/centsible/centsible/internal/model"
)

// DetectEndOfMonthCollapse compares the spend rate in the final stretch of
// the month against the month's earlier baseline. The detector is hard
// gated on the calendar: before the configured start day it always returns
// not-detected regardless of transaction content, leaving the stored
// confidence untouched since no evaluation happened.
func (e *Engine) DetectEndOfMonthCollapse(transactions []model.Transaction, priorConfidence float64) (model.DetectionResult, error) {
	if err := validateTransactions(transactions); err != nil {
		return model.DetectionResult{}, err
	}

	t := e.thresholds.EndOfMonth
	factor := e.thresholds.Confidence.SmoothingFactor
	now := e.now()
	day := now.Day()

	if day < t.StartDay {
		return notDetected(priorConfidence, "Before the end-of-month window", map[string]any{
			"current_day": day,
			"start_day":   t.StartDay,
		}), nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := time.Date(now.Year(), now.Month(), t.StartDay, 0, 0, 0, 0, now.Location())

	var baselineSpend, recentSpend float64
	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() || txn.Date.Before(monthStart) || txn.Date.After(now) {
			continue
		}
		if txn.Date.Before(windowStart) {
			baselineSpend += txn.AbsAmount()
		} else {
			recentSpend += txn.AbsAmount()
		}
	}

	baselineDays := t.StartDay - 1
	recentDays := day - t.StartDay + 1

	if baselineDays < t.MinBaselineDays || baselineSpend == 0 {
		return notDetected(smooth(0, priorConfidence, factor),
			"Not enough baseline spending this month", map[string]any{
				"baseline_spend": baselineSpend,
				"recent_spend":   recentSpend,
			}), nil
	}

	baselineRate := baselineSpend / float64(baselineDays)
	recentRate := recentSpend / float64(recentDays)
	ratio := recentRate / baselineRate

	metadata := map[string]any{
		"baseline_daily": baselineRate,
		"recent_daily":   recentRate,
		"spike_ratio":    ratio,
		"current_day":    day,
	}

	if ratio < t.SpikeRatio {
		metadata["reason"] = "Spending is within the month's baseline"
		return model.DetectionResult{
			Detected:   false,
			Confidence: smooth(0, priorConfidence, factor),
			Signals:    []model.Signal{},
			Metadata:   metadata,
		}, nil
	}

	raw := clamp01(ratio / (2 * t.SpikeRatio))

	return model.DetectionResult{
		Detected:   true,
		Confidence: smooth(raw, priorConfidence, factor),
		Signals: []model.Signal{{
			Type:     model.SignalSpendSpike,
			Evidence: "daily_rate",
			Count:    1,
			Strength: raw,
		}},
		Metadata: metadata,
	}, nil
}
