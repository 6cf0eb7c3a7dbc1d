package behavior

import (
	"sort"

	"github.com/centsible/centsible/internal/model"
)

// reasonNotEnoughSmall is surfaced both in the UI and in tests, keep the
// wording stable.
const reasonNotEnoughSmall = "Not enough small transactions"

// DetectSmallRecurring scans the lookback window for habitual small
// purchases. A pattern needs both enough small transactions overall and at
// least one category dense enough to anchor the habit; a diffuse mix of
// unrelated small purchases never fires. The returned confidence blends
// the raw score with the caller's stored prior via exponential smoothing.
func (e *Engine) DetectSmallRecurring(transactions []model.Transaction, priorConfidence float64) (model.DetectionResult, error) {
	if err := validateTransactions(transactions); err != nil {
		return model.DetectionResult{}, err
	}

	t := e.thresholds.SmallRecurring
	factor := e.thresholds.Confidence.SmoothingFactor
	cutoff := e.now().AddDate(0, 0, -t.LookbackDays)

	byCategory := make(map[string]int)
	total := 0
	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() || txn.Date.Before(cutoff) {
			continue
		}
		if txn.AbsAmount() >= t.MaxAmount {
			continue
		}
		byCategory[txn.CategoryID]++
		total++
	}

	if total < t.MinCount {
		return notDetected(smooth(0, priorConfidence, factor), reasonNotEnoughSmall, map[string]any{
			"small_count": total,
			"window_days": t.LookbackDays,
		}), nil
	}

	topCategory := ""
	topCount := 0
	var signals []model.Signal
	for cat, count := range byCategory {
		if count > topCount || (count == topCount && cat < topCategory) {
			topCategory, topCount = cat, count
		}
		if count >= t.MinPerCategory {
			signals = append(signals, model.Signal{
				Type:     model.SignalCategoryCluster,
				Evidence: cat,
				Count:    count,
				Strength: clamp01(float64(count) / float64(total)),
			})
		}
	}
	// Map iteration order is random; keep results deterministic.
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Count != signals[j].Count {
			return signals[i].Count > signals[j].Count
		}
		return signals[i].Evidence < signals[j].Evidence
	})

	if topCount < t.MinPerCategory {
		return notDetected(smooth(0, priorConfidence, factor),
			"Small transactions are spread across too many categories", map[string]any{
				"small_count":  total,
				"top_category": topCategory,
				"window_days":  t.LookbackDays,
			}), nil
	}

	// Raw score grows with overall frequency and with the density of the
	// dominant category, saturating at twice each minimum.
	frequency := clamp01(float64(total) / float64(2*t.MinCount))
	density := clamp01(float64(topCount) / float64(2*t.MinPerCategory))
	raw := 0.5*frequency + 0.5*density

	return model.DetectionResult{
		Detected:   true,
		Confidence: smooth(raw, priorConfidence, factor),
		Signals:    signals,
		Metadata: map[string]any{
			"small_count":  total,
			"top_category": topCategory,
			"top_count":    topCount,
			"window_days":  t.LookbackDays,
		},
	}, nil
}
