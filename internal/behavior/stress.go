package behavior

import (
	"sort"
	"time"

	"github.com/centsible/centsible/internal/model"
)

// DetectStressSpending looks for comfort-category purchases clustered in
// the late-night and post-work bands. Both hour bands are half-open
// [start, end); the late-night band wraps past midnight. Spending outside
// comfort categories never triggers detection, however frequent or late:
// the filter is deliberately narrow to avoid false positives on ordinary
// nightlife or travel spend.
func (e *Engine) DetectStressSpending(transactions []model.Transaction, priorConfidence float64) (model.DetectionResult, error) {
	if err := validateTransactions(transactions); err != nil {
		return model.DetectionResult{}, err
	}

	t := e.thresholds.StressSpending
	factor := e.thresholds.Confidence.SmoothingFactor
	cutoff := e.now().AddDate(0, 0, -t.LookbackDays)

	var comfortTimes []time.Time
	lateNight := 0
	postWork := 0
	for i := range transactions {
		txn := &transactions[i]
		if !txn.IsExpense() || txn.Date.Before(cutoff) {
			continue
		}
		if !e.classifier.IsComfortCategory(txn.CategoryID) {
			continue
		}
		comfortTimes = append(comfortTimes, txn.Date)

		hour := txn.Date.Hour()
		if hour >= t.LateNightStartHour || hour < t.LateNightEndHour {
			lateNight++
		}
		if hour >= t.PostWorkStartHour && hour < t.PostWorkEndHour {
			postWork++
		}
	}

	if len(comfortTimes) == 0 {
		return notDetected(smooth(0, priorConfidence, factor),
			"No comfort-category spending in window", map[string]any{
				"window_days": t.LookbackDays,
			}), nil
	}

	maxCluster := maxWithinWindow(comfortTimes, time.Duration(t.ClusterWindowHours)*time.Hour)

	var signals []model.Signal
	if lateNight >= t.MinOccurrences {
		signals = append(signals, model.Signal{
			Type:     model.SignalLateNightComfort,
			Evidence: "late_night",
			Count:    lateNight,
			Strength: clamp01(float64(lateNight) / float64(2*t.MinOccurrences)),
		})
	}
	if postWork >= t.MinOccurrences {
		signals = append(signals, model.Signal{
			Type:     model.SignalPostWorkComfort,
			Evidence: "post_work",
			Count:    postWork,
			Strength: clamp01(float64(postWork) / float64(2*t.MinOccurrences)),
		})
	}

	metadata := map[string]any{
		"comfort_count":    len(comfortTimes),
		"late_night_count": lateNight,
		"post_work_count":  postWork,
		"max_cluster_size": maxCluster,
		"window_days":      t.LookbackDays,
	}

	if len(signals) == 0 {
		metadata["reason"] = "Not enough comfort spending in stress windows"
		return model.DetectionResult{
			Detected:   false,
			Confidence: smooth(0, priorConfidence, factor),
			Signals:    []model.Signal{},
			Metadata:   metadata,
		}, nil
	}

	raw := 0.0
	for _, s := range signals {
		if s.Strength > raw {
			raw = s.Strength
		}
	}

	return model.DetectionResult{
		Detected:   true,
		Confidence: smooth(raw, priorConfidence, factor),
		Signals:    signals,
		Metadata:   metadata,
	}, nil
}

// maxWithinWindow returns the largest number of timestamps that fall
// inside any sliding window of the given length.
func maxWithinWindow(times []time.Time, window time.Duration) int {
	if len(times) == 0 || window <= 0 {
		return 0
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	best := 1
	start := 0
	for end := range sorted {
		for sorted[end].Sub(sorted[start]) > window {
			start++
		}
		if n := end - start + 1; n > best {
			best = n
		}
	}
	return best
}
