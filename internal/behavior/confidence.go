package behavior

import (
	"math"
	"time"
)

// clamp01 bounds a confidence or consistency value to [0, 1].
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// smooth combines a freshly computed raw confidence with the prior stored
// confidence using exponential smoothing. The factor comes from the
// threshold table; a low factor avoids week-to-week confidence whiplash.
func smooth(raw, prior, factor float64) float64 {
	return clamp01(factor*clamp01(raw) + (1-factor)*clamp01(prior))
}

// DecayConfidence applies the configured per-day decay to a stored
// confidence that has not been refreshed since lastUpdated. Callers apply
// this when loading prior state so a pattern seen weeks ago does not carry
// full weight today.
func DecayConfidence(confidence float64, lastUpdated, now time.Time, dailyRate float64) float64 {
	if dailyRate <= 0 || !now.After(lastUpdated) {
		return clamp01(confidence)
	}
	days := now.Sub(lastUpdated).Hours() / 24
	return clamp01(confidence * math.Pow(1-dailyRate, days))
}
