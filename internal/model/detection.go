package model

// BehaviorType names a behavioral spending pattern the engine can detect.
type BehaviorType string

const (
	// BehaviorSmallRecurring is the small-recurring-purchase pattern.
	BehaviorSmallRecurring BehaviorType = "small_recurring"
	// BehaviorStressSpending is the stress-spending pattern.
	BehaviorStressSpending BehaviorType = "stress_spending"
	// BehaviorEndOfMonth is the end-of-month spending collapse pattern.
	BehaviorEndOfMonth BehaviorType = "end_of_month"
)

// SignalType tags a discrete piece of evidence inside a DetectionResult.
type SignalType string

const (
	// SignalLateNightComfort marks comfort-category spend in the
	// late-night band.
	SignalLateNightComfort SignalType = "late_night_comfort"
	// SignalPostWorkComfort marks comfort-category spend in the
	// post-work evening band.
	SignalPostWorkComfort SignalType = "post_work_comfort"
	// SignalCategoryCluster marks a category carrying enough small
	// purchases to anchor a recurring pattern on its own.
	SignalCategoryCluster SignalType = "category_cluster"
	// SignalSpendSpike marks end-of-period spend running above the
	// period baseline.
	SignalSpendSpike SignalType = "spend_spike"
)

// Signal is one piece of evidence contributing to a detector's verdict.
// Signals are ephemeral and live only inside a single DetectionResult.
type Signal struct {
	Type     SignalType
	Evidence string // Supporting detail, e.g. the category anchoring the signal
	Strength float64
	Count    int
}

// DetectionResult is the output of a single detector invocation. It is
// produced fresh on every call; persisting the confidence between runs is
// the caller's responsibility.
type DetectionResult struct {
	Metadata   map[string]any
	Signals    []Signal
	Confidence float64
	Detected   bool
}

// Reason returns the human-readable cause recorded for a non-detection,
// or an empty string when none was recorded.
func (r *DetectionResult) Reason() string {
	if s, ok := r.Metadata["reason"].(string); ok {
		return s
	}
	return ""
}

// SavingHabitResult describes saving behavior over the analyzed window.
// Unlike DetectionResult it carries no smoothed confidence; it is purely
// descriptive and has no persistence contract.
type SavingHabitResult struct {
	HasSavingHabit     bool
	Consistency        float64
	AverageSavingsRate float64
	QualifyingWeeks    int
	PositiveWeeks      int
}

// ValidationResult is the outcome of running a candidate message through
// a validator rulebook.
type ValidationResult struct {
	Sanitized   string
	Violations  []string
	IsValid     bool
	ShouldBlock bool
}
