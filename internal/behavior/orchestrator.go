package behavior

import (
	"fmt"

	"github.com/centsible/centsible/internal/model"
)

// PriorConfidences maps each confidence-bearing behavior to the confidence
// stored after the previous run. Missing keys default to zero.
type PriorConfidences map[model.BehaviorType]float64

// RunAll fans out over the three confidence-bearing detectors and returns
// a result for every one of them. Detectors never short-circuit each
// other: all three keys are present in the output even when every result
// is a non-detection. The detectors are pure and independent, so they are
// evaluated sequentially for deterministic resource use; the output would
// be identical under concurrent evaluation.
func (e *Engine) RunAll(transactions []model.Transaction, priors PriorConfidences) (map[model.BehaviorType]model.DetectionResult, error) {
	results := make(map[model.BehaviorType]model.DetectionResult, 3)

	small, err := e.DetectSmallRecurring(transactions, priors[model.BehaviorSmallRecurring])
	if err != nil {
		return nil, fmt.Errorf("small-recurring detection failed: %w", err)
	}
	results[model.BehaviorSmallRecurring] = small

	stress, err := e.DetectStressSpending(transactions, priors[model.BehaviorStressSpending])
	if err != nil {
		return nil, fmt.Errorf("stress-spending detection failed: %w", err)
	}
	results[model.BehaviorStressSpending] = stress

	monthEnd, err := e.DetectEndOfMonthCollapse(transactions, priors[model.BehaviorEndOfMonth])
	if err != nil {
		return nil, fmt.Errorf("end-of-month detection failed: %w", err)
	}
	results[model.BehaviorEndOfMonth] = monthEnd

	return results, nil
}
