// Package behavior implements the rule-based detection engine that scans a
// transaction history for recurring psychological spending patterns. Every
// detector is a pure function over its explicit inputs: the transaction
// window, a caller-supplied prior confidence, and the threshold table. The
// caller owns persistence of confidences between runs.
package behavior

import (
	"fmt"
	"time"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/model"
)

// CategoryClassifier decides whether a spending category counts as
// emotionally-driven "comfort" spend. Injected so the stress detector can
// be tested against arbitrary category taxonomies.
type CategoryClassifier interface {
	IsComfortCategory(categoryID string) bool
}

// Engine evaluates behavioral spending patterns against a threshold table.
// Engines are stateless between calls and safe for concurrent use.
type Engine struct {
	classifier CategoryClassifier
	now        func() time.Time
	thresholds config.Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of the current time. The
// end-of-month detector is the only component with a real-time dependency;
// tests use this to pin the calendar day.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a detection engine.
func NewEngine(thresholds config.Thresholds, classifier CategoryClassifier, opts ...Option) *Engine {
	e := &Engine{
		thresholds: thresholds,
		classifier: classifier,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// validateTransactions fails fast on structurally malformed input.
// Silently dropping bad records would corrupt the confidence math without
// any signal to the caller.
func validateTransactions(transactions []model.Transaction) error {
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", common.ErrMalformedTransaction, i, err)
		}
	}
	return nil
}

// notDetected builds the uniform non-detection result. The reason is
// always populated so the caller has a human-readable cause to surface.
func notDetected(confidence float64, reason string, extra map[string]any) model.DetectionResult {
	metadata := map[string]any{"reason": reason}
	for k, v := range extra {
		metadata[k] = v
	}
	return model.DetectionResult{
		Detected:   false,
		Confidence: clamp01(confidence),
		Signals:    []model.Signal{},
		Metadata:   metadata,
	}
}
