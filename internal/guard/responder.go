package guard

import (
	"math/rand"
	"time"

	"github.com/centsible/centsible/internal/model"
)

// aiFallbackPools hold the canned replies served when an AI response fails
// validation. Every member of every pool must itself pass
// ValidateAIResponse; that round-trip safety is a design invariant and is
// enforced by tests.
var aiFallbackPools = map[model.BehaviorType][]string{
	model.BehaviorSmallRecurring: {
		"Small purchases in the same category have been adding up lately.",
		"A few recurring low-cost purchases showed up across recent weeks.",
		"The same kind of small expense has repeated several times this month.",
	},
	model.BehaviorStressSpending: {
		"Late evening spending on comfort categories appeared more than once recently.",
		"Several comfort purchases landed in the hours right after work.",
		"Night-time comfort spending came up a few times in the recent window.",
	},
	model.BehaviorEndOfMonth: {
		"Spending in the last stretch of the month ran above the earlier pace.",
		"The final days of the month carried a heavier spend rate than the baseline.",
		"Recent daily spending moved past the rhythm set earlier in the month.",
	},
}

// aiFallbackDefault serves unrecognized or empty behavior types.
var aiFallbackDefault = []string{
	"The recent transaction history is ready whenever a closer look helps.",
	"Spending patterns update as new transactions arrive.",
	"The numbers for this period are ready to review.",
}

// Responder selects fallback replies and nudge copy, remembering what it
// served recently so consecutive calls do not repeat themselves. It holds
// the only mutable state in the guard layer.
type Responder struct {
	rng    *rand.Rand
	memory *Recency
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithRand overrides the random source, letting tests pin selection.
func WithRand(rng *rand.Rand) ResponderOption {
	return func(r *Responder) {
		r.rng = rng
	}
}

// WithMemorySize overrides the recency buffer capacity.
func WithMemorySize(size int) ResponderOption {
	return func(r *Responder) {
		r.memory = NewRecency(size)
	}
}

// NewResponder creates a message responder with a five-entry recency
// buffer.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		memory: NewRecency(5),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackResponse returns a random member of the fallback pool for the
// given behavior, using the default pool when the behavior is empty or
// unrecognized.
func (r *Responder) FallbackResponse(behavior model.BehaviorType) string {
	pool, ok := aiFallbackPools[behavior]
	if !ok {
		pool = aiFallbackDefault
	}
	return r.pick(pool)
}

// ResetMemory clears the recency buffer for test isolation.
func (r *Responder) ResetMemory() {
	r.memory.Reset()
}

// pick chooses a random pool member, preferring ones not served recently.
// When the whole pool has been served recently it falls back to a plain
// random choice rather than refusing to answer.
func (r *Responder) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}

	fresh := make([]string, 0, len(pool))
	for _, msg := range pool {
		if !r.memory.Seen(msg) {
			fresh = append(fresh, msg)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}

	msg := fresh[r.rng.Intn(len(fresh))]
	r.memory.Remember(msg)
	return msg
}
