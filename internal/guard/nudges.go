package guard

import "github.com/centsible/centsible/internal/model"

// nudgePools hold the short templated copy shown when a behavior is
// detected. Every member must pass ValidateMessage; tests enforce the
// round trip the same way they do for the AI fallback pools.
var nudgePools = map[model.BehaviorType][]string{
	model.BehaviorSmallRecurring: {
		"Those small repeat purchases added up again this week.",
		"The same small expense keeps returning.",
		"Frequent little purchases shaped this month's spending.",
	},
	model.BehaviorStressSpending: {
		"Late-night comfort spending showed up again.",
		"Evening comfort purchases clustered after work this week.",
		"Comfort spending leaned into the late hours recently.",
	},
	model.BehaviorEndOfMonth: {
		"Month-end spending moved faster than the earlier pace.",
		"The last stretch of the month ran heavier than usual.",
		"Spending picked up speed as the month closed.",
	},
}

// Nudge returns short-form copy for a detected behavior, passed through
// the short-form validator before it is handed to the caller. Returns an
// empty string for behaviors without a nudge pool.
func (r *Responder) Nudge(behavior model.BehaviorType) string {
	pool, ok := nudgePools[behavior]
	if !ok {
		return ""
	}

	msg := r.pick(pool)
	result := ValidateMessage(msg)
	if result.ShouldBlock {
		return ""
	}
	if !result.IsValid {
		return result.Sanitized
	}
	return msg
}
