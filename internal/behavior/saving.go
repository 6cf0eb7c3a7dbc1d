package behavior

import (
	"time"

	"github.com/centsible/centsible/internal/model"
)

// weeklyFlow accumulates the money movement inside one week bucket.
type weeklyFlow struct {
	income  float64
	expense float64
}

// DetectSavingHabit buckets the window into weeks and measures how
// consistently income outpaces spending. Only weeks with both income and
// expense activity qualify; with fewer than the configured minimum of
// qualifying weeks the result is unconditionally negative. This detector
// is descriptive rather than a nudge trigger, so it carries no smoothed
// confidence and no persistence contract.
func (e *Engine) DetectSavingHabit(transactions []model.Transaction) (model.SavingHabitResult, error) {
	if err := validateTransactions(transactions); err != nil {
		return model.SavingHabitResult{}, err
	}

	t := e.thresholds.SavingHabit
	cutoff := e.now().AddDate(0, 0, -7*t.WindowWeeks)

	weeks := make(map[time.Time]*weeklyFlow)
	for i := range transactions {
		txn := &transactions[i]
		if txn.Date.Before(cutoff) {
			continue
		}
		start := weekStart(txn.Date)
		flow := weeks[start]
		if flow == nil {
			flow = &weeklyFlow{}
			weeks[start] = flow
		}
		switch {
		case txn.IsIncome():
			flow.income += txn.AbsAmount()
		case txn.IsExpense():
			flow.expense += txn.AbsAmount()
		}
	}

	qualifying := 0
	positive := 0
	var rateSum float64
	for _, flow := range weeks {
		if flow.income <= 0 || flow.expense <= 0 {
			continue
		}
		qualifying++
		rate := (flow.income - flow.expense) / flow.income
		if rate > 0 {
			positive++
			rateSum += rate
		}
	}

	if qualifying < t.MinQualifyingWeeks {
		return model.SavingHabitResult{
			HasSavingHabit:  false,
			Consistency:     0,
			QualifyingWeeks: qualifying,
		}, nil
	}

	result := model.SavingHabitResult{
		HasSavingHabit:  positive >= t.MinPositiveWeeks,
		Consistency:     clamp01(float64(positive) / float64(qualifying)),
		QualifyingWeeks: qualifying,
		PositiveWeeks:   positive,
	}
	if positive > 0 {
		result.AverageSavingsRate = rateSum / float64(positive)
	}

	return result, nil
}

// weekStart truncates a timestamp to the Monday that opens its week.
func weekStart(ts time.Time) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
