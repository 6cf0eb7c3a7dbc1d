package model

import "time"

// PeriodSummary aggregates spending for one bucketed period (a week or a
// calendar month).
type PeriodSummary struct {
	Start         time.Time
	CategoryTotal map[string]float64
	TotalExpense  float64
	TotalIncome   float64
	Count         int
}

// PeriodDelta captures the change between two consecutive periods.
type PeriodDelta struct {
	PeriodStart   time.Time
	TotalExpense  float64
	ChangeAbs     float64
	ChangePercent float64
}

// CategoryTrend captures the most recent period-over-period movement for
// one category.
type CategoryTrend struct {
	CategoryID    string
	Current       float64
	Previous      float64
	ChangeAbs     float64
	ChangePercent float64
}

// TrendAnalysis is the full aggregation output consumed by the insights
// view. Empty slices, never nil, when there is not enough data to compare
// periods.
type TrendAnalysis struct {
	WeeklyTrend    []PeriodDelta
	MonthlyTrend   []PeriodDelta
	CategoryTrends []CategoryTrend
	Insights       []string
}
