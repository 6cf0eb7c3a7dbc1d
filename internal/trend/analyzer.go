// Package trend aggregates a transaction window into week-over-week and
// month-over-month category summaries for the insights view. It is pure
// aggregation, independent of the behavior detectors.
package trend

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/centsible/centsible/internal/model"
)

// minInsightChange is the percentage movement below which a category
// change is too small to mention.
const minInsightChange = 20.0

// maxInsights bounds how many derived insight strings are returned.
const maxInsights = 3

// Analyze buckets transactions by week and by month, computes per-period
// expense deltas, and derives a small set of natural-language insights
// from the largest category movements. Zero or single-period data yields
// empty trend slices rather than an error; the insights view must always
// have something to render.
func Analyze(transactions []model.Transaction) (model.TrendAnalysis, error) {
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return model.TrendAnalysis{}, fmt.Errorf("trend analysis: %w", err)
		}
	}

	weekly := bucket(transactions, weekStart)
	monthly := bucket(transactions, monthStart)

	analysis := model.TrendAnalysis{
		WeeklyTrend:    deltas(weekly),
		MonthlyTrend:   deltas(monthly),
		CategoryTrends: categoryTrends(weekly),
		Insights:       []string{},
	}
	analysis.Insights = insights(analysis.CategoryTrends, analysis.MonthlyTrend)

	return analysis, nil
}

// bucket groups transactions into period summaries keyed by period start.
func bucket(transactions []model.Transaction, startOf func(time.Time) time.Time) []model.PeriodSummary {
	byStart := make(map[time.Time]*model.PeriodSummary)
	for i := range transactions {
		txn := &transactions[i]
		start := startOf(txn.Date)
		summary := byStart[start]
		if summary == nil {
			summary = &model.PeriodSummary{
				Start:         start,
				CategoryTotal: make(map[string]float64),
			}
			byStart[start] = summary
		}
		summary.Count++
		switch {
		case txn.IsExpense():
			summary.TotalExpense += txn.AbsAmount()
			summary.CategoryTotal[txn.CategoryID] += txn.AbsAmount()
		case txn.IsIncome():
			summary.TotalIncome += txn.AbsAmount()
		}
	}

	summaries := make([]model.PeriodSummary, 0, len(byStart))
	for _, s := range byStart {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Start.Before(summaries[j].Start) })
	return summaries
}

// deltas computes consecutive period-over-period expense changes. Fewer
// than two periods yields an empty slice.
func deltas(summaries []model.PeriodSummary) []model.PeriodDelta {
	result := []model.PeriodDelta{}
	for i := 1; i < len(summaries); i++ {
		prev, cur := summaries[i-1], summaries[i]
		delta := model.PeriodDelta{
			PeriodStart:  cur.Start,
			TotalExpense: cur.TotalExpense,
			ChangeAbs:    cur.TotalExpense - prev.TotalExpense,
		}
		if prev.TotalExpense > 0 {
			delta.ChangePercent = delta.ChangeAbs / prev.TotalExpense * 100
		} else if cur.TotalExpense > 0 {
			delta.ChangePercent = 100
		}
		result = append(result, delta)
	}
	return result
}

// categoryTrends compares the two most recent weekly buckets per category.
func categoryTrends(weekly []model.PeriodSummary) []model.CategoryTrend {
	if len(weekly) < 2 {
		return []model.CategoryTrend{}
	}

	prev := weekly[len(weekly)-2]
	cur := weekly[len(weekly)-1]

	categories := make(map[string]bool)
	for c := range prev.CategoryTotal {
		categories[c] = true
	}
	for c := range cur.CategoryTotal {
		categories[c] = true
	}

	trends := make([]model.CategoryTrend, 0, len(categories))
	for c := range categories {
		t := model.CategoryTrend{
			CategoryID: c,
			Current:    cur.CategoryTotal[c],
			Previous:   prev.CategoryTotal[c],
		}
		t.ChangeAbs = t.Current - t.Previous
		if t.Previous > 0 {
			t.ChangePercent = t.ChangeAbs / t.Previous * 100
		} else if t.Current > 0 {
			t.ChangePercent = 100
		}
		trends = append(trends, t)
	}

	sort.Slice(trends, func(i, j int) bool {
		if math.Abs(trends[i].ChangeAbs) != math.Abs(trends[j].ChangeAbs) {
			return math.Abs(trends[i].ChangeAbs) > math.Abs(trends[j].ChangeAbs)
		}
		return trends[i].CategoryID < trends[j].CategoryID
	})
	return trends
}

// insights renders the largest movements as short neutral sentences.
func insights(categories []model.CategoryTrend, monthly []model.PeriodDelta) []string {
	result := []string{}

	for _, t := range categories {
		if len(result) >= maxInsights {
			break
		}
		if math.Abs(t.ChangePercent) < minInsightChange || t.Previous == 0 {
			continue
		}
		direction := "rose"
		if t.ChangeAbs < 0 {
			direction = "fell"
		}
		result = append(result, fmt.Sprintf("Spending on %s %s %.0f%% week over week.",
			t.CategoryID, direction, math.Abs(t.ChangePercent)))
	}

	if len(monthly) > 0 {
		last := monthly[len(monthly)-1]
		if math.Abs(last.ChangePercent) >= minInsightChange {
			direction := "above"
			if last.ChangeAbs < 0 {
				direction = "below"
			}
			result = append(result, fmt.Sprintf("This month's spending is running %.0f%% %s last month.",
				math.Abs(last.ChangePercent), direction))
		}
	}

	return result
}

// weekStart truncates a timestamp to the Monday that opens its week.
func weekStart(ts time.Time) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// monthStart truncates a timestamp to the first of its month.
func monthStart(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
}
