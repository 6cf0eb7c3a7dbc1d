package trend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/model"
)

func expense(id string, amount float64, date time.Time, categoryID string) model.Transaction {
	return model.Transaction{
		ID:         id,
		Date:       date,
		Amount:     -amount,
		Type:       model.TypeExpense,
		CategoryID: categoryID,
	}
}

func TestAnalyze(t *testing.T) {
	// Two consecutive weeks inside March 2025: Mondays the 3rd and 10th.
	week1 := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	week2 := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("empty input yields empty trends, not an error", func(t *testing.T) {
		analysis, err := Analyze(nil)
		require.NoError(t, err)

		assert.Empty(t, analysis.WeeklyTrend)
		assert.Empty(t, analysis.MonthlyTrend)
		assert.Empty(t, analysis.CategoryTrends)
		assert.Empty(t, analysis.Insights)
		assert.NotNil(t, analysis.WeeklyTrend)
		assert.NotNil(t, analysis.Insights)
	})

	t.Run("single period yields no deltas", func(t *testing.T) {
		analysis, err := Analyze([]model.Transaction{
			expense("a", 100, week1, "food"),
			expense("b", 50, week1.AddDate(0, 0, 1), "food"),
		})
		require.NoError(t, err)

		assert.Empty(t, analysis.WeeklyTrend)
		assert.Empty(t, analysis.CategoryTrends)
	})

	t.Run("week-over-week change is computed per category", func(t *testing.T) {
		analysis, err := Analyze([]model.Transaction{
			expense("a", 100, week1, "food"),
			expense("b", 150, week2, "food"),
			expense("c", 40, week1.AddDate(0, 0, 2), "transport"),
			expense("d", 40, week2.AddDate(0, 0, 2), "transport"),
		})
		require.NoError(t, err)

		require.Len(t, analysis.WeeklyTrend, 1)
		delta := analysis.WeeklyTrend[0]
		assert.InDelta(t, 190, delta.TotalExpense, 1e-9)
		assert.InDelta(t, 50, delta.ChangeAbs, 1e-9)

		require.Len(t, analysis.CategoryTrends, 2)
		// Sorted by absolute movement, largest first.
		food := analysis.CategoryTrends[0]
		assert.Equal(t, "food", food.CategoryID)
		assert.InDelta(t, 50, food.ChangePercent, 1e-9)

		transport := analysis.CategoryTrends[1]
		assert.Equal(t, "transport", transport.CategoryID)
		assert.InDelta(t, 0, transport.ChangePercent, 1e-9)
	})

	t.Run("large category movement becomes an insight", func(t *testing.T) {
		analysis, err := Analyze([]model.Transaction{
			expense("a", 100, week1, "food"),
			expense("b", 150, week2, "food"),
		})
		require.NoError(t, err)

		require.NotEmpty(t, analysis.Insights)
		assert.Contains(t, analysis.Insights[0], "food")
		assert.Contains(t, analysis.Insights[0], "rose")
	})

	t.Run("small movement stays out of the insights", func(t *testing.T) {
		analysis, err := Analyze([]model.Transaction{
			expense("a", 100, week1, "food"),
			expense("b", 105, week2, "food"),
		})
		require.NoError(t, err)

		assert.Empty(t, analysis.Insights)
	})

	t.Run("month-over-month deltas use calendar months", func(t *testing.T) {
		feb := time.Date(2025, 2, 10, 10, 0, 0, 0, time.UTC)
		mar := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

		analysis, err := Analyze([]model.Transaction{
			expense("a", 200, feb, "food"),
			expense("b", 300, mar, "food"),
		})
		require.NoError(t, err)

		require.Len(t, analysis.MonthlyTrend, 1)
		assert.InDelta(t, 50, analysis.MonthlyTrend[0].ChangePercent, 1e-9)
	})

	t.Run("income does not count toward expense trends", func(t *testing.T) {
		analysis, err := Analyze([]model.Transaction{
			expense("a", 100, week1, "food"),
			expense("b", 100, week2, "food"),
			{ID: "pay", Date: week2, Amount: 5000, Type: model.TypeIncome},
		})
		require.NoError(t, err)

		require.Len(t, analysis.WeeklyTrend, 1)
		assert.InDelta(t, 0, analysis.WeeklyTrend[0].ChangeAbs, 1e-9)
	})

	t.Run("malformed transaction fails fast", func(t *testing.T) {
		_, err := Analyze([]model.Transaction{{ID: "bad"}})
		require.Error(t, err)
	})
}
