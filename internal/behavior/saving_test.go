package behavior

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/model"
)

func TestDetectSavingHabit(t *testing.T) {
	engine := testEngine()

	// weekOf returns the Monday opening the week n weeks before the fixed
	// clock's week.
	weekOf := func(n int) time.Time {
		return weekStart(fixedNow).AddDate(0, 0, -7*n)
	}

	savingWeeks := func(n int, weeklyIncome, weeklyExpense float64) []model.Transaction {
		var txns []model.Transaction
		for w := 1; w <= n; w++ {
			monday := weekOf(w)
			txns = append(txns,
				income(fmt.Sprintf("pay-%d", w), weeklyIncome, monday),
				expense(fmt.Sprintf("spend-%d", w), weeklyExpense, monday.AddDate(0, 0, 2), "groceries"),
			)
		}
		return txns
	}

	t.Run("four saving weeks establish a habit", func(t *testing.T) {
		result, err := engine.DetectSavingHabit(savingWeeks(4, 1000, 600))
		require.NoError(t, err)

		assert.True(t, result.HasSavingHabit)
		assert.Equal(t, 4, result.QualifyingWeeks)
		assert.Equal(t, 4, result.PositiveWeeks)
		assert.InDelta(t, 1.0, result.Consistency, 1e-9)
		assert.InDelta(t, 0.4, result.AverageSavingsRate, 1e-9)
	})

	t.Run("zero transactions yield no habit", func(t *testing.T) {
		result, err := engine.DetectSavingHabit(nil)
		require.NoError(t, err)

		assert.False(t, result.HasSavingHabit)
		assert.Zero(t, result.Consistency)
		assert.Zero(t, result.AverageSavingsRate)
	})

	t.Run("too few qualifying weeks is unconditionally negative", func(t *testing.T) {
		result, err := engine.DetectSavingHabit(savingWeeks(2, 1000, 600))
		require.NoError(t, err)

		assert.False(t, result.HasSavingHabit)
		assert.Zero(t, result.Consistency)
		assert.Equal(t, 2, result.QualifyingWeeks)
	})

	t.Run("weeks without income do not qualify", func(t *testing.T) {
		var txns []model.Transaction
		for w := 1; w <= 4; w++ {
			txns = append(txns, expense(fmt.Sprintf("spend-%d", w), 600, weekOf(w), "groceries"))
		}

		result, err := engine.DetectSavingHabit(txns)
		require.NoError(t, err)

		assert.False(t, result.HasSavingHabit)
		assert.Zero(t, result.QualifyingWeeks)
	})

	t.Run("overspending weeks drag consistency down", func(t *testing.T) {
		txns := savingWeeks(3, 1000, 600)
		// A fourth qualifying week that spends more than it earns.
		monday := weekOf(4)
		txns = append(txns,
			income("pay-4", 1000, monday),
			expense("spend-4", 1400, monday.AddDate(0, 0, 2), "groceries"),
		)

		result, err := engine.DetectSavingHabit(txns)
		require.NoError(t, err)

		assert.True(t, result.HasSavingHabit)
		assert.Equal(t, 4, result.QualifyingWeeks)
		assert.Equal(t, 3, result.PositiveWeeks)
		assert.InDelta(t, 0.75, result.Consistency, 1e-9)
	})

	t.Run("weeks outside the window are ignored", func(t *testing.T) {
		var txns []model.Transaction
		for w := 14; w <= 17; w++ {
			monday := weekOf(w)
			txns = append(txns,
				income(fmt.Sprintf("pay-%d", w), 1000, monday),
				expense(fmt.Sprintf("spend-%d", w), 600, monday.AddDate(0, 0, 2), "groceries"),
			)
		}

		result, err := engine.DetectSavingHabit(txns)
		require.NoError(t, err)

		assert.False(t, result.HasSavingHabit)
		assert.Zero(t, result.QualifyingWeeks)
	})

	t.Run("malformed transaction fails fast", func(t *testing.T) {
		_, err := engine.DetectSavingHabit([]model.Transaction{{ID: "bad"}})
		require.Error(t, err)
	})
}
