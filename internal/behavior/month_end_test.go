package behavior

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/model"
)

func TestDetectEndOfMonthCollapse(t *testing.T) {
	// onDay pins the clock to the given day of March 2025.
	onDay := func(day int) Option {
		return WithClock(func() time.Time {
			return time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC)
		})
	}

	marchExpense := func(id string, amount float64, day int) model.Transaction {
		return expense(id, amount, time.Date(2025, 3, day, 10, 0, 0, 0, time.UTC), "misc")
	}

	// Steady $10/day baseline across the first three weeks of the month.
	baseline := func() []model.Transaction {
		txns := make([]model.Transaction, 0, 23)
		for day := 1; day <= 23; day++ {
			txns = append(txns, marchExpense("base", 10.00, day))
		}
		return txns
	}

	t.Run("hard gate before the start day", func(t *testing.T) {
		engine := testEngine(onDay(10))

		// Heavy spending that would otherwise spike the ratio.
		txns := append(baseline(),
			marchExpense("spike1", 500.00, 8),
			marchExpense("spike2", 500.00, 9),
		)

		result, err := engine.DetectEndOfMonthCollapse(txns, 0.5)
		require.NoError(t, err)

		assert.False(t, result.Detected)
		assert.Equal(t, "Before the end-of-month window", result.Reason())
		// No evaluation happened, so the stored confidence is untouched.
		assert.InDelta(t, 0.5, result.Confidence, 1e-9)
	})

	t.Run("spike after the start day fires", func(t *testing.T) {
		engine := testEngine(onDay(26))

		txns := append(baseline(),
			marchExpense("s1", 30.00, 24),
			marchExpense("s2", 30.00, 25),
			marchExpense("s3", 30.00, 26),
		)

		result, err := engine.DetectEndOfMonthCollapse(txns, 0)
		require.NoError(t, err)

		require.True(t, result.Detected)
		require.Len(t, result.Signals, 1)
		assert.Equal(t, model.SignalSpendSpike, result.Signals[0].Type)
		assert.Greater(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
		assert.InDelta(t, 3.0, result.Metadata["spike_ratio"].(float64), 1e-9)
	})

	t.Run("spending within the baseline does not fire", func(t *testing.T) {
		engine := testEngine(onDay(26))

		txns := append(baseline(),
			marchExpense("s1", 10.00, 24),
			marchExpense("s2", 10.00, 25),
			marchExpense("s3", 10.00, 26),
		)

		result, err := engine.DetectEndOfMonthCollapse(txns, 0)
		require.NoError(t, err)

		assert.False(t, result.Detected)
		assert.Equal(t, "Spending is within the month's baseline", result.Reason())
	})

	t.Run("no baseline spending yields a reasoned non-detection", func(t *testing.T) {
		engine := testEngine(onDay(26))

		txns := []model.Transaction{
			marchExpense("s1", 50.00, 25),
		}

		result, err := engine.DetectEndOfMonthCollapse(txns, 0)
		require.NoError(t, err)

		assert.False(t, result.Detected)
		assert.Equal(t, "Not enough baseline spending this month", result.Reason())
	})

	t.Run("empty input before start day still gates", func(t *testing.T) {
		engine := testEngine(onDay(3))

		result, err := engine.DetectEndOfMonthCollapse(nil, 0)
		require.NoError(t, err)

		assert.False(t, result.Detected)
		assert.Equal(t, "Before the end-of-month window", result.Reason())
	})

	t.Run("malformed transaction fails fast", func(t *testing.T) {
		engine := testEngine(onDay(26))

		_, err := engine.DetectEndOfMonthCollapse([]model.Transaction{{ID: "bad"}}, 0)
		require.Error(t, err)
	})
}
