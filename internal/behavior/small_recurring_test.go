package behavior

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centsible/centsible/internal/model"
)

func TestDetectSmallRecurring(t *testing.T) {
	engine := testEngine()

	daysAgo := func(d int) time.Time { return fixedNow.AddDate(0, 0, -d) }

	smallSameCategory := func(n int) []model.Transaction {
		txns := make([]model.Transaction, 0, n)
		for i := 0; i < n; i++ {
			txns = append(txns, expense("coffee", 4.50, daysAgo(i+1), "coffee"))
		}
		return txns
	}

	tests := []struct {
		name         string
		wantReason   string
		transactions []model.Transaction
		wantDetected bool
	}{
		{
			name:         "empty transaction list",
			transactions: nil,
			wantDetected: false,
			wantReason:   "Not enough small transactions",
		},
		{
			name: "two small transactions is not a pattern",
			transactions: []model.Transaction{
				expense("a", 5.00, daysAgo(1), "coffee"),
				expense("b", 7.00, daysAgo(3), "coffee"),
			},
			wantDetected: false,
			wantReason:   "Not enough small transactions",
		},
		{
			name: "all transactions above the small ceiling",
			transactions: []model.Transaction{
				expense("a", 80.00, daysAgo(1), "groceries"),
				expense("b", 120.00, daysAgo(2), "groceries"),
				expense("c", 95.00, daysAgo(4), "rent"),
				expense("d", 60.00, daysAgo(5), "groceries"),
				expense("e", 75.00, daysAgo(8), "utilities"),
				expense("f", 55.00, daysAgo(9), "groceries"),
			},
			wantDetected: false,
			wantReason:   "Not enough small transactions",
		},
		{
			name:         "six small same-category purchases fire",
			transactions: smallSameCategory(6),
			wantDetected: true,
		},
		{
			name: "diffuse small purchases across categories do not fire",
			transactions: []model.Transaction{
				expense("a", 4.00, daysAgo(1), "cat1"),
				expense("b", 4.00, daysAgo(2), "cat2"),
				expense("c", 4.00, daysAgo(3), "cat3"),
				expense("d", 4.00, daysAgo(4), "cat4"),
				expense("e", 4.00, daysAgo(5), "cat5"),
				expense("f", 4.00, daysAgo(6), "cat6"),
			},
			wantDetected: false,
			wantReason:   "Small transactions are spread across too many categories",
		},
		{
			name: "old small purchases fall outside the lookback",
			transactions: []model.Transaction{
				expense("a", 4.00, daysAgo(40), "coffee"),
				expense("b", 4.00, daysAgo(41), "coffee"),
				expense("c", 4.00, daysAgo(42), "coffee"),
				expense("d", 4.00, daysAgo(43), "coffee"),
				expense("e", 4.00, daysAgo(44), "coffee"),
				expense("f", 4.00, daysAgo(45), "coffee"),
			},
			wantDetected: false,
			wantReason:   "Not enough small transactions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.DetectSmallRecurring(tt.transactions, 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDetected, result.Detected)
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)

			if !tt.wantDetected {
				assert.Equal(t, tt.wantReason, result.Reason())
				assert.Empty(t, result.Signals)
			}
		})
	}

	t.Run("detection emits a category cluster signal", func(t *testing.T) {
		result, err := engine.DetectSmallRecurring(smallSameCategory(6), 0)
		require.NoError(t, err)

		require.True(t, result.Detected)
		require.Len(t, result.Signals, 1)
		assert.Equal(t, model.SignalCategoryCluster, result.Signals[0].Type)
		assert.Equal(t, "coffee", result.Signals[0].Evidence)
		assert.Equal(t, 6, result.Signals[0].Count)
		assert.Greater(t, result.Confidence, 0.0)
	})

	t.Run("prior confidence is smoothed, not replaced", func(t *testing.T) {
		detected, err := engine.DetectSmallRecurring(smallSameCategory(6), 0.8)
		require.NoError(t, err)
		fresh, err := engine.DetectSmallRecurring(smallSameCategory(6), 0)
		require.NoError(t, err)

		assert.Greater(t, detected.Confidence, fresh.Confidence)
		assert.Less(t, detected.Confidence, 1.0)
	})

	t.Run("non-detection decays the prior instead of zeroing it", func(t *testing.T) {
		result, err := engine.DetectSmallRecurring(nil, 1.0)
		require.NoError(t, err)

		assert.False(t, result.Detected)
		assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	})

	t.Run("malformed transaction fails fast", func(t *testing.T) {
		_, err := engine.DetectSmallRecurring([]model.Transaction{{ID: "bad"}}, 0)
		require.Error(t, err)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		txns := smallSameCategory(6)
		original := make([]model.Transaction, len(txns))
		copy(original, txns)

		_, err := engine.DetectSmallRecurring(txns, 0.5)
		require.NoError(t, err)
		assert.Equal(t, original, txns)
	})
}
