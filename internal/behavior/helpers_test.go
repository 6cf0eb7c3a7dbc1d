package behavior

import (
	"time"

	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/model"
)

// fixedNow pins the clock for every detector test. A Saturday mid-month,
// well clear of the end-of-month window.
var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// stubClassifier flags a fixed set of categories as comfort spend.
type stubClassifier struct {
	comfort map[string]bool
}

func newStubClassifier(categories ...string) *stubClassifier {
	comfort := make(map[string]bool, len(categories))
	for _, c := range categories {
		comfort[c] = true
	}
	return &stubClassifier{comfort: comfort}
}

func (s *stubClassifier) IsComfortCategory(categoryID string) bool {
	return s.comfort[categoryID]
}

func testEngine(opts ...Option) *Engine {
	classifier := newStubClassifier("food", "entertainment", "shopping")
	all := append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewEngine(config.DefaultThresholds(), classifier, all...)
}

func expense(id string, amount float64, date time.Time, categoryID string) model.Transaction {
	return model.Transaction{
		ID:         id,
		Date:       date,
		Amount:     -amount,
		Type:       model.TypeExpense,
		CategoryID: categoryID,
	}
}

func income(id string, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:     id,
		Date:   date,
		Amount: amount,
		Type:   model.TypeIncome,
	}
}
