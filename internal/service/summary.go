package service

import (
	"github.com/shopspring/decimal"

	"expense-ledger/internal/models"
)

// Summary is the total and mean amount of a set of expenses.
type Summary struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
}

// Summarize reduces expenses to their total and average. The average of an
// empty set is 0.
func Summarize(expenses []models.Expense) Summary {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	average := decimal.Zero
	if n := len(expenses); n > 0 {
		average = total.Div(decimal.NewFromInt(int64(n)))
	}

	return Summary{
		Total:   total.InexactFloat64(),
		Average: average.InexactFloat64(),
	}
}
