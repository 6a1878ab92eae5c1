package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary aggregates a set of expenses.
type Summary struct {
	Count      int
	Total      Money
	Average    decimal.Decimal
	ByCategory []CategoryAmount // largest first
}

// Summarize computes count, total, mean and per-category totals.
// Categories are grouped by exact name and ordered by descending amount,
// ties broken by case-insensitive name.
func Summarize(items []Expense) Summary {
	s := Summary{Count: len(items), Average: decimal.Zero}

	byCat := map[string]int64{}
	for _, e := range items {
		s.Total = s.Total.Add(e.Amount)
		byCat[e.Category] += e.Amount.Cents
	}
	if s.Count > 0 {
		s.Average = s.Total.Decimal().Div(decimal.NewFromInt(int64(s.Count)))
	}

	s.ByCategory = make([]CategoryAmount, 0, len(byCat))
	for name, cents := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
	return s
}

// AverageString formats the mean with two decimal digits.
func (s Summary) AverageString() string {
	return s.Average.StringFixed(2)
}
