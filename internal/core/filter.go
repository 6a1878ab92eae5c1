package core

import (
	"sort"
	"strings"
)

// FilterByDate returns the expenses whose date lies within r.
// An open range returns a copy of the whole slice.
func FilterByDate(items []Expense, r DateRange) []Expense {
	out := make([]Expense, 0, len(items))
	for _, e := range items {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// Search returns the expenses within r whose category or description
// contains keyword, ignoring case.
func Search(items []Expense, keyword string, r DateRange) ([]Expense, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	keyword = strings.ToLower(keyword)

	var out []Expense
	for _, e := range FilterByDate(items, r) {
		if e.matches(keyword) {
			out = append(out, e)
		}
	}
	return out, nil
}

// SortByDate orders expenses by date, then id, in place.
func SortByDate(items []Expense) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].ID < items[j].ID
	})
}

// NextID returns one more than the largest id in items, or 1 if empty.
func NextID(items []Expense) int64 {
	var maxID int64
	for _, e := range items {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}
