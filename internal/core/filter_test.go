package core

import (
	"errors"
	"testing"
)

func sample() []Expense {
	return []Expense{
		{ID: 3, Date: "2026-01-05", Amount: Money{Cents: 2000}, Category: "Transport", Description: "Train ticket"},
		{ID: 1, Date: "2026-01-01", Amount: Money{Cents: 1000}, Category: "Food", Description: "Groceries"},
		{ID: 2, Date: "2026-01-03", Amount: Money{Cents: 450}, Category: "food", Description: "Coffee beans"},
		{ID: 4, Date: "2026-01-05", Amount: Money{Cents: 300}, Category: "Misc", Description: "Bus to market"},
	}
}

func ids(items []Expense) []int64 {
	out := make([]int64, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterByDate(t *testing.T) {
	items := sample()
	cases := []struct {
		name string
		r    DateRange
		want []int64
	}{
		{"open", DateRange{}, []int64{3, 1, 2, 4}},
		{"inclusive both", DateRange{Start: "2026-01-01", End: "2026-01-03"}, []int64{1, 2}},
		{"start only", DateRange{Start: "2026-01-04"}, []int64{3, 4}},
		{"end only", DateRange{End: "2026-01-01"}, []int64{1}},
		{"empty window", DateRange{Start: "2026-02-01", End: "2026-02-28"}, []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(FilterByDate(items, tc.r))
			if !equalIDs(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	items := sample()

	got, err := Search(items, "FOOD", DateRange{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Fatalf("expected category matches, got %v", ids(got))
	}

	got, _ = Search(items, "bus", DateRange{})
	if !equalIDs(ids(got), []int64{4}) {
		t.Fatalf("expected description match, got %v", ids(got))
	}

	got, _ = Search(items, "o", DateRange{Start: "2026-01-05"})
	if !equalIDs(ids(got), []int64{3, 4}) {
		t.Fatalf("expected date filter applied first, got %v", ids(got))
	}

	// category and description are joined by a space, not glued together
	got, _ = Search(items, "foodgroceries", DateRange{})
	if len(got) != 0 {
		t.Fatalf("expected no match across the field boundary, got %v", ids(got))
	}

	if _, err := Search(items, "", DateRange{}); !errors.Is(err, ErrEmptyKeyword) {
		t.Fatalf("expected ErrEmptyKeyword, got %v", err)
	}
}

func TestSortByDate(t *testing.T) {
	items := sample()
	SortByDate(items)
	if !equalIDs(ids(items), []int64{1, 2, 3, 4}) {
		t.Fatalf("unexpected order: %v", ids(items))
	}
}

func TestNextID(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Fatalf("expected 1 for empty, got %d", got)
	}
	if got := NextID(sample()); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	gappy := []Expense{{ID: 7}, {ID: 2}}
	if got := NextID(gappy); got != 8 {
		t.Fatalf("expected max+1 = 8, got %d", got)
	}
}
