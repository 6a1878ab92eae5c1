package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2026-01-01", true},
		{"2026-12-31", true},
		{"2024-02-29", true}, // leap year
		{"2025-02-29", false},
		{"2026-04-31", false},
		{"2026-13-01", false},
		{"2026-00-10", false},
		{"2026-1-05", false},
		{"2026-01-5", false},
		{"26-01-05", false},
		{"2026/01/05", false},
		{"2026-01-05 ", false},
		{"", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || string(d) != tc.in {
				t.Fatalf("%q expected ok, got %q (err=%v)", tc.in, d, err)
			}
		} else if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:          1,
		Date:        "2026-01-01",
		Amount:      Money{Cents: 0},
		Category:    "Food",
		Description: "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{ID: 0, Date: "2026-01-01", Category: "c", Description: "d"}, ErrInvalidID},
		{Expense{ID: 1, Date: "2026-02-30", Category: "c", Description: "d"}, ErrInvalidDate},
		{Expense{ID: 1, Date: "2026-01-01", Amount: Money{Cents: -1}, Category: "c", Description: "d"}, ErrInvalidAmount},
		{Expense{ID: 1, Date: "2026-01-01", Category: "", Description: "d"}, ErrEmptyCategory},
		{Expense{ID: 1, Date: "2026-01-01", Category: "c", Description: ""}, ErrEmptyDescription},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestDateRangeValidate(t *testing.T) {
	cases := []struct {
		r    DateRange
		want error
	}{
		{DateRange{}, nil},
		{DateRange{Start: "2026-01-01"}, nil},
		{DateRange{End: "2026-01-01"}, nil},
		{DateRange{Start: "2026-01-01", End: "2026-01-01"}, nil},
		{DateRange{Start: "2026-01-02", End: "2026-01-01"}, ErrInvalidRange},
		{DateRange{Start: "bad"}, ErrInvalidDate},
		{DateRange{End: "2026-02-30"}, ErrInvalidDate},
	}
	for i, tc := range cases {
		err := tc.r.Validate()
		if tc.want == nil && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"Food":          "Food",
		"  Food ":       "Food",
		"a\tb":          "a b",
		"line\r\nbreak": "line  break",
		"\t\n":          "",
	}
	for in, want := range cases {
		if got := CleanText(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}
