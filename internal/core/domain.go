package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"expenses/internal/validation"
)

type (
	// Date is a calendar day in YYYY-MM-DD form. The layout sorts
	// lexicographically, so dates compare as plain strings.
	Date string

	Money struct {
		Cents int64
	}

	Expense struct {
		ID          int64
		Date        Date
		Amount      Money
		Category    string
		Description string
	}

	// DateRange is an inclusive filter; an empty bound is open.
	DateRange struct {
		Start Date
		End   Date
	}
)

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidRange     = errors.New("start date cannot be after end date")
	ErrEmptyKeyword     = errors.New("empty keyword")
)

// expenseRecord is the flat view of an Expense checked by the validator.
type expenseRecord struct {
	ID          int64  `validate:"gt=0"`
	Date        string `validate:"iso_date"`
	AmountCents int64  `validate:"non_negative"`
	Category    string `validate:"required"`
	Description string `validate:"required"`
}

// fieldErrors maps expenseRecord fields to the domain sentinels.
var fieldErrors = map[string]error{
	"ID":          ErrInvalidID,
	"Date":        ErrInvalidDate,
	"AmountCents": ErrInvalidAmount,
	"Category":    ErrEmptyCategory,
	"Description": ErrEmptyDescription,
}

// ParseDate validates s as a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	if err := validation.GetValidator().Var(s, "iso_date"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(s), nil
}

// CleanText puts a free-text field on a single line: tabs and line breaks
// become spaces and surrounding blanks are removed.
func CleanText(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, s))
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

func (d Date) String() string {
	return string(d)
}

// IsEmpty reports whether the date is unset, which DateRange treats as open.
func (d Date) IsEmpty() bool {
	return d == ""
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	err := validation.GetValidator().Struct(expenseRecord{
		ID:          e.ID,
		Date:        string(e.Date),
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Description: e.Description,
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if sentinel, ok := fieldErrors[verrs[0].StructField()]; ok {
			return sentinel
		}
	}
	return err
}

// Validate checks both bounds and their order.
func (r DateRange) Validate() error {
	if !r.Start.IsEmpty() {
		if err := r.Start.Validate(); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}
	if !r.End.IsEmpty() {
		if err := r.End.Validate(); err != nil {
			return fmt.Errorf("end: %w", err)
		}
	}
	if !r.Start.IsEmpty() && !r.End.IsEmpty() && r.Start > r.End {
		return ErrInvalidRange
	}
	return nil
}

// IsOpen reports whether the range has no bounds at all.
func (r DateRange) IsOpen() bool {
	return r.Start.IsEmpty() && r.End.IsEmpty()
}

// Contains reports whether d lies within the inclusive range.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsEmpty() && d < r.Start {
		return false
	}
	if !r.End.IsEmpty() && d > r.End {
		return false
	}
	return true
}

// matches reports whether the lowercased keyword occurs in category or description.
func (e Expense) matches(keyword string) bool {
	hay := strings.ToLower(e.Category + " " + e.Description)
	return strings.Contains(hay, keyword)
}
