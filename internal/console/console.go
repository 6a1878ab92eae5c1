// Package console implements the interactive numbered menu.
//
// Every operation reads its own follow-up input line by line. Invalid input
// prints an error and returns to the menu; nothing here ends the process
// except Quit or the end of input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/services"
)

const (
	dateHint   = "Use YYYY-MM-DD (example: 2026-02-20)."
	amountHint = "Enter a non-negative number (example: 12.50)."
)

// maxInputBytes bounds a single input line.
const maxInputBytes = 1 << 20

// errInputClosed ends the session when stdin runs out mid-prompt.
var errInputClosed = errors.New("input closed")

type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	svc    *services.ExpenseService
	logger *log.Logger
}

func New(in io.Reader, out io.Writer, svc *services.ExpenseService, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.Discard()
	}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxInputBytes)
	return &Console{
		in:     sc,
		out:    out,
		svc:    svc,
		logger: logger.WithComponent(log.ComponentConsole),
	}
}

// Run loads the repository once, then serves the menu until Quit, end of
// input or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	c.load(ctx, false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu()
		choice, err := c.prompt("Choose an option (1-7): ")
		if err != nil {
			return c.stop(err)
		}

		c.logger.DebugContext(ctx, "Menu choice", log.FieldChoice, choice)

		switch choice {
		case "1":
			err = c.add(ctx)
		case "2":
			err = c.list(ctx)
		case "3":
			err = c.search(ctx)
		case "4":
			err = c.summary(ctx)
		case "5":
			c.save(ctx)
		case "6":
			c.load(ctx, true)
		case "7":
			c.println("Goodbye!")
			return nil
		default:
			c.println("Invalid choice. Try again.")
		}

		if err != nil {
			return c.stop(err)
		}
	}
}

// stop ends the session after input ran out or could not be read.
// Only a read failure is returned to the caller.
func (c *Console) stop(err error) error {
	if errors.Is(err, errInputClosed) {
		c.println("\nGoodbye!")
		return nil
	}
	c.printf("\nError: %v\n", err)
	c.println("Goodbye!")
	return err
}

func (c *Console) printMenu() {
	c.println("\n===== Expense Tracker =====")
	c.println("1) Add expense")
	c.println("2) List expenses")
	c.println("3) Search expenses")
	c.println("4) Summary")
	c.println("5) Save")
	c.println("6) Load")
	c.println("7) Quit")
}

func (c *Console) add(ctx context.Context) error {
	c.heading("Add Expense")

	var in services.AddInput
	var err error

	if in.Date, err = c.prompt("Date (YYYY-MM-DD): "); err != nil {
		return err
	}
	if _, perr := core.ParseDate(in.Date); perr != nil {
		c.println("Error: Invalid date. " + dateHint)
		return nil
	}

	if in.Amount, err = c.prompt("Amount (non-negative): "); err != nil {
		return err
	}
	if _, perr := core.ParseAmount(in.Amount); perr != nil {
		c.println("Error: Invalid amount. " + amountHint)
		return nil
	}

	if in.Category, err = c.prompt("Category: "); err != nil {
		return err
	}
	if in.Category == "" {
		c.println("Error: Category cannot be empty.")
		return nil
	}

	if in.Description, err = c.prompt("Description: "); err != nil {
		return err
	}
	if in.Description == "" {
		c.println("Error: Description cannot be empty.")
		return nil
	}

	e, err := c.svc.Add(ctx, in)
	if err != nil {
		c.printf("Error: %s.\n", describe(err))
		return nil
	}
	c.printf("Added expense with ID %d.\n", e.ID)
	return nil
}

func (c *Console) list(ctx context.Context) error {
	c.heading("List Expenses")
	if c.svc.Len() == 0 {
		c.println("No expenses found.")
		return nil
	}

	r, ok, err := c.promptRange()
	if err != nil || !ok {
		return err
	}

	rows, err := c.svc.List(ctx, r)
	if err != nil {
		c.printf("Error: %s.\n", describe(err))
		return nil
	}
	if len(rows) == 0 {
		c.println("\nNo expenses match your filters.")
		return nil
	}
	c.printTable(rows)
	c.printf("\nShowing %d expense(s).\n", len(rows))
	return nil
}

func (c *Console) search(ctx context.Context) error {
	c.heading("Search Expenses")
	if c.svc.Len() == 0 {
		c.println("No expenses found.")
		return nil
	}

	keyword, err := c.prompt("Keyword (searches Category + Description): ")
	if err != nil {
		return err
	}
	if keyword == "" {
		c.println("Error: keyword cannot be empty.")
		return nil
	}

	r, ok, err := c.promptRange()
	if err != nil || !ok {
		return err
	}

	rows, err := c.svc.Search(ctx, keyword, r)
	if err != nil {
		c.printf("Error: %s.\n", describe(err))
		return nil
	}
	if len(rows) == 0 {
		c.println("\nNo expenses match your search.")
		return nil
	}
	c.printTable(rows)
	c.printf("\nFound %d match(es).\n", len(rows))
	return nil
}

func (c *Console) summary(ctx context.Context) error {
	c.heading("Summary")
	if c.svc.Len() == 0 {
		c.println("No expenses found.")
		return nil
	}

	r, ok, err := c.promptRange()
	if err != nil || !ok {
		return err
	}

	sum, err := c.svc.Summary(ctx, r)
	if err != nil {
		c.printf("Error: %s.\n", describe(err))
		return nil
	}
	if sum.Count == 0 {
		c.println("\nNo expenses match your filters.")
		return nil
	}

	c.printf("\nCount: %d\n", sum.Count)
	c.printf("Total: %s\n", sum.Total)
	c.printf("Average: %s\n", sum.AverageString())

	c.heading("Totals by Category")
	for _, ca := range sum.ByCategory {
		c.printf("%-15s %s\n", ca.Name, ca.Amount)
	}
	return nil
}

func (c *Console) save(ctx context.Context) {
	if err := c.svc.Save(ctx); err != nil {
		c.printf("Error: Could not save to %s: %v\n", c.svc.Location(), errors.Unwrap(err))
		return
	}
	c.printf("Saved to %s.\n", c.svc.Location())
}

func (c *Console) load(ctx context.Context, announce bool) {
	if err := c.svc.Load(ctx); err != nil {
		c.printf("Error: Could not load from %s: %v\n", c.svc.Location(), errors.Unwrap(err))
		return
	}
	if announce {
		c.printf("Loaded from %s.\n", c.svc.Location())
	}
}

// promptRange asks for optional bounds. ok is false when the user typed
// something invalid; the error has already been printed.
func (c *Console) promptRange() (r core.DateRange, ok bool, err error) {
	start, err := c.prompt("Start date (YYYY-MM-DD) [blank for none]: ")
	if err != nil {
		return r, false, err
	}
	if start != "" {
		if r.Start, err = core.ParseDate(start); err != nil {
			c.println("Error: Invalid start date. " + dateHint)
			return r, false, nil
		}
	}

	end, err := c.prompt("End date (YYYY-MM-DD) [blank for none]: ")
	if err != nil {
		return r, false, err
	}
	if end != "" {
		if r.End, err = core.ParseDate(end); err != nil {
			c.println("Error: Invalid end date. " + dateHint)
			return r, false, nil
		}
	}

	if err := r.Validate(); err != nil {
		c.printf("Error: %s.\n", describe(err))
		return r, false, nil
	}
	return r, true, nil
}

func (c *Console) printTable(rows []core.Expense) {
	c.println("\nID  Date       Amount   Category   Description")
	c.println("--  ---------- -------  ---------  ------------------------------")
	for _, e := range rows {
		c.printf("%-3d %-10s %7s  %-9s  %s\n", e.ID, e.Date, e.Amount, e.Category, e.Description)
	}
}

// prompt prints msg and returns the next input line with surrounding
// blanks removed.
func (c *Console) prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) heading(title string) {
	c.println("\n" + title)
	c.println(strings.Repeat("-", len(title)))
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// describe turns domain errors into the sentence shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return "Invalid date. " + strings.TrimSuffix(dateHint, ".")
	case errors.Is(err, core.ErrInvalidAmount):
		return "Invalid amount. " + strings.TrimSuffix(amountHint, ".")
	case errors.Is(err, core.ErrEmptyCategory):
		return "Category cannot be empty"
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description cannot be empty"
	case errors.Is(err, core.ErrEmptyKeyword):
		return "keyword cannot be empty"
	case errors.Is(err, core.ErrInvalidRange):
		return "start date cannot be after end date"
	default:
		return err.Error()
	}
}
