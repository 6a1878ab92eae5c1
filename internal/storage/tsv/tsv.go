// Package tsv persists expenses to a tab-separated text file.
//
// The file holds a header line followed by one record per line:
//
//	id	date	amount	category	description
//
// Amounts are written with exactly two decimals. Saving rewrites the whole
// file, ordered by date then id.
package tsv

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"expenses/internal/core"
	"expenses/internal/log"
)

// Header is the first line of every file written by Save.
const Header = "id\tdate\tamount\tcategory\tdescription"

const maxLineBytes = 1 << 20

type Repository struct {
	path   string
	logger *log.Logger
}

func New(path string, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Discard()
	}
	return &Repository{path: path, logger: logger.WithComponent(log.ComponentStorage)}
}

func (r *Repository) Location() string {
	return r.path
}

// Load implements ports.ExpenseLoader. A missing file is created with just
// the header. Lines that cannot be parsed are skipped.
func (r *Repository) Load(ctx context.Context) ([]core.Expense, error) {
	if err := r.ensureFile(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	items, skipped, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if skipped > 0 {
		r.logger.DebugContext(ctx, "Skipped malformed lines",
			log.FieldOperation, log.OpLoad,
			log.FieldLocation, r.path,
			log.FieldSkipped, skipped)
	}
	return items, nil
}

// Save implements ports.ExpenseSaver.
func (r *Repository) Save(ctx context.Context, items []core.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, items); err != nil {
		return err
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func (r *Repository) ensureFile() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(r.path, []byte(Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", r.path, err)
	}
	return nil
}

// Decode reads records from rd and reports how many non-blank lines were
// dropped as malformed.
func Decode(rd io.Reader) (items []core.Expense, skipped int, err error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	first := true
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if first {
			first = false
			if isHeader(line) {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		items = append(items, e)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, err
	}
	return items, skipped, nil
}

// Encode writes the header and items sorted by date then id.
func Encode(w io.Writer, items []core.Expense) error {
	rows := append([]core.Expense(nil), items...)
	core.SortByDate(rows)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	for _, e := range rows {
		fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.Amount, clean(e.Category), clean(e.Description))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	return nil
}

func isHeader(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "id\tdate\tamount")
}

func parseLine(line string) (core.Expense, bool) {
	parts := strings.SplitN(line, "\t", 5)
	if len(parts) < 5 {
		return core.Expense{}, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || id <= 0 {
		return core.Expense{}, false
	}
	amount, err := core.ParseAmount(strings.TrimSpace(parts[2]))
	if err != nil {
		return core.Expense{}, false
	}
	return core.Expense{
		ID:          id,
		Date:        core.Date(parts[1]),
		Amount:      amount,
		Category:    parts[3],
		Description: parts[4],
	}, true
}

// clean keeps a field on one column. Records added through the service are
// already clean; this covers values set by other callers.
func clean(s string) string {
	return core.CleanText(s)
}
