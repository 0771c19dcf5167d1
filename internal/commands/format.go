package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"coopledger/internal/core"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(w io.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("invalid id %q", s))
	}
	return id, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		return decimal.Zero, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("invalid amount %q", s))
	}
	return d, nil
}

func parseRate(s string) (decimal.Decimal, error) {
	d, err := core.ParseRate(s)
	if err != nil {
		return decimal.Zero, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("invalid interest rate %q", s))
	}
	return d, nil
}

// parseDate reads a YYYY-MM-DD flag value; empty means not given.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return &t, nil
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func optDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return date(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
