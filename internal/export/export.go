// Package export writes the ledger's members, loans and contributions to
// flat files for use outside the application.
package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	timestampLayout = "20060102_150405"
	dateLayout      = "2006-01-02"
)

// Column headers of the exported tables.
var (
	MemberHeaders       = []string{"ID", "Name", "Contact", "Email", "Status", "Join Date"}
	LoanHeaders         = []string{"ID", "Member ID", "Amount", "Interest %", "Repaid", "Status", "Start Date"}
	ContributionHeaders = []string{"ID", "Member ID", "Amount", "Type", "Date", "Month"}
)

// Source is the read side of the ledger the exporter needs.
type Source interface {
	ListMembers(ctx context.Context) ([]core.Member, error)
	ListLoans(ctx context.Context) ([]core.Loan, error)
	ListContributions(ctx context.Context) ([]core.Contribution, error)
}

// Snapshot is the data of one export run.
type Snapshot struct {
	Members       []core.Member
	Loans         []core.Loan
	Contributions []core.Contribution
}

type Exporter struct {
	src    Source
	dir    string
	format Format
	logger *log.Logger
	now    func() time.Time
}

func New(src Source, dir string, format Format, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Discard()
	}
	return &Exporter{
		src:    src,
		dir:    dir,
		format: format,
		logger: logger.WithComponent(log.ComponentExport),
		now:    time.Now,
	}
}

// Export writes the current ledger contents into the export directory and
// returns the paths of the files it created.
func (e *Exporter) Export(ctx context.Context) ([]string, error) {
	snap, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	stamp := e.now().Format(timestampLayout)

	var paths []string
	switch e.format {
	case FormatCSV, "":
		paths, err = writeCSVFiles(e.dir, stamp, snap)
	case FormatXLSX:
		var path string
		path, err = writeWorkbook(e.dir, stamp, snap)
		paths = []string{path}
	default:
		return nil, fmt.Errorf("unsupported export format %q", e.format)
	}
	if err != nil {
		return nil, err
	}

	e.logger.InfoContext(ctx, "Export written",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, string(e.format),
		log.FieldCount, len(paths),
		log.FieldPath, e.dir)
	return paths, nil
}

// snapshot reads the three listings concurrently.
func (e *Exporter) snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if snap.Members, err = e.src.ListMembers(gctx); err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Loans, err = e.src.ListLoans(gctx); err != nil {
			return fmt.Errorf("list loans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snap.Contributions, err = e.src.ListContributions(gctx); err != nil {
			return fmt.Errorf("list contributions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func fileName(table, stamp, ext string) string {
	return fmt.Sprintf("%s_%s.%s", table, stamp, ext)
}

func memberRecord(m core.Member) []string {
	return []string{
		fmt.Sprint(m.ID),
		m.Name,
		m.Contact,
		m.Email,
		string(m.Status),
		m.JoinDate.Format(dateLayout),
	}
}

func loanRecord(l core.Loan) []string {
	return []string{
		fmt.Sprint(l.ID),
		fmt.Sprint(l.MemberID),
		l.Amount.StringFixed(2),
		l.InterestRate.String(),
		l.AmountRepaid.StringFixed(2),
		string(l.Status),
		l.StartDate.Format(dateLayout),
	}
}

func contributionRecord(c core.Contribution) []string {
	return []string{
		fmt.Sprint(c.ID),
		fmt.Sprint(c.MemberID),
		c.Amount.StringFixed(2),
		string(c.Type),
		c.ContributionDate.Format(dateLayout),
		c.Month,
	}
}

func (s *Snapshot) tables() []table {
	members := make([][]string, 0, len(s.Members))
	for _, m := range s.Members {
		members = append(members, memberRecord(m))
	}
	loans := make([][]string, 0, len(s.Loans))
	for _, l := range s.Loans {
		loans = append(loans, loanRecord(l))
	}
	contributions := make([][]string, 0, len(s.Contributions))
	for _, c := range s.Contributions {
		contributions = append(contributions, contributionRecord(c))
	}

	return []table{
		{name: "members", title: "Members", headers: MemberHeaders, rows: members},
		{name: "loans", title: "Loans", headers: LoanHeaders, rows: loans},
		{name: "contributions", title: "Contributions", headers: ContributionHeaders, rows: contributions},
	}
}

type table struct {
	name    string
	title   string
	headers []string
	rows    [][]string
}
