package ledger

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// Defaults for the aggregate windows.
const (
	DefaultTrendWindow   = 12
	DefaultActivityLimit = 10
)

// Aggregates are computed from the store on every call.

func (s *Service) TotalContributions(ctx context.Context) (decimal.Decimal, error) {
	cs, err := s.store.ListContributions(ctx)
	if err != nil {
		return decimal.Zero, s.storeError("total contributions", err)
	}
	total := decimal.Zero
	for _, c := range cs {
		total = total.Add(c.Amount)
	}
	return total, nil
}

// TotalLoansIssued sums loan principals, excluding interest.
func (s *Service) TotalLoansIssued(ctx context.Context) (decimal.Decimal, error) {
	loans, err := s.store.ListLoans(ctx)
	if err != nil {
		return decimal.Zero, s.storeError("total loans issued", err)
	}
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.Amount)
	}
	return total, nil
}

func (s *Service) ActiveLoanCount(ctx context.Context) (int64, error) {
	n, err := s.store.CountLoansByStatus(ctx, core.LoanActive)
	if err != nil {
		return 0, s.storeError("count active loans", err)
	}
	return n, nil
}

func (s *Service) MemberCount(ctx context.Context) (int64, error) {
	n, err := s.store.CountMembers(ctx)
	if err != nil {
		return 0, s.storeError("count members", err)
	}
	return n, nil
}

// MonthlyContributionTrend sums contributions per month tag and returns the
// most recent window months that have any, oldest first. Months without
// contributions are absent.
func (s *Service) MonthlyContributionTrend(ctx context.Context, window int) ([]core.MonthAmount, error) {
	if window <= 0 {
		return nil, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("trend window must be positive, got %d", window))
	}

	cs, err := s.store.ListContributions(ctx)
	if err != nil {
		return nil, s.storeError("contribution trend", err)
	}

	sums := make(map[string]decimal.Decimal)
	for _, c := range cs {
		sums[c.Month] = sums[c.Month].Add(c.Amount)
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	slices.Sort(months)
	if len(months) > window {
		months = months[len(months)-window:]
	}

	trend := make([]core.MonthAmount, 0, len(months))
	for _, m := range months {
		trend = append(trend, core.MonthAmount{Month: m, Amount: sums[m]})
	}
	return trend, nil
}

// ContributionByMember sums contributions per member, for members with at
// least one contribution, ordered by member id.
func (s *Service) ContributionByMember(ctx context.Context) ([]core.MemberAmount, error) {
	cs, err := s.store.ListContributions(ctx)
	if err != nil {
		return nil, s.storeError("contribution by member", err)
	}
	names, err := s.memberNames(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[int64]decimal.Decimal)
	for _, c := range cs {
		sums[c.MemberID] = sums[c.MemberID].Add(c.Amount)
	}

	out := make([]core.MemberAmount, 0, len(sums))
	for id, amount := range sums {
		out = append(out, core.MemberAmount{MemberID: id, MemberName: names[id], Amount: amount})
	}
	slices.SortFunc(out, func(a, b core.MemberAmount) int {
		return cmp.Compare(a.MemberID, b.MemberID)
	})
	return out, nil
}

// RecentActivity merges contributions and repayments, newest first, and
// keeps at most limit entries. Entries with the same date keep insertion
// order: contributions by id, then repayments by id.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]core.Activity, error) {
	if limit <= 0 {
		return nil, core.NewValidationError(core.CodeInvalidInput, fmt.Sprintf("activity limit must be positive, got %d", limit))
	}

	cs, err := s.store.ListContributions(ctx)
	if err != nil {
		return nil, s.storeError("recent activity", err)
	}
	reps, err := s.store.ListRepayments(ctx)
	if err != nil {
		return nil, s.storeError("recent activity", err)
	}
	loans, err := s.store.ListLoans(ctx)
	if err != nil {
		return nil, s.storeError("recent activity", err)
	}
	names, err := s.memberNames(ctx)
	if err != nil {
		return nil, err
	}

	borrower := make(map[int64]int64, len(loans))
	for _, l := range loans {
		borrower[l.ID] = l.MemberID
	}

	feed := make([]core.Activity, 0, len(cs)+len(reps))
	for _, c := range cs {
		feed = append(feed, core.Activity{
			Kind:        core.ActivityContribution,
			RecordID:    c.ID,
			MemberID:    c.MemberID,
			MemberName:  names[c.MemberID],
			Amount:      c.Amount,
			Date:        c.ContributionDate,
			Description: fmt.Sprintf("%s contribution for %s", c.Type, c.Month),
		})
	}
	for _, r := range reps {
		memberID := borrower[r.LoanID]
		feed = append(feed, core.Activity{
			Kind:        core.ActivityRepayment,
			RecordID:    r.ID,
			MemberID:    memberID,
			MemberName:  names[memberID],
			Amount:      r.AmountPaid,
			Date:        r.PaymentDate,
			Description: fmt.Sprintf("Repayment on loan #%d", r.LoanID),
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

// Dashboard gathers every aggregate in one call.
func (s *Service) Dashboard(ctx context.Context, window, limit int) (*core.Dashboard, error) {
	var (
		d   core.Dashboard
		err error
	)

	if d.MemberCount, err = s.MemberCount(ctx); err != nil {
		return nil, err
	}
	if d.TotalContributions, err = s.TotalContributions(ctx); err != nil {
		return nil, err
	}
	if d.TotalLoansIssued, err = s.TotalLoansIssued(ctx); err != nil {
		return nil, err
	}
	if d.ActiveLoanCount, err = s.ActiveLoanCount(ctx); err != nil {
		return nil, err
	}
	if d.Trend, err = s.MonthlyContributionTrend(ctx, window); err != nil {
		return nil, err
	}
	if d.ByMember, err = s.ContributionByMember(ctx); err != nil {
		return nil, err
	}
	if d.Recent, err = s.RecentActivity(ctx, limit); err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Dashboard computed",
		log.FieldOperation, log.OpStats,
		log.FieldCount, len(d.Recent))
	return &d, nil
}

func (s *Service) memberNames(ctx context.Context) (map[int64]string, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, s.storeError("list members", err)
	}
	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	return names, nil
}
