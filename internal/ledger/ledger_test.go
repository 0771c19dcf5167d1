package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopledger/internal/core"
	"coopledger/internal/storage"
)

var clock = time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	s := NewService(repo, nil)
	s.now = func() time.Time { return clock }
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func addMember(t *testing.T, s *Service, name string) *core.Member {
	t.Helper()
	m, err := s.CreateMember(context.Background(), CreateMemberParams{Name: name})
	require.NoError(t, err)
	return m
}

func issue(t *testing.T, s *Service, memberID int64, principal, rate string) *core.Loan {
	t.Helper()
	l, err := s.IssueLoan(context.Background(), IssueLoanParams{
		MemberID:     memberID,
		Principal:    dec(principal),
		InterestRate: dec(rate),
	})
	require.NoError(t, err)
	return l
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	m, err := s.CreateMember(ctx, CreateMemberParams{Name: "  Asha ", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, core.MemberActive, m.Status)
	assert.True(t, clock.Equal(m.JoinDate))

	got, err := s.GetMember(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "asha@example.com", got.Email)
}

func TestCreateMemberValidation(t *testing.T) {
	tests := []struct {
		name   string
		params CreateMemberParams
	}{
		{"empty name", CreateMemberParams{Name: ""}},
		{"blank name", CreateMemberParams{Name: "   "}},
		{"long name", CreateMemberParams{Name: string(make([]byte, 101))}},
		{"bad email", CreateMemberParams{Name: "Asha", Email: "not-an-email"}},
		{"long contact", CreateMemberParams{Name: "Asha", Contact: "012345678901234567890"}},
		{"unknown status", CreateMemberParams{Name: "Asha", Status: "Retired"}},
	}

	s := newTestService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateMember(context.Background(), tt.params)
			assert.True(t, core.IsValidation(err), "got %v", err)
		})
	}

	n, err := s.MemberCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetMissingRecordsIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	m, err := s.GetMember(ctx, 404)
	assert.NoError(t, err)
	assert.Nil(t, m)

	l, err := s.GetLoan(ctx, 404)
	assert.NoError(t, err)
	assert.Nil(t, l)
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	updated, err := s.UpdateMember(ctx, m.ID, MemberChanges{
		Contact: ptr("555-0101"),
		Status:  ptr(core.MemberInactive),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, "555-0101", updated.Contact)
	assert.Equal(t, core.MemberInactive, updated.Status)

	_, err = s.UpdateMember(ctx, 999, MemberChanges{Contact: ptr("x")})
	assert.True(t, core.IsNotFound(err))

	_, err = s.UpdateMember(ctx, m.ID, MemberChanges{Email: ptr("nope")})
	assert.True(t, core.IsValidation(err))

	_, err = s.UpdateMember(ctx, m.ID, MemberChanges{Status: ptr(core.MemberStatus("Gone"))})
	assert.True(t, core.IsValidation(err))

	// clearing an optional field is allowed
	updated, err = s.UpdateMember(ctx, m.ID, MemberChanges{Contact: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, updated.Contact)
}

func TestIssueLoanFixesInterest(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	asha := addMember(t, s, "Asha")

	l := issue(t, s, asha.ID, "1000", "10")
	assert.True(t, dec("100").Equal(l.TotalInterest))
	assert.True(t, l.AmountRepaid.IsZero())
	assert.Equal(t, core.LoanPending, l.Status)
	assert.Nil(t, l.EndDate)

	updated, err := s.UpdateLoan(ctx, l.ID, LoanChanges{InterestRate: ptr(dec("25"))})
	require.NoError(t, err)
	assert.True(t, dec("25").Equal(updated.InterestRate))
	assert.True(t, dec("100").Equal(updated.TotalInterest))

	stored, err := s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(stored.TotalInterest))
}

func TestTotalInterestProperty(t *testing.T) {
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	cases := []struct{ principal, rate, want string }{
		{"1000", "10", "100"},
		{"1000", "0", "0"},
		{"250.50", "12.5", "31.3125"},
		{"0.01", "3", "0.0003"},
		{"99999", "100", "99999"},
	}
	for _, c := range cases {
		l := issue(t, s, m.ID, c.principal, c.rate)
		assert.True(t, dec(c.want).Equal(l.TotalInterest), "%s @ %s%%: got %s", c.principal, c.rate, l.TotalInterest)
	}
}

func TestIssueLoanValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	_, err := s.IssueLoan(ctx, IssueLoanParams{MemberID: 999, Principal: dec("10")})
	assert.True(t, core.IsValidation(err))

	_, err = s.IssueLoan(ctx, IssueLoanParams{MemberID: m.ID, Principal: decimal.Zero})
	assert.True(t, core.IsValidation(err))

	_, err = s.IssueLoan(ctx, IssueLoanParams{MemberID: m.ID, Principal: dec("-5")})
	assert.True(t, core.IsValidation(err))

	_, err = s.IssueLoan(ctx, IssueLoanParams{MemberID: m.ID, Principal: dec("10"), InterestRate: dec("-1")})
	assert.True(t, core.IsValidation(err))

	loans, err := s.ListLoans(ctx)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func TestRepaymentScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	asha := addMember(t, s, "Asha")
	l := issue(t, s, asha.ID, "1000", "10")

	_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("550")})
	require.NoError(t, err)

	got, err := s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, dec("550").Equal(got.AmountRepaid))
	assert.Equal(t, core.LoanPending, got.Status)
	assert.Nil(t, got.EndDate)

	paidAt := clock.Add(48 * time.Hour)
	s.now = func() time.Time { return paidAt }

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("550")})
	require.NoError(t, err)

	got, err = s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, dec("1100").Equal(got.AmountRepaid))
	assert.Equal(t, core.LoanPaid, got.Status)
	require.NotNil(t, got.EndDate)
	assert.True(t, paidAt.Equal(*got.EndDate))

	outstanding, err := s.Outstanding(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.IsZero())

	reps, err := s.ListRepayments(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, reps, 2)
}

func TestRepaymentSumProperty(t *testing.T) {
	tests := []struct {
		name     string
		payments []string
		wantPaid bool
	}{
		{"single partial", []string{"10"}, false},
		{"many partial", []string{"100", "200", "300.25"}, false},
		{"exact settle", []string{"600", "500"}, true},
		{"cents settle", []string{"1099.99", "0.01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestService(t)
			m := addMember(t, s, "Asha")
			l := issue(t, s, m.ID, "1000", "10")

			sum := decimal.Zero
			for _, p := range tt.payments {
				_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec(p)})
				require.NoError(t, err)
				sum = sum.Add(dec(p))
			}

			got, err := s.GetLoan(ctx, l.ID)
			require.NoError(t, err)
			assert.True(t, sum.Equal(got.AmountRepaid))
			assert.Equal(t, tt.wantPaid, got.Status == core.LoanPaid)
		})
	}
}

func TestRepaymentRejections(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	l := issue(t, s, m.ID, "100", "0")

	_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: decimal.Zero})
	assert.True(t, core.IsValidation(err))

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("100.01")})
	assert.True(t, core.IsValidation(err))
	var lerr *core.LedgerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, core.CodeOverpayment, lerr.Code)

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("100")})
	require.NoError(t, err)

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("1")})
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, core.CodeLoanAlreadyPaid, lerr.Code)

	reps, err := s.ListRepayments(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, reps, 1)
}

func TestRepaymentForMissingLoan(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: 77, Amount: dec("10")})
	assert.True(t, core.IsNotFound(err))

	reps, err := s.ListRepayments(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, reps)

	_, err = s.Outstanding(ctx, 77)
	assert.True(t, core.IsNotFound(err))
}

func TestUpdateLoanStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	l := issue(t, s, m.ID, "100", "0")

	got, err := s.UpdateLoan(ctx, l.ID, LoanChanges{Status: ptr(core.LoanActive)})
	require.NoError(t, err)
	assert.Equal(t, core.LoanActive, got.Status)

	active, err := s.ListActiveLoans(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, l.ID, active[0].ID)

	_, err = s.UpdateLoan(ctx, l.ID, LoanChanges{Status: ptr(core.LoanPaid)})
	assert.True(t, core.IsValidation(err))

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("100")})
	require.NoError(t, err)

	_, err = s.UpdateLoan(ctx, l.ID, LoanChanges{Status: ptr(core.LoanActive)})
	var lerr *core.LedgerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, core.CodeInvalidTransition, lerr.Code)

	_, err = s.UpdateLoan(ctx, 999, LoanChanges{Status: ptr(core.LoanActive)})
	assert.True(t, core.IsNotFound(err))
}

func TestUpdateLoanEndDate(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	l := issue(t, s, m.ID, "100", "0")

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	got, err := s.UpdateLoan(ctx, l.ID, LoanChanges{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)

	got, err = s.UpdateLoan(ctx, l.ID, LoanChanges{ClearEndDate: true})
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)

	stored, err := s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndDate)

	_, err = s.UpdateLoan(ctx, l.ID, LoanChanges{EndDate: &end, ClearEndDate: true})
	assert.True(t, core.IsValidation(err))

	_, err = s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("100")})
	require.NoError(t, err)

	_, err = s.UpdateLoan(ctx, l.ID, LoanChanges{ClearEndDate: true})
	var lerr *core.LedgerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, core.CodeInvalidTransition, lerr.Code)

	paid, err := s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.NotNil(t, paid.EndDate)
}

func TestDeleteRepayment(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	l := issue(t, s, m.ID, "1000", "0")

	rep, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("400"), Notes: "cash"})
	require.NoError(t, err)

	ok, err := s.DeleteRepayment(ctx, rep.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.GetLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountRepaid.IsZero())

	ok, err = s.DeleteRepayment(ctx, rep.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	final, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("1000")})
	require.NoError(t, err)

	_, err = s.DeleteRepayment(ctx, final.ID)
	assert.True(t, core.IsValidation(err))
}

func TestDeleteLoan(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	l := issue(t, s, m.ID, "1000", "0")
	_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("10")})
	require.NoError(t, err)

	ok, err := s.DeleteLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	reps, err := s.ListRepayments(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, reps)

	ok, err = s.DeleteLoan(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContributionScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	for _, amount := range []string{"100", "200"} {
		_, err := s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec(amount), Month: "2024-01"})
		require.NoError(t, err)
	}

	byMember, err := s.ContributionByMember(ctx)
	require.NoError(t, err)
	require.Len(t, byMember, 1)
	assert.Equal(t, m.ID, byMember[0].MemberID)
	assert.Equal(t, "Asha", byMember[0].MemberName)
	assert.True(t, dec("300").Equal(byMember[0].Amount))

	trend, err := s.MonthlyContributionTrend(ctx, DefaultTrendWindow)
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.Equal(t, "2024-01", trend[0].Month)
	assert.True(t, dec("300").Equal(trend[0].Amount))

	total, err := s.TotalContributions(ctx)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(total))
}

func TestRecordContributionDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	c, err := s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, core.ContributionMonthly, c.Type)
	assert.Equal(t, "2024-01", c.Month)
	assert.True(t, clock.Equal(c.ContributionDate))

	// month tags are kept as given
	c, err = s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("5"), Month: "Q1", Type: core.ContributionVoluntary})
	require.NoError(t, err)
	assert.Equal(t, "Q1", c.Month)

	q1, err := s.ListContributionsByMonth(ctx, "Q1")
	require.NoError(t, err)
	assert.Len(t, q1, 1)

	c, err = s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("5"), Month: " 2024-02 "})
	require.NoError(t, err)
	assert.Equal(t, " 2024-02 ", c.Month)

	padded, err := s.ListContributionsByMonth(ctx, " 2024-02 ")
	require.NoError(t, err)
	assert.Len(t, padded, 1)

	c, err = s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("5"), Month: "   "})
	require.NoError(t, err)
	assert.Equal(t, "2024-01", c.Month)
}

func TestRecordContributionValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	_, err := s.RecordContribution(ctx, ContributionParams{MemberID: 999, Amount: dec("10")})
	assert.True(t, core.IsValidation(err))

	_, err = s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("0")})
	assert.True(t, core.IsValidation(err))

	_, err = s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("10"), Type: "Yearly"})
	assert.True(t, core.IsValidation(err))

	cs, err := s.ListContributions(ctx)
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestAggregatesOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	d, err := s.Dashboard(ctx, DefaultTrendWindow, DefaultActivityLimit)
	require.NoError(t, err)
	assert.Zero(t, d.MemberCount)
	assert.Zero(t, d.ActiveLoanCount)
	assert.True(t, d.TotalContributions.IsZero())
	assert.True(t, d.TotalLoansIssued.IsZero())
	assert.Empty(t, d.Trend)
	assert.Empty(t, d.ByMember)
	assert.Empty(t, d.Recent)
}

func TestTrendKeepsLatestMonthsWithData(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	for _, month := range []string{"2024-03", "2023-11", "2024-01", "2024-03"} {
		_, err := s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("10"), Month: month})
		require.NoError(t, err)
	}

	trend, err := s.MonthlyContributionTrend(ctx, 2)
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, "2024-01", trend[0].Month)
	assert.Equal(t, "2024-03", trend[1].Month)
	assert.True(t, dec("20").Equal(trend[1].Amount))

	_, err = s.MonthlyContributionTrend(ctx, 0)
	assert.True(t, core.IsValidation(err))
}

func TestTotalLoansIssuedExcludesInterest(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")
	issue(t, s, m.ID, "1000", "10")
	issue(t, s, m.ID, "250.50", "5")

	total, err := s.TotalLoansIssued(ctx)
	require.NoError(t, err)
	assert.True(t, dec("1250.50").Equal(total))
}

func TestRecentActivity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	asha := addMember(t, s, "Asha")
	ravi := addMember(t, s, "Ravi")
	l := issue(t, s, ravi.ID, "1000", "0")

	day := func(d int) *time.Time {
		v := time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
		return &v
	}

	c1, err := s.RecordContribution(ctx, ContributionParams{MemberID: asha.ID, Amount: dec("10"), Date: day(1)})
	require.NoError(t, err)
	c2, err := s.RecordContribution(ctx, ContributionParams{MemberID: asha.ID, Amount: dec("20"), Date: day(3)})
	require.NoError(t, err)
	r1, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("30"), PaymentDate: day(3)})
	require.NoError(t, err)
	r2, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("40"), PaymentDate: day(5)})
	require.NoError(t, err)

	feed, err := s.RecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 4)

	assert.Equal(t, r2.ID, feed[0].RecordID)
	assert.Equal(t, core.ActivityRepayment, feed[0].Kind)
	assert.Equal(t, ravi.ID, feed[0].MemberID)
	assert.Equal(t, "Ravi", feed[0].MemberName)

	// same day: contribution recorded before the repayment stays first
	assert.Equal(t, c2.ID, feed[1].RecordID)
	assert.Equal(t, core.ActivityContribution, feed[1].Kind)
	assert.Equal(t, r1.ID, feed[2].RecordID)
	assert.Equal(t, c1.ID, feed[3].RecordID)
	assert.Equal(t, "Asha", feed[3].MemberName)

	top, err := s.RecentActivity(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	_, err = s.RecentActivity(ctx, -1)
	assert.True(t, core.IsValidation(err))
}

func TestDeleteMemberCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	asha := addMember(t, s, "Asha")
	ravi := addMember(t, s, "Ravi")

	l := issue(t, s, asha.ID, "1000", "10")
	_, err := s.RecordRepayment(ctx, RepaymentParams{LoanID: l.ID, Amount: dec("100")})
	require.NoError(t, err)
	_, err = s.RecordContribution(ctx, ContributionParams{MemberID: asha.ID, Amount: dec("100")})
	require.NoError(t, err)
	_, err = s.RecordContribution(ctx, ContributionParams{MemberID: ravi.ID, Amount: dec("7")})
	require.NoError(t, err)

	before, err := s.MemberCount(ctx)
	require.NoError(t, err)

	ok, err := s.DeleteMember(ctx, asha.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := s.MemberCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, before-1, after)

	loans, err := s.ListLoansByMember(ctx, asha.ID)
	require.NoError(t, err)
	assert.Empty(t, loans)

	reps, err := s.ListRepayments(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, reps)

	cs, err := s.ListContributionsByMember(ctx, asha.ID)
	require.NoError(t, err)
	assert.Empty(t, cs)

	total, err := s.TotalContributions(ctx)
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(total))

	ok, err = s.DeleteMember(ctx, asha.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	unchanged, err := s.MemberCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, after, unchanged)
}

func TestDeleteContribution(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	m := addMember(t, s, "Asha")

	c, err := s.RecordContribution(ctx, ContributionParams{MemberID: m.ID, Amount: dec("10")})
	require.NoError(t, err)

	ok, err := s.DeleteContribution(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteContribution(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
