package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MemberActive    MemberStatus = "Active"
	MemberInactive  MemberStatus = "Inactive"
	MemberSuspended MemberStatus = "Suspended"
)

const (
	LoanPending   LoanStatus = "Pending"
	LoanActive    LoanStatus = "Active"
	LoanPaid      LoanStatus = "Paid"
	LoanDefaulted LoanStatus = "Defaulted"
)

const (
	ContributionMonthly   ContributionType = "Monthly"
	ContributionWeekly    ContributionType = "Weekly"
	ContributionVoluntary ContributionType = "Voluntary"
)

// MonthLayout is the layout of a contribution month tag ("YYYY-MM").
const MonthLayout = "2006-01"

type (
	MemberStatus     string
	LoanStatus       string
	ContributionType string

	Member struct {
		ID        int64        `db:"id"`
		Name      string       `db:"name"`
		Contact   string       `db:"contact"`
		Email     string       `db:"email"`
		JoinDate  time.Time    `db:"join_date"`
		Status    MemberStatus `db:"status"`
		CreatedAt time.Time    `db:"created_at"`
		UpdatedAt time.Time    `db:"updated_at"`
	}

	Loan struct {
		ID            int64           `db:"id"`
		MemberID      int64           `db:"member_id"`
		Amount        decimal.Decimal `db:"amount"` // principal
		InterestRate  decimal.Decimal `db:"interest_rate"`
		TotalInterest decimal.Decimal `db:"total_interest"`
		AmountRepaid  decimal.Decimal `db:"amount_repaid"`
		Status        LoanStatus      `db:"status"`
		StartDate     time.Time       `db:"start_date"`
		EndDate       *time.Time      `db:"end_date"`
		CreatedAt     time.Time       `db:"created_at"`
		UpdatedAt     time.Time       `db:"updated_at"`
	}

	Repayment struct {
		ID          int64           `db:"id"`
		LoanID      int64           `db:"loan_id"`
		AmountPaid  decimal.Decimal `db:"amount_paid"`
		PaymentDate time.Time       `db:"payment_date"`
		Notes       string          `db:"notes"`
		CreatedAt   time.Time       `db:"created_at"`
	}

	Contribution struct {
		ID               int64            `db:"id"`
		MemberID         int64            `db:"member_id"`
		Amount           decimal.Decimal  `db:"amount"`
		ContributionDate time.Time        `db:"contribution_date"`
		Type             ContributionType `db:"contribution_type"`
		Month            string           `db:"month"`
		Notes            string           `db:"notes"`
		CreatedAt        time.Time        `db:"created_at"`
	}
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberActive, MemberInactive, MemberSuspended:
		return true
	}
	return false
}

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanActive, LoanPaid, LoanDefaulted:
		return true
	}
	return false
}

func (t ContributionType) Valid() bool {
	switch t {
	case ContributionMonthly, ContributionWeekly, ContributionVoluntary:
		return true
	}
	return false
}

// TotalInterest returns the flat interest owed on principal at rate percent.
func TotalInterest(principal, rate decimal.Decimal) decimal.Decimal {
	return principal.Mul(rate).Div(decimal.NewFromInt(100))
}

// TotalDue is principal plus the interest fixed at issuance.
func (l Loan) TotalDue() decimal.Decimal {
	return l.Amount.Add(l.TotalInterest)
}

// Outstanding is what remains to be repaid. It never goes below zero.
func (l Loan) Outstanding() decimal.Decimal {
	out := l.TotalDue().Sub(l.AmountRepaid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// IsSettled reports whether the repaid amount covers the total due.
func (l Loan) IsSettled() bool {
	return l.AmountRepaid.GreaterThanOrEqual(l.TotalDue())
}

// MonthOf formats t as a contribution month tag.
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}
