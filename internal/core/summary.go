package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind tags an entry of the recent activity feed.
type ActivityKind string

const (
	ActivityContribution ActivityKind = "Contribution"
	ActivityRepayment    ActivityKind = "Repayment"
)

// MonthAmount is the contribution total for one month tag.
type MonthAmount struct {
	Month  string
	Amount decimal.Decimal
}

// MemberAmount is the contribution total for one member.
type MemberAmount struct {
	MemberID   int64
	MemberName string
	Amount     decimal.Decimal
}

// Activity is one contribution or repayment event.
type Activity struct {
	Kind        ActivityKind
	RecordID    int64
	MemberID    int64
	MemberName  string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// Dashboard bundles the aggregate statistics shown on the overview screen.
type Dashboard struct {
	MemberCount        int64
	TotalContributions decimal.Decimal
	TotalLoansIssued   decimal.Decimal
	ActiveLoanCount    int64
	Trend              []MonthAmount
	ByMember           []MemberAmount
	Recent             []Activity
}
