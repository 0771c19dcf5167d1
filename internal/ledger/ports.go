package ledger

import (
	"context"

	"coopledger/internal/core"
)

// Ports for the persistence adapter. Single-row lookups return an error
// matching sql.ErrNoRows when the row is absent.
type (
	MemberStore interface {
		CreateMember(ctx context.Context, m *core.Member) error
		GetMember(ctx context.Context, id int64) (*core.Member, error)
		ListMembers(ctx context.Context) ([]core.Member, error)
		UpdateMember(ctx context.Context, m *core.Member) error
		DeleteMember(ctx context.Context, id int64) (bool, error)
		CountMembers(ctx context.Context) (int64, error)
	}

	LoanStore interface {
		CreateLoan(ctx context.Context, l *core.Loan) error
		GetLoan(ctx context.Context, id int64) (*core.Loan, error)
		ListLoans(ctx context.Context) ([]core.Loan, error)
		ListLoansByMember(ctx context.Context, memberID int64) ([]core.Loan, error)
		ListLoansByStatus(ctx context.Context, status core.LoanStatus) ([]core.Loan, error)
		CountLoansByStatus(ctx context.Context, status core.LoanStatus) (int64, error)
		UpdateLoan(ctx context.Context, l *core.Loan) error
		DeleteLoan(ctx context.Context, id int64) (bool, error)

		// ApplyRepayment inserts rep and saves the loan as adjusted by apply,
		// atomically. Nothing is written when apply fails.
		ApplyRepayment(ctx context.Context, rep *core.Repayment, apply func(loan *core.Loan) error) (*core.Loan, error)

		// RevertRepayment deletes a repayment and saves its loan as adjusted
		// by revert, atomically. Reports false when the repayment is absent.
		RevertRepayment(ctx context.Context, id int64, revert func(loan *core.Loan, rep core.Repayment) error) (bool, error)
	}

	RepaymentStore interface {
		GetRepayment(ctx context.Context, id int64) (*core.Repayment, error)
		ListRepaymentsByLoan(ctx context.Context, loanID int64) ([]core.Repayment, error)
		ListRepayments(ctx context.Context) ([]core.Repayment, error)
	}

	ContributionStore interface {
		CreateContribution(ctx context.Context, c *core.Contribution) error
		ListContributions(ctx context.Context) ([]core.Contribution, error)
		ListContributionsByMember(ctx context.Context, memberID int64) ([]core.Contribution, error)
		ListContributionsByMonth(ctx context.Context, month string) ([]core.Contribution, error)
		DeleteContribution(ctx context.Context, id int64) (bool, error)
	}

	// Store is everything the ledger needs from persistence.
	Store interface {
		MemberStore
		LoanStore
		RepaymentStore
		ContributionStore
	}
)
