package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// IssueLoanParams is the input of IssueLoan. InterestRate is a flat
// percentage of the principal and may be zero.
type IssueLoanParams struct {
	MemberID     int64           `validate:"required,gt=0"`
	Principal    decimal.Decimal `validate:"decimal_gt=0"`
	InterestRate decimal.Decimal `validate:"decimal_gte=0"`
	EndDate      *time.Time
}

// LoanChanges lists the editable loan fields. Nil fields are left as is;
// ClearEndDate removes the end date and cannot be combined with EndDate.
// Changing the rate does not change the interest already fixed at issuance.
type LoanChanges struct {
	InterestRate *decimal.Decimal `validate:"omitempty,decimal_gte=0"`
	EndDate      *time.Time       `validate:"excluded_with=ClearEndDate"`
	ClearEndDate bool
	Status       *core.LoanStatus `validate:"omitempty,oneof=Pending Active Defaulted"`
}

// IssueLoan creates a Pending loan for an existing member and fixes its
// total interest at principal × rate / 100.
func (s *Service) IssueLoan(ctx context.Context, p IssueLoanParams) (*core.Loan, error) {
	if err := s.check(p); err != nil {
		return nil, err
	}
	if err := s.memberExists(ctx, p.MemberID); err != nil {
		return nil, err
	}

	l := &core.Loan{
		MemberID:      p.MemberID,
		Amount:        p.Principal,
		InterestRate:  p.InterestRate,
		TotalInterest: core.TotalInterest(p.Principal, p.InterestRate),
		AmountRepaid:  decimal.Zero,
		Status:        core.LoanPending,
		StartDate:     s.now(),
		EndDate:       p.EndDate,
	}
	if err := s.store.CreateLoan(ctx, l); err != nil {
		return nil, s.storeError("create loan", err)
	}

	s.logger.InfoContext(ctx, "Loan issued", log.NewFields().
		WithOperation(log.OpCreate).
		WithLoan(l.ID).
		WithMember(l.MemberID).
		WithAmount(l.Amount).
		ToSlice()...)
	return l, nil
}

// GetLoan returns nil without an error when no loan has the id.
func (s *Service) GetLoan(ctx context.Context, id int64) (*core.Loan, error) {
	l, err := s.store.GetLoan(ctx, id)
	if isMissing(err) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storeError("get loan", err)
	}
	return l, nil
}

func (s *Service) ListLoans(ctx context.Context) ([]core.Loan, error) {
	loans, err := s.store.ListLoans(ctx)
	if err != nil {
		return nil, s.storeError("list loans", err)
	}
	return loans, nil
}

func (s *Service) ListLoansByMember(ctx context.Context, memberID int64) ([]core.Loan, error) {
	loans, err := s.store.ListLoansByMember(ctx, memberID)
	if err != nil {
		return nil, s.storeError("list loans by member", err)
	}
	return loans, nil
}

// ListActiveLoans returns the loans whose status is exactly Active.
func (s *Service) ListActiveLoans(ctx context.Context) ([]core.Loan, error) {
	loans, err := s.store.ListLoansByStatus(ctx, core.LoanActive)
	if err != nil {
		return nil, s.storeError("list active loans", err)
	}
	return loans, nil
}

// UpdateLoan applies the non-nil fields of changes. Paid is only reached
// through repayment, and a Paid loan keeps its status.
func (s *Service) UpdateLoan(ctx context.Context, id int64, changes LoanChanges) (*core.Loan, error) {
	if err := s.check(changes); err != nil {
		return nil, err
	}

	l, err := s.store.GetLoan(ctx, id)
	if isMissing(err) {
		return nil, core.WrapLoanNotFound(id)
	}
	if err != nil {
		return nil, s.storeError("get loan", err)
	}

	if changes.Status != nil && *changes.Status != l.Status && l.Status == core.LoanPaid {
		return nil, core.NewValidationError(core.CodeInvalidTransition,
			fmt.Sprintf("loan %d is paid; its status cannot change", id))
	}
	if changes.ClearEndDate && l.Status == core.LoanPaid {
		return nil, core.NewValidationError(core.CodeInvalidTransition,
			fmt.Sprintf("loan %d is paid; its end date records the payoff", id))
	}

	if changes.InterestRate != nil {
		l.InterestRate = *changes.InterestRate
	}
	if changes.EndDate != nil {
		l.EndDate = changes.EndDate
	}
	if changes.ClearEndDate {
		l.EndDate = nil
	}
	if changes.Status != nil {
		l.Status = *changes.Status
	}

	if err := s.store.UpdateLoan(ctx, l); err != nil {
		if isMissing(err) {
			return nil, core.WrapLoanNotFound(id)
		}
		return nil, s.storeError("update loan", err)
	}

	s.logger.InfoContext(ctx, "Loan updated", log.FieldOperation, log.OpUpdate, log.FieldLoanID, id, log.FieldStatus, l.Status)
	return l, nil
}

// DeleteLoan removes the loan and its repayments. Reports false if there
// was no loan.
func (s *Service) DeleteLoan(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.DeleteLoan(ctx, id)
	if err != nil {
		return false, s.storeError("delete loan", err)
	}
	if ok {
		s.logger.InfoContext(ctx, "Loan deleted", log.FieldOperation, log.OpDelete, log.FieldLoanID, id)
	}
	return ok, nil
}
