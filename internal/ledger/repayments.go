package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// RepaymentParams is the input of RecordRepayment. PaymentDate defaults to now.
type RepaymentParams struct {
	LoanID      int64           `validate:"required,gt=0"`
	Amount      decimal.Decimal `validate:"decimal_gt=0"`
	PaymentDate *time.Time
	Notes       string `validate:"max=255"`
}

// RecordRepayment stores a repayment and advances the loan's repaid amount
// in one transaction. When the repaid amount reaches principal plus interest
// the loan becomes Paid and its end date is set. Payments above the
// outstanding balance are rejected.
func (s *Service) RecordRepayment(ctx context.Context, p RepaymentParams) (*core.Repayment, error) {
	p.Notes = strings.TrimSpace(p.Notes)
	if err := s.check(p); err != nil {
		return nil, err
	}

	now := s.now()
	rep := &core.Repayment{
		LoanID:      p.LoanID,
		AmountPaid:  p.Amount,
		PaymentDate: orNow(p.PaymentDate, now),
		Notes:       p.Notes,
	}

	loan, err := s.store.ApplyRepayment(ctx, rep, func(loan *core.Loan) error {
		return applyPayment(loan, rep.AmountPaid, now)
	})
	if isMissing(err) {
		return nil, core.WrapLoanNotFound(p.LoanID)
	}
	if err != nil {
		return nil, s.storeError("record repayment", err)
	}

	fields := log.NewFields().WithOperation(log.OpRepay).WithLoan(loan.ID).WithAmount(rep.AmountPaid)
	s.logger.InfoContext(ctx, "Repayment recorded",
		append(fields.ToSlice(), log.FieldRepaymentID, rep.ID, log.FieldStatus, loan.Status)...)
	return rep, nil
}

// applyPayment advances the loan by amount and settles it when fully repaid.
func applyPayment(loan *core.Loan, amount decimal.Decimal, now time.Time) error {
	if loan.Status == core.LoanPaid {
		return core.NewValidationError(core.CodeLoanAlreadyPaid,
			fmt.Sprintf("loan %d is already paid", loan.ID))
	}
	if outstanding := loan.Outstanding(); amount.GreaterThan(outstanding) {
		return core.NewValidationError(core.CodeOverpayment,
			fmt.Sprintf("payment %s exceeds outstanding balance %s on loan %d", amount, outstanding, loan.ID))
	}

	loan.AmountRepaid = loan.AmountRepaid.Add(amount)
	if loan.IsSettled() {
		loan.Status = core.LoanPaid
		loan.EndDate = &now
	}
	return nil
}

// ListRepayments returns a loan's repayment history, oldest first. An
// unknown loan has no history.
func (s *Service) ListRepayments(ctx context.Context, loanID int64) ([]core.Repayment, error) {
	reps, err := s.store.ListRepaymentsByLoan(ctx, loanID)
	if err != nil {
		return nil, s.storeError("list repayments", err)
	}
	return reps, nil
}

// DeleteRepayment removes a repayment and takes its amount back off the
// loan in one transaction. Repayments of a Paid loan cannot be removed.
func (s *Service) DeleteRepayment(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.RevertRepayment(ctx, id, func(loan *core.Loan, rep core.Repayment) error {
		if loan.Status == core.LoanPaid {
			return core.NewValidationError(core.CodeLoanAlreadyPaid,
				fmt.Sprintf("loan %d is paid; its repayments cannot be removed", loan.ID))
		}
		loan.AmountRepaid = loan.AmountRepaid.Sub(rep.AmountPaid)
		if loan.AmountRepaid.IsNegative() {
			loan.AmountRepaid = decimal.Zero
		}
		return nil
	})
	if err != nil {
		return false, s.storeError("delete repayment", err)
	}
	if ok {
		s.logger.InfoContext(ctx, "Repayment deleted", log.FieldOperation, log.OpDelete, log.FieldRepaymentID, id)
	}
	return ok, nil
}

// Outstanding returns principal plus interest minus what has been repaid.
func (s *Service) Outstanding(ctx context.Context, loanID int64) (decimal.Decimal, error) {
	loan, err := s.store.GetLoan(ctx, loanID)
	if isMissing(err) {
		return decimal.Zero, core.WrapLoanNotFound(loanID)
	}
	if err != nil {
		return decimal.Zero, s.storeError("get loan", err)
	}
	return loan.Outstanding(), nil
}
