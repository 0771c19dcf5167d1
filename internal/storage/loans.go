package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

const loanColumns = `id, member_id, amount, interest_rate, total_interest, amount_repaid, status,
	start_date, end_date, created_at, updated_at`

// CreateLoan inserts l and fills in its id and timestamps.
func (r *SQLiteRepository) CreateLoan(ctx context.Context, l *core.Loan) error {
	now := r.now()
	if l.StartDate.IsZero() {
		l.StartDate = now
	}
	l.CreatedAt, l.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO loans (member_id, amount, interest_rate, total_interest, amount_repaid, status,
			start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.MemberID, l.Amount, l.InterestRate, l.TotalInterest, l.AmountRepaid, l.Status,
		l.StartDate, l.EndDate, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}

	if l.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("loan id: %w", err)
	}

	r.logger.DebugContext(ctx, "Loan saved", log.FieldLoanID, l.ID, log.FieldMemberID, l.MemberID)
	return nil
}

func (r *SQLiteRepository) GetLoan(ctx context.Context, id int64) (*core.Loan, error) {
	return getLoan(ctx, r.db, id)
}

func getLoan(ctx context.Context, q sqlx.QueryerContext, id int64) (*core.Loan, error) {
	var l core.Loan
	if err := sqlx.GetContext(ctx, q, &l, `SELECT `+loanColumns+` FROM loans WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get loan %d: %w", id, err)
	}
	return &l, nil
}

func (r *SQLiteRepository) ListLoans(ctx context.Context) ([]core.Loan, error) {
	var loans []core.Loan
	if err := r.db.SelectContext(ctx, &loans, `SELECT `+loanColumns+` FROM loans ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (r *SQLiteRepository) ListLoansByMember(ctx context.Context, memberID int64) ([]core.Loan, error) {
	var loans []core.Loan
	err := r.db.SelectContext(ctx, &loans,
		`SELECT `+loanColumns+` FROM loans WHERE member_id = ? ORDER BY id`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list loans for member %d: %w", memberID, err)
	}
	return loans, nil
}

func (r *SQLiteRepository) ListLoansByStatus(ctx context.Context, status core.LoanStatus) ([]core.Loan, error) {
	var loans []core.Loan
	err := r.db.SelectContext(ctx, &loans,
		`SELECT `+loanColumns+` FROM loans WHERE status = ? ORDER BY id`, status)
	if err != nil {
		return nil, fmt.Errorf("list %s loans: %w", status, err)
	}
	return loans, nil
}

func (r *SQLiteRepository) CountLoansByStatus(ctx context.Context, status core.LoanStatus) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM loans WHERE status = ?`, status); err != nil {
		return 0, fmt.Errorf("count %s loans: %w", status, err)
	}
	return n, nil
}

// UpdateLoan writes the editable loan columns. Principal, total interest
// and the repaid amount are never touched here.
func (r *SQLiteRepository) UpdateLoan(ctx context.Context, l *core.Loan) error {
	l.UpdatedAt = r.now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE loans
		SET interest_rate = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		l.InterestRate, l.EndDate, l.Status, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update loan %d: %w", l.ID, err)
	}

	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update loan %d: %w", l.ID, ErrNotFound)
	}
	return nil
}

// DeleteLoan removes the loan and, by cascade, its repayments.
func (r *SQLiteRepository) DeleteLoan(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete loan %d: %w", id, err)
	}
	return rowsAffected(res)
}

// ApplyRepayment loads the loan, lets apply adjust it, then stores the
// repayment and the adjusted balance in one transaction. If apply returns
// an error nothing is written.
func (r *SQLiteRepository) ApplyRepayment(ctx context.Context, rep *core.Repayment, apply func(loan *core.Loan) error) (*core.Loan, error) {
	var loan *core.Loan

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if loan, err = getLoan(ctx, tx, rep.LoanID); err != nil {
			return err
		}

		if err := apply(loan); err != nil {
			return err
		}

		now := r.now()
		if rep.PaymentDate.IsZero() {
			rep.PaymentDate = now
		}
		rep.CreatedAt = now

		res, err := tx.ExecContext(ctx, `
			INSERT INTO loan_repayments (loan_id, amount_paid, payment_date, notes, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			rep.LoanID, rep.AmountPaid, rep.PaymentDate, rep.Notes, rep.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert repayment: %w", err)
		}
		if rep.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("repayment id: %w", err)
		}

		return saveBalance(ctx, tx, loan, now)
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "Repayment applied",
		log.FieldRepaymentID, rep.ID,
		log.FieldLoanID, loan.ID,
		log.FieldStatus, loan.Status)
	return loan, nil
}

// RevertRepayment deletes a repayment and lets revert adjust the owning
// loan in the same transaction. Returns false if the repayment is absent.
func (r *SQLiteRepository) RevertRepayment(ctx context.Context, id int64, revert func(loan *core.Loan, rep core.Repayment) error) (bool, error) {
	found := false

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		rep, err := getRepayment(ctx, tx, id)
		if IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		loan, err := getLoan(ctx, tx, rep.LoanID)
		if err != nil {
			return err
		}

		if err := revert(loan, *rep); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM loan_repayments WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete repayment %d: %w", id, err)
		}

		return saveBalance(ctx, tx, loan, r.now())
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func saveBalance(ctx context.Context, tx *sqlx.Tx, loan *core.Loan, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE loans
		SET amount_repaid = ?, status = ?, end_date = ?, updated_at = ?
		WHERE id = ?`,
		loan.AmountRepaid, loan.Status, loan.EndDate, now, loan.ID,
	)
	if err != nil {
		return fmt.Errorf("update loan %d balance: %w", loan.ID, err)
	}
	return nil
}
