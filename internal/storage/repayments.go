package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"coopledger/internal/core"
)

const repaymentColumns = `id, loan_id, amount_paid, payment_date, notes, created_at`

func (r *SQLiteRepository) GetRepayment(ctx context.Context, id int64) (*core.Repayment, error) {
	return getRepayment(ctx, r.db, id)
}

func getRepayment(ctx context.Context, q sqlx.QueryerContext, id int64) (*core.Repayment, error) {
	var rep core.Repayment
	err := sqlx.GetContext(ctx, q, &rep, `SELECT `+repaymentColumns+` FROM loan_repayments WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get repayment %d: %w", id, err)
	}
	return &rep, nil
}

// ListRepaymentsByLoan returns a loan's repayments in the order they were recorded.
func (r *SQLiteRepository) ListRepaymentsByLoan(ctx context.Context, loanID int64) ([]core.Repayment, error) {
	var reps []core.Repayment
	err := r.db.SelectContext(ctx, &reps,
		`SELECT `+repaymentColumns+` FROM loan_repayments WHERE loan_id = ? ORDER BY id`, loanID)
	if err != nil {
		return nil, fmt.Errorf("list repayments for loan %d: %w", loanID, err)
	}
	return reps, nil
}

func (r *SQLiteRepository) ListRepayments(ctx context.Context) ([]core.Repayment, error) {
	var reps []core.Repayment
	if err := r.db.SelectContext(ctx, &reps, `SELECT `+repaymentColumns+` FROM loan_repayments ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list repayments: %w", err)
	}
	return reps, nil
}
