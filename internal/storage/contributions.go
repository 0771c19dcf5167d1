package storage

import (
	"context"
	"fmt"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

const contributionColumns = `id, member_id, amount, contribution_date, contribution_type, month, notes, created_at`

// CreateContribution inserts c and fills in its id and creation time.
func (r *SQLiteRepository) CreateContribution(ctx context.Context, c *core.Contribution) error {
	now := r.now()
	if c.ContributionDate.IsZero() {
		c.ContributionDate = now
	}
	if c.Month == "" {
		c.Month = core.MonthOf(now)
	}
	c.CreatedAt = now

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO contributions (member_id, amount, contribution_date, contribution_type, month, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.MemberID, c.Amount, c.ContributionDate, c.Type, c.Month, c.Notes, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}

	if c.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("contribution id: %w", err)
	}

	r.logger.DebugContext(ctx, "Contribution saved",
		log.FieldContribution, c.ID,
		log.FieldMemberID, c.MemberID,
		log.FieldMonth, c.Month)
	return nil
}

func (r *SQLiteRepository) GetContribution(ctx context.Context, id int64) (*core.Contribution, error) {
	var c core.Contribution
	err := r.db.GetContext(ctx, &c, `SELECT `+contributionColumns+` FROM contributions WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get contribution %d: %w", id, err)
	}
	return &c, nil
}

func (r *SQLiteRepository) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	var cs []core.Contribution
	if err := r.db.SelectContext(ctx, &cs, `SELECT `+contributionColumns+` FROM contributions ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return cs, nil
}

func (r *SQLiteRepository) ListContributionsByMember(ctx context.Context, memberID int64) ([]core.Contribution, error) {
	var cs []core.Contribution
	err := r.db.SelectContext(ctx, &cs,
		`SELECT `+contributionColumns+` FROM contributions WHERE member_id = ? ORDER BY id`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list contributions for member %d: %w", memberID, err)
	}
	return cs, nil
}

// ListContributionsByMonth matches the month tag exactly.
func (r *SQLiteRepository) ListContributionsByMonth(ctx context.Context, month string) ([]core.Contribution, error) {
	var cs []core.Contribution
	err := r.db.SelectContext(ctx, &cs,
		`SELECT `+contributionColumns+` FROM contributions WHERE month = ? ORDER BY id`, month)
	if err != nil {
		return nil, fmt.Errorf("list contributions for %s: %w", month, err)
	}
	return cs, nil
}

func (r *SQLiteRepository) DeleteContribution(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete contribution %d: %w", id, err)
	}
	return rowsAffected(res)
}
