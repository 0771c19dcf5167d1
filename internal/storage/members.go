package storage

import (
	"context"
	"fmt"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

const memberColumns = `id, name, contact, email, join_date, status, created_at, updated_at`

// CreateMember inserts m and fills in its id and timestamps.
func (r *SQLiteRepository) CreateMember(ctx context.Context, m *core.Member) error {
	now := r.now()
	if m.JoinDate.IsZero() {
		m.JoinDate = now
	}
	m.CreatedAt, m.UpdatedAt = now, now

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO members (name, contact, email, join_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.Contact, m.Email, m.JoinDate, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}

	if m.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("member id: %w", err)
	}

	r.logger.DebugContext(ctx, "Member saved", log.FieldMemberID, m.ID)
	return nil
}

func (r *SQLiteRepository) GetMember(ctx context.Context, id int64) (*core.Member, error) {
	var m core.Member
	if err := r.db.GetContext(ctx, &m, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return &m, nil
}

func (r *SQLiteRepository) ListMembers(ctx context.Context) ([]core.Member, error) {
	var members []core.Member
	if err := r.db.SelectContext(ctx, &members, `SELECT `+memberColumns+` FROM members ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// UpdateMember writes the mutable columns of m.
func (r *SQLiteRepository) UpdateMember(ctx context.Context, m *core.Member) error {
	m.UpdatedAt = r.now()

	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET name = ?, contact = ?, email = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		m.Name, m.Contact, m.Email, m.Status, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update member %d: %w", m.ID, err)
	}

	ok, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update member %d: %w", m.ID, ErrNotFound)
	}
	return nil
}

// DeleteMember removes the member; loans, repayments and contributions
// follow through ON DELETE CASCADE.
func (r *SQLiteRepository) DeleteMember(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete member %d: %w", id, err)
	}
	return rowsAffected(res)
}

func (r *SQLiteRepository) CountMembers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM members`); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}
