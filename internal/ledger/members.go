package ledger

import (
	"context"
	"strings"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// CreateMemberParams is the input of CreateMember. Status defaults to Active.
type CreateMemberParams struct {
	Name    string            `validate:"required,max=100"`
	Contact string            `validate:"max=20"`
	Email   string            `validate:"omitempty,max=100,email"`
	Status  core.MemberStatus `validate:"omitempty,oneof=Active Inactive Suspended"`
}

// MemberChanges lists the mutable member fields. Nil fields are left as is;
// the resulting member must still satisfy the CreateMemberParams rules.
type MemberChanges struct {
	Name    *string
	Contact *string
	Email   *string
	Status  *core.MemberStatus
}

func (s *Service) CreateMember(ctx context.Context, p CreateMemberParams) (*core.Member, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Contact = strings.TrimSpace(p.Contact)
	p.Email = strings.TrimSpace(p.Email)
	if p.Status == "" {
		p.Status = core.MemberActive
	}
	if err := s.check(p); err != nil {
		return nil, err
	}

	m := &core.Member{
		Name:     p.Name,
		Contact:  p.Contact,
		Email:    p.Email,
		Status:   p.Status,
		JoinDate: s.now(),
	}
	if err := s.store.CreateMember(ctx, m); err != nil {
		return nil, s.storeError("create member", err)
	}

	s.logger.InfoContext(ctx, "Member created", log.FieldOperation, log.OpCreate, log.FieldMemberID, m.ID)
	return m, nil
}

// GetMember returns nil without an error when no member has the id.
func (s *Service) GetMember(ctx context.Context, id int64) (*core.Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if isMissing(err) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storeError("get member", err)
	}
	return m, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]core.Member, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return nil, s.storeError("list members", err)
	}
	return members, nil
}

// UpdateMember applies the non-nil fields of changes to the member.
func (s *Service) UpdateMember(ctx context.Context, id int64, changes MemberChanges) (*core.Member, error) {
	m, err := s.store.GetMember(ctx, id)
	if isMissing(err) {
		return nil, core.WrapMemberNotFound(id)
	}
	if err != nil {
		return nil, s.storeError("get member", err)
	}

	if changes.Name != nil {
		m.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Contact != nil {
		m.Contact = strings.TrimSpace(*changes.Contact)
	}
	if changes.Email != nil {
		m.Email = strings.TrimSpace(*changes.Email)
	}
	if changes.Status != nil {
		if !changes.Status.Valid() {
			return nil, core.NewValidationError(core.CodeInvalidInput, "status must be one of: Active Inactive Suspended")
		}
		m.Status = *changes.Status
	}

	if err := s.check(CreateMemberParams{Name: m.Name, Contact: m.Contact, Email: m.Email, Status: m.Status}); err != nil {
		return nil, err
	}

	if err := s.store.UpdateMember(ctx, m); err != nil {
		if isMissing(err) {
			return nil, core.WrapMemberNotFound(id)
		}
		return nil, s.storeError("update member", err)
	}

	s.logger.InfoContext(ctx, "Member updated", log.FieldOperation, log.OpUpdate, log.FieldMemberID, id)
	return m, nil
}

// DeleteMember removes the member together with its loans, their
// repayments and its contributions. Reports false if there was no member.
func (s *Service) DeleteMember(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.DeleteMember(ctx, id)
	if err != nil {
		return false, s.storeError("delete member", err)
	}
	if ok {
		s.logger.InfoContext(ctx, "Member deleted", log.FieldOperation, log.OpDelete, log.FieldMemberID, id)
	}
	return ok, nil
}
