package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// ContributionParams is the input of RecordContribution. Type defaults to
// Monthly, Month to the current "YYYY-MM" and Date to now. Month is stored
// as given.
type ContributionParams struct {
	MemberID int64                 `validate:"required,gt=0"`
	Amount   decimal.Decimal       `validate:"decimal_gt=0"`
	Type     core.ContributionType `validate:"omitempty,oneof=Monthly Weekly Voluntary"`
	Month    string
	Date     *time.Time
	Notes    string `validate:"max=255"`
}

func (s *Service) RecordContribution(ctx context.Context, p ContributionParams) (*core.Contribution, error) {
	p.Notes = strings.TrimSpace(p.Notes)
	if p.Type == "" {
		p.Type = core.ContributionMonthly
	}
	if err := s.check(p); err != nil {
		return nil, err
	}
	if err := s.memberExists(ctx, p.MemberID); err != nil {
		return nil, err
	}

	now := s.now()
	month := p.Month
	if strings.TrimSpace(month) == "" {
		month = core.MonthOf(now)
	}

	c := &core.Contribution{
		MemberID:         p.MemberID,
		Amount:           p.Amount,
		Type:             p.Type,
		Month:            month,
		ContributionDate: orNow(p.Date, now),
		Notes:            p.Notes,
	}
	if err := s.store.CreateContribution(ctx, c); err != nil {
		return nil, s.storeError("record contribution", err)
	}

	fields := log.NewFields().WithOperation(log.OpRecord).WithMember(c.MemberID).WithAmount(c.Amount)
	s.logger.InfoContext(ctx, "Contribution recorded",
		append(fields.ToSlice(), log.FieldContribution, c.ID, log.FieldMonth, c.Month)...)
	return c, nil
}

func (s *Service) ListContributions(ctx context.Context) ([]core.Contribution, error) {
	cs, err := s.store.ListContributions(ctx)
	if err != nil {
		return nil, s.storeError("list contributions", err)
	}
	return cs, nil
}

func (s *Service) ListContributionsByMember(ctx context.Context, memberID int64) ([]core.Contribution, error) {
	cs, err := s.store.ListContributionsByMember(ctx, memberID)
	if err != nil {
		return nil, s.storeError("list contributions by member", err)
	}
	return cs, nil
}

// ListContributionsByMonth matches the month tag exactly.
func (s *Service) ListContributionsByMonth(ctx context.Context, month string) ([]core.Contribution, error) {
	cs, err := s.store.ListContributionsByMonth(ctx, month)
	if err != nil {
		return nil, s.storeError("list contributions by month", err)
	}
	return cs, nil
}

func (s *Service) DeleteContribution(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.DeleteContribution(ctx, id)
	if err != nil {
		return false, s.storeError("delete contribution", err)
	}
	if ok {
		s.logger.InfoContext(ctx, "Contribution deleted", log.FieldOperation, log.OpDelete, log.FieldContribution, id)
	}
	return ok, nil
}
