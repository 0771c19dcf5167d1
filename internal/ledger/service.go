// Package ledger owns the cooperative's members, loans, repayments and
// contributions and enforces the arithmetic that ties a loan's principal,
// interest and repayments together.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"coopledger/internal/core"
	"coopledger/internal/log"
)

// Service is the ledger core. It holds no state of its own beyond the store.
type Service struct {
	store    Store
	validate *validator.Validate
	logger   *log.Logger
	now      func() time.Time
}

func NewService(store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Discard()
	}
	return &Service{
		store:    store,
		validate: newValidator(),
		logger:   logger.WithComponent(log.ComponentLedger),
		now:      time.Now,
	}
}

// newValidator returns a validator that understands decimal amounts through
// the decimal_gt and decimal_gte tags.
func newValidator() *validator.Validate {
	v := validator.New()

	// Decimals are validated as their exact string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterValidation("decimal_gt", decimalCheck(decimal.Decimal.GreaterThan))
	v.RegisterValidation("decimal_gte", decimalCheck(decimal.Decimal.GreaterThanOrEqual))
	return v
}

func decimalCheck(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

// check validates params and converts failures into a ValidationError.
func (s *Service) check(params any) error {
	err := s.validate.Struct(params)
	if err == nil {
		return nil
	}

	s.logger.Debug("Validation failed",
		log.FieldOperation, log.OpValidate,
		log.FieldErrorType, log.ErrorTypeValidation,
		log.FieldError, err)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return core.NewValidationError(core.CodeInvalidInput, err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return core.NewValidationError(core.CodeInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "decimal_gt", "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "decimal_gte", "gte":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// storeError maps a persistence failure to the ledger's taxonomy.
func (s *Service) storeError(op string, err error) error {
	var lerr *core.LedgerError
	if errors.As(err, &lerr) {
		return lerr
	}
	s.logger.Error("Store operation failed", log.NewFields().
		WithOperation(op).
		WithErrorType(log.ErrorTypeDatabase).
		WithError(err).
		ToSlice()...)
	return core.WrapDatabaseError(op, err)
}

func isMissing(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// memberExists is the referential check shared by loans and contributions.
func (s *Service) memberExists(ctx context.Context, id int64) error {
	if _, err := s.store.GetMember(ctx, id); err != nil {
		if isMissing(err) {
			return core.NewValidationError(core.CodeMemberNotFound, fmt.Sprintf("member with ID %d does not exist", id))
		}
		return s.storeError("get member", err)
	}
	return nil
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return *t
}
