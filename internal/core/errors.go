package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger matches exactly one of
// these with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("consistency failure")
)

// Error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeMemberNotFound    = "MEMBER_NOT_FOUND"
	CodeLoanNotFound      = "LOAN_NOT_FOUND"
	CodeRepaymentNotFound = "REPAYMENT_NOT_FOUND"
	CodeContribNotFound   = "CONTRIBUTION_NOT_FOUND"
	CodeOverpayment       = "OVERPAYMENT"
	CodeLoanAlreadyPaid   = "LOAN_ALREADY_PAID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
)

// LedgerError carries an error kind, a stable code and an optional cause.
type LedgerError struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LedgerError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewValidationError reports bad or missing input.
func NewValidationError(code, message string) *LedgerError {
	return &LedgerError{Kind: ErrValidation, Code: code, Message: message}
}

// NewNotFoundError reports a referenced id that does not exist.
func NewNotFoundError(code, message string) *LedgerError {
	return &LedgerError{Kind: ErrNotFound, Code: code, Message: message}
}

// WrapDatabaseError reports a storage operation that could not complete.
func WrapDatabaseError(op string, err error) *LedgerError {
	return &LedgerError{
		Kind:    ErrConsistency,
		Code:    CodeDatabaseError,
		Message: op + " failed",
		Err:     err,
	}
}

func WrapMemberNotFound(id int64) *LedgerError {
	return NewNotFoundError(CodeMemberNotFound, fmt.Sprintf("member with ID %d not found", id))
}

func WrapLoanNotFound(id int64) *LedgerError {
	return NewNotFoundError(CodeLoanNotFound, fmt.Sprintf("loan with ID %d not found", id))
}

func WrapRepaymentNotFound(id int64) *LedgerError {
	return NewNotFoundError(CodeRepaymentNotFound, fmt.Sprintf("repayment with ID %d not found", id))
}

func WrapContributionNotFound(id int64) *LedgerError {
	return NewNotFoundError(CodeContribNotFound, fmt.Sprintf("contribution with ID %d not found", id))
}

// IsValidation, IsNotFound and IsConsistency are shorthands for errors.Is.
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsConsistency(err error) bool { return errors.Is(err, ErrConsistency) }
