// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts and rates
// from user input and rendering them for display.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidRate   = errors.New("invalid interest rate")
)

// ParseAmount converts a user-entered decimal string to a positive amount.
//
// Only a dot is accepted as decimal separator and full precision is kept.
// Commas are rejected outright: "1,000" is a grouped thousand to some
// users and a decimal to others. Returns ErrInvalidAmount for empty,
// signed, malformed or zero input.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("1,000")  -> 0, ErrInvalidAmount
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseUnsigned(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseRate converts a percentage string such as "10" or "12.5". Zero is allowed.
// Like ParseAmount it rejects commas.
func ParseRate(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := parseUnsigned(s)
	if err != nil {
		return decimal.Zero, ErrInvalidRate
	}
	return d, nil
}

func parseUnsigned(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	// decimal accepts exponents; amounts typed by people never have them
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromString(s)
}

// FormatMoney renders an amount with two decimals and an optional symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}
