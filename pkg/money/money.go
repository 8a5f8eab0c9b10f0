// Package money provides the Money value object used by the contribution
// ledger.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for
//     EUR, whole francs for XOF).
//   - Currency code must be a supported ISO 4217 code.
//   - All arithmetic operations require matching currencies.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/teranga/cagnotte/pkg/currency"
)

var (
	// ErrUnsupportedCurrency is returned when a currency code is unknown to the
	// marketplace.
	ErrUnsupportedCurrency = errors.New("unsupported currency code")

	// ErrCurrencyMismatch is returned when performing operations on money with
	// different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrAmountExceedsMaxSafeInt is returned when an arithmetic result would
	// overflow the smallest-unit representation.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")
)

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   int64
	currency currency.Code
}

// New creates a Money value from an amount in the smallest currency unit.
func New(amount int64, code currency.Code) (Money, error) {
	if !code.IsValid() || !code.IsSupported() {
		return Money{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return Money{amount: amount, currency: code}, nil
}

// Must creates a Money value and panics if the currency is not supported.
// Intended for constants and test setup.
func Must(amount int64, code currency.Code) Money {
	m, err := New(amount, code)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%d, %s): %v", amount, code, err))
	}
	return m
}

// Zero creates a Money value of zero in the given currency.
func Zero(code currency.Code) Money {
	return Money{amount: 0, currency: code}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() currency.Code {
	return m.currency
}

// AmountFloat returns the amount in the main currency unit (e.g., euros for
// EUR). For display only; arithmetic stays in the smallest unit.
func (m Money) AmountFloat() float64 {
	return float64(m.amount) / math.Pow10(m.currency.Decimals())
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// Add returns the sum of both values.
// Invariants enforced:
//   - Currencies must match.
//   - The sum must not overflow int64.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	if other.amount > 0 && m.amount > math.MaxInt64-other.amount {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	if other.amount < 0 && m.amount < math.MinInt64-other.amount {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Equals reports whether both values have the same amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// GreaterThanOrEqual compares two values of the same currency.
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return m.amount >= other.amount, nil
}

// String renders the value for logs, e.g. "10000 XOF".
func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":   m.amount,
		"currency": m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   int64         `json:"amount"`
		Currency currency.Code `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parsed, err := New(aux.Amount, aux.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
