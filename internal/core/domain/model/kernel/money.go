package kernel

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor currency
// units (e.g. paise). Using integer minor units keeps order totals exact:
// the invariant total = subtotal + delivery fee - discount must never drift,
// which floating point arithmetic cannot guarantee.
//
// Money is immutable; arithmetic methods return new values. Negative amounts
// are not representable, so subtraction that would go below zero fails.
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor currency units.
// Returns an error if the amount is negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d - %d is negative", m.amount, other.amount),
		)
	}
	return Money{amount: m.amount - other.amount}, nil
}

// MulQty returns the amount multiplied by a non-negative quantity.
func (m Money) MulQty(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is negative", qty),
		)
	}
	return Money{amount: m.amount * int64(qty)}, nil
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String returns the amount formatted in major units with two decimals.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}
