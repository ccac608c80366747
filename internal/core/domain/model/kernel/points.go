package kernel

import (
	"errors"
	"fmt"

	"relaypost/internal/pkg/errs"
	"relaypost/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// pointsScale is the number of decimal places carried by every Points amount.
const pointsScale = 2

// Errors returned by Points constructors and arithmetic.
var (
	// ErrPointsIsNotConstructed is returned when using an improperly initialized Points value.
	ErrPointsIsNotConstructed = errs.NewValueIsRequiredError(
		"points must be created via NewPoints, PointsFromFloat, PointsFromString, or ZeroPoints")
	// ErrNegativePoints is returned when an operation would produce a negative amount.
	ErrNegativePoints = errors.New("points amount cannot be negative")
)

// Points is an immutable, non-negative amount of delivery points with two
// decimal places of precision. It backs account balances, delivery costs,
// escrow reservations, and courier earnings.
//
// Arithmetic rounds half-up to two decimal places at every step, matching how
// amounts are persisted (numeric(12,2)), so a full journey of payout deltas
// sums exactly to the reserved total.
type Points struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewPoints creates a Points amount from a decimal value.
// Negative amounts are rejected; the value is rounded to two decimal places.
func NewPoints(amount decimal.Decimal) (Points, error) {
	if amount.IsNegative() {
		return Points{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s: %w", amount.String(), ErrNegativePoints))
	}

	return Points{
		amount: amount.Round(pointsScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// PointsFromFloat creates a Points amount from a float64.
func PointsFromFloat(amount float64) (Points, error) {
	return NewPoints(decimal.NewFromFloat(amount))
}

// PointsFromString parses a Points amount from its decimal string form.
func PointsFromString(s string) (Points, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Points{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewPoints(d)
}

// ZeroPoints returns a valid zero amount.
func ZeroPoints() Points {
	return Points{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate returns ErrPointsIsNotConstructed for zero-value instances.
func (p Points) Validate() error {
	return p.guard.Validate(ErrPointsIsNotConstructed)
}

// Add returns the sum of two amounts.
func (p Points) Add(other Points) (Points, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return Points{}, err
	}
	return NewPoints(p.amount.Add(other.amount))
}

// Sub returns the difference of two amounts.
// Returns ErrNegativePoints when the result would drop below zero.
func (p Points) Sub(other Points) (Points, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return Points{}, err
	}

	result := p.amount.Sub(other.amount)
	if result.IsNegative() {
		return Points{}, ErrNegativePoints
	}
	return NewPoints(result)
}

// MulFraction scales the amount by a non-negative fraction, rounding the
// result to two decimal places. Used for progress-based payout deltas.
func (p Points) MulFraction(fraction float64) (Points, error) {
	if err := p.Validate(); err != nil {
		return Points{}, err
	}
	if fraction < 0 {
		return Points{}, errs.NewValueIsInvalidErrorWithCause("fraction",
			fmt.Errorf("%g: %w", fraction, ErrNegativePoints))
	}
	return NewPoints(p.amount.Mul(decimal.NewFromFloat(fraction)))
}

// IsZero reports whether the amount is exactly zero.
func (p Points) IsZero() bool {
	return p.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (p Points) IsEqual(other Points) bool {
	return p.amount.Equal(other.amount)
}

// LessThan reports whether p is strictly smaller than other.
func (p Points) LessThan(other Points) bool {
	return p.amount.LessThan(other.amount)
}

// GreaterThan reports whether p is strictly larger than other.
func (p Points) GreaterThan(other Points) bool {
	return p.amount.GreaterThan(other.amount)
}

// Decimal returns the underlying decimal amount for persistence adapters.
func (p Points) Decimal() decimal.Decimal {
	return p.amount
}

// Float64 returns the amount as a float64 for read models and responses.
func (p Points) Float64() float64 {
	f, _ := p.amount.Float64()
	return f
}

// String returns the fixed two-decimal textual form, e.g. "12.50".
func (p Points) String() string {
	return p.amount.StringFixed(pointsScale)
}
