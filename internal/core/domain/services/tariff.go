package services

import (
	"fmt"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Default tariff parameters. The cost of a delivery scales with the hop
// distance between the origin and destination stations, with a platform fee
// applied on top.
const (
	defaultCostPerHop      = "1.50"
	defaultPlatformFeeRate = "0.10"
)

// Tariff is a domain service that prices deliveries and legs from hop
// distances.
//
// Pricing formula:
//
//	cost = hops x costPerHop x (1 + platformFeeRate)
//
// rounded to two decimal places. Leg earnings use the same formula scoped to
// the leg's own hop distance, so a courier who carries the whole planned path
// in one leg earns the full base amount.
type Tariff struct {
	costPerHop      decimal.Decimal
	platformFeeRate decimal.Decimal
}

// NewTariff creates a Tariff with explicit parameters, both given as decimal
// strings. The cost per hop must be positive and the fee rate non-negative.
func NewTariff(costPerHop string, platformFeeRate string) (Tariff, error) {
	cost, err := decimal.NewFromString(costPerHop)
	if err != nil {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("costPerHop", err)
	}
	if !cost.IsPositive() {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("costPerHop",
			fmt.Errorf("%s is not greater than 0", cost.String()))
	}

	rate, err := decimal.NewFromString(platformFeeRate)
	if err != nil {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("platformFeeRate", err)
	}
	if rate.IsNegative() {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("platformFeeRate",
			fmt.Errorf("%s is negative", rate.String()))
	}

	return Tariff{costPerHop: cost, platformFeeRate: rate}, nil
}

// NewDefaultTariff creates a Tariff with the standard platform parameters:
// 1.50 points per hop and a 10% platform fee.
func NewDefaultTariff() Tariff {
	return Tariff{
		costPerHop:      decimal.RequireFromString(defaultCostPerHop),
		platformFeeRate: decimal.RequireFromString(defaultPlatformFeeRate),
	}
}

// DeliveryCost computes the full price of a delivery spanning the given hop
// distance. A zero-hop delivery (origin and destination on the same station)
// is free.
func (t Tariff) DeliveryCost(hopDistance int) (kernel.Points, error) {
	return t.price(hopDistance)
}

// LegEarnings computes what a single leg of the given hop distance is worth
// under the same formula as DeliveryCost.
func (t Tariff) LegEarnings(hopDistance int) (kernel.Points, error) {
	return t.price(hopDistance)
}

func (t Tariff) price(hopDistance int) (kernel.Points, error) {
	if hopDistance < 0 {
		return kernel.Points{}, errs.NewValueIsInvalidErrorWithCause(
			"hopDistance",
			fmt.Errorf("%d is not greater than or equal to 0", hopDistance),
		)
	}

	amount := decimal.NewFromInt(int64(hopDistance)).
		Mul(t.costPerHop).
		Mul(decimal.NewFromInt(1).Add(t.platformFeeRate))

	return kernel.NewPoints(amount)
}
