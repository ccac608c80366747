package services

import (
	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/kernel"
)

// EscrowLedger is a domain service that moves points between accounts for the
// three escrow operations of a delivery's life: reserving the cost from the
// shipper at initiation, paying couriers at drop-offs, and releasing unused
// funds back to the shipper at completion.
//
// The delivery's own counters (reservedAmount, paidAmount) are maintained by
// the Delivery aggregate; this service only touches account balances. The
// application layer persists both sides in one transaction, which is what
// makes the conservation law hold: points debited at reservation equal points
// credited to couriers plus the final refund.
type EscrowLedger struct{}

// NewEscrowLedger creates a new EscrowLedger instance.
func NewEscrowLedger() EscrowLedger {
	return EscrowLedger{}
}

// Reserve debits the full delivery cost from the shipper.
//
// Fails with account.ErrInsufficientBalance when the shipper cannot cover the
// amount, leaving the balance untouched.
func (e EscrowLedger) Reserve(shipper *account.Account, amount kernel.Points) error {
	if err := shipper.Validate(); err != nil {
		return err
	}
	return shipper.Debit(amount)
}

// PayCourier credits a courier with the payout earned on a completed leg.
func (e EscrowLedger) PayCourier(courier *account.Account, amount kernel.Points) error {
	if err := courier.Validate(); err != nil {
		return err
	}
	return courier.Credit(amount)
}

// Release returns unused escrow to the shipper at completion. A zero refund
// is a no-op.
func (e EscrowLedger) Release(shipper *account.Account, refund kernel.Points) error {
	if err := shipper.Validate(); err != nil {
		return err
	}
	if refund.IsZero() {
		return nil
	}
	return shipper.Credit(refund)
}
