// Package services provides domain services that implement business rules
// spanning multiple aggregates of the relay delivery system.
//
// The package includes:
//   - Tariff: converts hop distances into delivery costs and leg earnings
//   - ProgressTracker: measures fractional completion of a planned path and
//     derives incremental payouts from progress made since the last payout
//   - EscrowLedger: moves points between accounts for reservation, courier
//     payout, and final release of unused funds
//
// Domain services hold no persistent state of their own. They operate on
// aggregates passed in by the application layer, which is responsible for
// transactional boundaries.
package services
