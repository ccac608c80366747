// Package delivery provides the Delivery aggregate: the relay lifecycle of a
// package carried hop-by-hop between access points by successive couriers.
//
// The package includes:
//   - Delivery: the aggregate root tracking the planned path, escrow
//     counters, legs, and progress of one shipment
//   - Leg: a value object for one courier's carry between two access points
//   - Status: a state machine enforcing the relay lifecycle
//
// Key business rules:
//   - AwaitingPickup -> InTransit -> ReadyForRecipient -> Completed;
//     dropping off short of the destination returns to AwaitingPickup
//   - Exactly one leg is open while, and only while, the delivery is InTransit
//   - paidAmount never exceeds reservedAmount and never decreases; the sum of
//     completed leg earnings always equals paidAmount
//   - progress is monotonically non-decreasing across drop-offs
//   - Only the assigned courier may drop a claimed delivery off
package delivery
