// Package kernel contains the shared value objects of the relay delivery
// domain: UUID identifiers, Points balances, and geographic Coordinates.
//
// All three are immutable value objects following the constructor-guard
// pattern: the zero value is invalid and Validate rejects instances that were
// not built through a constructor. This keeps identifiers, money-like amounts,
// and positions from entering the domain half-initialized.
package kernel
