// Package account provides the Account aggregate: identity, role, and the
// points balance that funds relay deliveries.
//
// The package includes:
//   - Account: the aggregate root holding the points balance
//   - Role: a value object restricting who may ship and who may carry
//
// Key business rules:
//   - Balances are non-negative; a debit below zero fails with
//     ErrInsufficientBalance and leaves the balance untouched
//   - Only shipper and admin roles may initiate deliveries
//   - Only courier and admin roles may claim and carry packages
package account
