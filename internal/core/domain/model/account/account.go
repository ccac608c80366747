package account

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
	"relaypost/internal/pkg/guard"
)

// Domain errors for account operations.
var (
	// ErrAccountIsNotConstructed is returned when using an Account that was not
	// created through NewAccount or RestoreAccount.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")
	// ErrInsufficientBalance is returned when a debit would drop the balance
	// below zero. The balance is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrRoleNotAllowed is returned when an account's role does not permit
	// the requested operation.
	ErrRoleNotAllowed = errors.New("account role is not allowed to perform this operation")
)

// Account is the aggregate root for a participant in the relay network.
// It owns the points balance that escrow reservations draw from and courier
// payouts credit into.
//
// Invariants:
//   - The balance never goes negative; Debit fails closed.
//   - Role is fixed at construction and validated on restore.
//   - Instances are only created through NewAccount or RestoreAccount.
type Account struct {
	id      kernel.UUID
	name    string
	role    Role
	balance kernel.Points

	guard guard.ConstructorGuard
}

// NewAccount creates a new Account with the given opening balance.
func NewAccount(id kernel.UUID, name string, role Role, balance kernel.Points) (*Account, error) {
	a := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setRole(role),
		a.setBalance(balance),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAccount reconstructs an Account from persistence.
// The same validation as NewAccount applies; rows that fail it indicate
// corrupted data and are rejected rather than repaired.
func RestoreAccount(id kernel.UUID, name string, role Role, balance kernel.Points) (*Account, error) {
	return NewAccount(id, name, role, balance)
}

// Validate ensures the Account was built through a constructor.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the display name.
func (a *Account) Name() string {
	return a.name
}

// Role returns the account role.
func (a *Account) Role() Role {
	return a.role
}

// Balance returns the current points balance.
func (a *Account) Balance() kernel.Points {
	return a.balance
}

// IsEqual compares two accounts by identifier.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// Debit removes amount from the balance.
// Fails with ErrInsufficientBalance when the balance does not cover the
// amount; the balance is left unchanged on any failure.
func (a *Account) Debit(amount kernel.Points) error {
	if err := errors.Join(a.Validate(), amount.Validate()); err != nil {
		return err
	}

	if a.balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	newBalance, err := a.balance.Sub(amount)
	if err != nil {
		return err
	}

	a.balance = newBalance
	return nil
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount kernel.Points) error {
	if err := errors.Join(a.Validate(), amount.Validate()); err != nil {
		return err
	}

	newBalance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}

	a.balance = newBalance
	return nil
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Account) setBalance(balance kernel.Points) error {
	if err := balance.Validate(); err != nil {
		return err
	}
	a.balance = balance
	return nil
}
