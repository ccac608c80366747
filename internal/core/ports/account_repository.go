package ports

import (
	"context"

	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate.
	Update(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetForUpdate retrieves an account and locks its row for the duration
	// of the surrounding transaction, so balance adjustments are an atomic
	// read-modify-write per account.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*account.Account, error)
}
