// Package accountrepo provides data transfer objects and mapping functions
// for account persistence. Balances are stored as numeric(12,2) so escrow
// arithmetic survives the round trip exactly.
package accountrepo

import (
	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDTO represents the database structure for persisting accounts.
type AccountDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name    string          `gorm:"type:varchar(255)"`
	Role    string          `gorm:"type:varchar(32)"`
	Balance decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database representation.
func fromDomain(aggregate *account.Account) AccountDTO {
	return AccountDTO{
		ID:      aggregate.ID().Bytes(),
		Name:    aggregate.Name(),
		Role:    aggregate.Role().String(),
		Balance: aggregate.Balance().Decimal(),
	}
}

// toDomain converts a database DTO to an account domain aggregate.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	balance, err := kernel.NewPoints(dto.Balance)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Name, role, balance)
}
