// Package productrepo provides persistence for the product catalog entries a
// delivery may reference. The core only ever asks whether a product exists;
// the DTO carries enough to seed and inspect test data.
package productrepo

import (
	"time"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}
