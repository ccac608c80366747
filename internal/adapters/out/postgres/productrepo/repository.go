package productrepo

import (
	"context"

	"relaypost/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductCatalog using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Exists reports whether a product with the given id is in the catalog.
func (r *GormProductRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("id = ?", id.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Add inserts a product into the catalog.
func (r *GormProductRepository) Add(ctx context.Context, id kernel.UUID, name string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := ProductDTO{ID: id.Bytes(), Name: name}
	return r.db.WithContext(ctx).Create(&dto).Error
}
