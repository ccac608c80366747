package deliveryrepo

import (
	"context"
	"errors"

	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database together with its legs.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database. All columns are written,
// including ones that went back to their zero value (a released courier_id),
// and legs are upserted so newly completed legs land in the same write.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("Legs", "id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.saveLegs(ctx, dto.Legs); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateClaim persists a claim as a conditional update: the delivery row
// changes only if it is still awaiting pickup with no assigned courier.
// A lost race surfaces as delivery.ErrStatusConflict, never as a silent
// overwrite.
func (r *GormDeliveryRepository) UpdateClaim(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ? AND courier_id IS NULL",
			dto.ID, delivery.AwaitingPickup.String()).
		Updates(map[string]any{
			"status":     dto.Status,
			"courier_id": dto.CourierID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return delivery.ErrStatusConflict
	}

	if err := r.saveLegs(ctx, dto.Legs); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID, restored with its full leg history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a delivery by ID and takes a row lock for the
// duration of the surrounding transaction. Lifecycle mutations (drop-off,
// pickup) go through this method so concurrent writers of the same delivery
// serialize on the row instead of completing the same leg twice from stale
// snapshots.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, true)
}

func (r *GormDeliveryRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		// The lock lands on the deliveries row only; the legs preload
		// runs unlocked, which is safe because legs are written solely
		// by holders of the delivery lock.
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto DeliveryDTO
	err := tx.
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveByCourier counts the deliveries a courier currently carries.
func (r *GormDeliveryRepository) CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int, error) {
	if err := courierID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("courier_id = ? AND status = ?", courierID.Bytes(), delivery.InTransit.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormDeliveryRepository) saveLegs(ctx context.Context, legs []LegDTO) error {
	if len(legs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&legs).Error
}
