package deliveryrepo

import (
	"context"
	"errors"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"

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

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, checklist, photos := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.saveChildren(ctx, items, checklist, photos); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database. Items insert idempotently
// on their composite key and the checklist upserts on the delivery ID, so a
// resubmitted checklist never duplicates child rows.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items, checklist, photos := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if err := r.saveChildren(ctx, items, checklist, photos); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a delivery by ID with a row lock held until the
// surrounding transaction ends. Concurrent completions serialize on this
// lock; the loser observes a terminal status.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, id, true)
}

func (r *GormDeliveryRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto DeliveryDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	items, checklist, photos, err := r.loadChildren(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, items, checklist, photos)
}

func (r *GormDeliveryRepository) saveChildren(ctx context.Context, items []ItemDTO, checklist *ChecklistDTO, photos []PhotoDTO) error {
	if len(items) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&items).Error
		if err != nil {
			return err
		}
	}

	if checklist == nil {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "delivery_id"}},
			UpdateAll: true,
		}).
		Create(checklist).Error
	if err != nil {
		return err
	}

	// Photos have no natural key; replace the set on every save.
	err = r.db.WithContext(ctx).
		Where("checklist_id = ?", checklist.ID).
		Delete(&PhotoDTO{}).Error
	if err != nil {
		return err
	}
	if len(photos) > 0 {
		if err := r.db.WithContext(ctx).Create(&photos).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *GormDeliveryRepository) loadChildren(ctx context.Context, deliveryID any) ([]ItemDTO, *ChecklistDTO, []PhotoDTO, error) {
	var items []ItemDTO
	err := r.db.WithContext(ctx).
		Order("order_item_id").
		Find(&items, "delivery_id = ?", deliveryID).Error
	if err != nil {
		return nil, nil, nil, err
	}

	var checklist ChecklistDTO
	err = r.db.WithContext(ctx).First(&checklist, "delivery_id = ?", deliveryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return items, nil, nil, nil
		}
		return nil, nil, nil, err
	}

	var photos []PhotoDTO
	err = r.db.WithContext(ctx).
		Order("id").
		Find(&photos, "checklist_id = ?", checklist.ID).Error
	if err != nil {
		return nil, nil, nil, err
	}

	return items, &checklist, photos, nil
}
