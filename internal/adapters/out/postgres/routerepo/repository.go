package routerepo

import (
	"context"
	"errors"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/route"
	"coldchain/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route and its stops to the database.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, stops := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if len(stops) > 0 {
		if err := r.db.WithContext(ctx).Create(&stops).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing route and upserts its stops.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, stops := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RouteDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(stops) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&stops).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route with its stops by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a route with its stops by ID, holding a row lock on
// the route until the surrounding transaction ends. Stop settlement and route
// closing serialize on this lock.
func (r *GormRouteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(ctx, id, true)
}

// GetForUpdateByStopID resolves the route owning the given stop and retrieves
// it with a row lock, the way GetForUpdate does. Route-bound deliveries only
// know their stop ID, so the cascade enters the route through this lookup.
func (r *GormRouteRepository) GetForUpdateByStopID(ctx context.Context, stopID kernel.UUID) (*route.Route, error) {
	if err := stopID.Validate(); err != nil {
		return nil, err
	}

	var stop StopDTO
	err := r.db.WithContext(ctx).
		Select("route_id").
		First(&stop, "id = ?", stopID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("routeStop", stopID.String())
		}
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(stop.RouteID[:])
	if err != nil {
		return nil, err
	}

	return r.get(ctx, routeID, true)
}

// GetAllInProgress retrieves all routes currently in progress, with their stops.
func (r *GormRouteRepository) GetAllInProgress(ctx context.Context) ([]*route.Route, error) {
	var dtos []RouteDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ?", route.InProgress.String()).Error
	if err != nil {
		return nil, err
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		stops, err := r.loadStops(ctx, dto.ID)
		if err != nil {
			return nil, err
		}
		aggregate, err := toDomain(dto, stops)
		if err != nil {
			return nil, err
		}
		routes = append(routes, aggregate)
	}

	return routes, nil
}

func (r *GormRouteRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto RouteDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	stops, err := r.loadStops(ctx, dto.ID)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, stops)
}

func (r *GormRouteRepository) loadStops(ctx context.Context, routeID any) ([]StopDTO, error) {
	var stops []StopDTO
	err := r.db.WithContext(ctx).
		Order("stop_number").
		Find(&stops, "route_id = ?", routeID).Error
	if err != nil {
		return nil, err
	}
	return stops, nil
}
