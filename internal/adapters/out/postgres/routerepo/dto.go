// Package routerepo persists the route aggregate together with its stops.
package routerepo

import (
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting route aggregates.
type RouteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID  uuid.UUID `gorm:"type:uuid"`
	VehicleID uuid.UUID `gorm:"type:uuid"`
	Status    string    `gorm:"index"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

// StopDTO represents one visit on a route. The unique index on RouteID and
// StopNumber backs the domain rule that stop numbers never repeat on a route.
type StopDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RouteID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_route_stop_number"`
	DeliveryID  uuid.UUID `gorm:"type:uuid"`
	StopNumber  int       `gorm:"uniqueIndex:idx_route_stop_number"`
	Status      string
	CompletedAt *time.Time
}

func (StopDTO) TableName() string {
	return "route_stops"
}

// fromDomain converts a route aggregate to its table representations.
func fromDomain(aggregate *route.Route) (RouteDTO, []StopDTO) {
	dto := RouteDTO{
		ID:        aggregate.ID().Bytes(),
		DriverID:  aggregate.DriverID().Bytes(),
		VehicleID: aggregate.VehicleID().Bytes(),
		Status:    aggregate.Status().String(),
	}

	stops := make([]StopDTO, 0, len(aggregate.Stops()))
	for _, stop := range aggregate.Stops() {
		stops = append(stops, StopDTO{
			ID:          stop.ID().Bytes(),
			RouteID:     dto.ID,
			DeliveryID:  stop.DeliveryID().Bytes(),
			StopNumber:  stop.StopNumber(),
			Status:      stop.Status().String(),
			CompletedAt: stop.CompletedAt(),
		})
	}

	return dto, stops
}

// toDomain reconstructs a route aggregate from its table representations.
func toDomain(dto RouteDTO, stopDTOs []StopDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	status, err := route.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	stops := make([]*route.Stop, 0, len(stopDTOs))
	for _, stopDTO := range stopDTOs {
		stop, err := stopToDomain(stopDTO)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	return route.RestoreRoute(id, driverID, vehicleID, status, stops)
}

func stopToDomain(dto StopDTO) (*route.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	status, err := route.StopStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return route.RestoreStop(id, routeID, deliveryID, dto.StopNumber, status, dto.CompletedAt)
}
