// Package fleetrepo persists drivers and vehicles. Both are small flat
// aggregates, so the two repositories share one package.
package fleetrepo

import (
	"coldchain/internal/core/domain/model/fleet"
	"coldchain/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting drivers.
type DriverDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Status string `gorm:"index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO represents the database structure for persisting vehicles.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlateNumber string    `gorm:"uniqueIndex"`
	Status      string    `gorm:"index"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func driverFromDomain(aggregate *fleet.Driver) DriverDTO {
	return DriverDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Status: aggregate.Status().String(),
	}
}

func driverToDomain(dto DriverDTO) (*fleet.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := fleet.DriverStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return fleet.RestoreDriver(id, dto.Name, status)
}

func vehicleFromDomain(aggregate *fleet.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          aggregate.ID().Bytes(),
		PlateNumber: aggregate.PlateNumber(),
		Status:      aggregate.Status().String(),
	}
}

func vehicleToDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := fleet.VehicleStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return fleet.RestoreVehicle(id, dto.PlateNumber, status)
}
