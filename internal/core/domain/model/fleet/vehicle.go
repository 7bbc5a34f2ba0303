package fleet

import (
	"errors"
	"fmt"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

var (
	// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
	// created through the NewVehicle or RestoreVehicle factory methods.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")
)

// VehicleStatus represents the availability of a refrigerated vehicle.
type VehicleStatus int

const (
	// VehicleStatusUnknown represents an invalid or undefined status.
	VehicleStatusUnknown VehicleStatus = iota

	// VehicleAvailable - the vehicle is parked and ready for assignment.
	VehicleAvailable

	// VehicleInUse - the vehicle is out on a delivery or route.
	VehicleInUse

	// VehicleMaintenance - the vehicle is in the shop.
	VehicleMaintenance
)

func getVehicleStatusStrings() map[VehicleStatus]string {
	return map[VehicleStatus]string{
		VehicleStatusUnknown: "UNKNOWN",
		VehicleAvailable:     "AVAILABLE",
		VehicleInUse:         "IN_USE",
		VehicleMaintenance:   "MAINTENANCE",
	}
}

// VehicleStatusFromString parses the persisted/wire representation of a vehicle status.
func VehicleStatusFromString(s string) (VehicleStatus, error) {
	for status, str := range getVehicleStatusStrings() {
		if str == s && status != VehicleStatusUnknown {
			return status, nil
		}
	}
	return VehicleStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle status is invalid",
		fmt.Errorf("%q is not a valid vehicle status", s),
	)
}

// Validate checks if the VehicleStatus value is valid.
func (s VehicleStatus) Validate() error {
	if _, ok := getVehicleStatusStrings()[s]; !ok || s == VehicleStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle status is invalid",
			fmt.Errorf("%d is not a valid vehicle status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_USE".
func (s VehicleStatus) String() string {
	if str, ok := getVehicleStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Vehicle is an assignment resource held by in-flight deliveries and routes.
type Vehicle struct {
	id            kernel.UUID
	plateNumber   string
	status        VehicleStatus
	isConstructed bool
}

// NewVehicle creates an Available Vehicle.
func NewVehicle(id kernel.UUID, plateNumber string) (*Vehicle, error) {
	v := &Vehicle{
		status:        VehicleAvailable,
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlateNumber(plateNumber),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a Vehicle from persistence.
// Used exclusively by repository implementations.
func RestoreVehicle(id kernel.UUID, plateNumber string, status VehicleStatus) (*Vehicle, error) {
	v := &Vehicle{
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlateNumber(plateNumber),
		v.setStatus(status),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate ensures the Vehicle was properly constructed through a factory.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// PlateNumber returns the vehicle's registration plate.
func (v *Vehicle) PlateNumber() string {
	return v.plateNumber
}

// Status returns the current vehicle status.
func (v *Vehicle) Status() VehicleStatus {
	return v.status
}

// TakeOut marks an available vehicle as out on a delivery or route.
func (v *Vehicle) TakeOut() error {
	if v.status != VehicleAvailable {
		return errs.NewConflictError("vehicle", v.status.String())
	}

	v.status = VehicleInUse
	return nil
}

// Release parks a vehicle back into the available pool. Releasing a vehicle
// that is not in use is a no-op so terminal cascades stay idempotent.
func (v *Vehicle) Release() {
	if v.status == VehicleInUse {
		v.status = VehicleAvailable
	}
}

// SendToMaintenance takes the vehicle out of service.
func (v *Vehicle) SendToMaintenance() error {
	if v.status == VehicleInUse {
		return errs.NewConflictError("vehicle", v.status.String())
	}

	v.status = VehicleMaintenance
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlateNumber(plateNumber string) error {
	if plateNumber == "" {
		return errs.NewValueIsRequiredError("plateNumber")
	}
	v.plateNumber = plateNumber
	return nil
}

func (v *Vehicle) setStatus(status VehicleStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}
