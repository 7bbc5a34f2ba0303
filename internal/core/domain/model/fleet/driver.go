package fleet

import (
	"errors"
	"fmt"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not
	// created through the NewDriver or RestoreDriver factory methods.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
)

// DriverStatus represents the availability of a driver.
type DriverStatus int

const (
	// DriverStatusUnknown represents an invalid or undefined status.
	DriverStatusUnknown DriverStatus = iota

	// DriverActive - the driver is on shift and can take work.
	DriverActive

	// DriverOnDelivery - the driver is currently working a delivery or route.
	DriverOnDelivery

	// DriverInactive - the driver is off shift.
	DriverInactive
)

func getDriverStatusStrings() map[DriverStatus]string {
	return map[DriverStatus]string{
		DriverStatusUnknown: "UNKNOWN",
		DriverActive:        "ACTIVE",
		DriverOnDelivery:    "ON_DELIVERY",
		DriverInactive:      "INACTIVE",
	}
}

// DriverStatusFromString parses the persisted/wire representation of a driver status.
func DriverStatusFromString(s string) (DriverStatus, error) {
	for status, str := range getDriverStatusStrings() {
		if str == s && status != DriverStatusUnknown {
			return status, nil
		}
	}
	return DriverStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"driver status is invalid",
		fmt.Errorf("%q is not a valid driver status", s),
	)
}

// Validate checks if the DriverStatus value is valid.
func (s DriverStatus) Validate() error {
	if _, ok := getDriverStatusStrings()[s]; !ok || s == DriverStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver status is invalid",
			fmt.Errorf("%d is not a valid driver status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "ON_DELIVERY".
func (s DriverStatus) String() string {
	if str, ok := getDriverStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Driver is an assignment resource held by in-flight deliveries and routes.
type Driver struct {
	id            kernel.UUID
	name          string
	status        DriverStatus
	isConstructed bool
}

// NewDriver creates an Active Driver.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		status:        DriverActive,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver from persistence.
// Used exclusively by repository implementations.
func RestoreDriver(id kernel.UUID, name string, status DriverStatus) (*Driver, error) {
	d := &Driver{
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Driver was properly constructed through a factory.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Status returns the current driver status.
func (d *Driver) Status() DriverStatus {
	return d.status
}

// TakeWork marks an active driver as busy with a delivery or route.
func (d *Driver) TakeWork() error {
	if d.status != DriverActive {
		return errs.NewConflictError("driver", d.status.String())
	}

	d.status = DriverOnDelivery
	return nil
}

// Release returns a busy driver to the active pool. Releasing a driver
// that is not on delivery is a no-op so terminal cascades stay idempotent.
func (d *Driver) Release() {
	if d.status == DriverOnDelivery {
		d.status = DriverActive
	}
}

// Deactivate takes the driver off shift.
func (d *Driver) Deactivate() error {
	if d.status == DriverOnDelivery {
		return errs.NewConflictError("driver", d.status.String())
	}

	d.status = DriverInactive
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Driver) setStatus(status DriverStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
