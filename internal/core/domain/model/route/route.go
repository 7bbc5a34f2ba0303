package route

import (
	"errors"
	"fmt"
	"sort"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

// maxStopsPerRoute bounds a single route; vehicles carry at most a day's stops.
const maxStopsPerRoute = 100

var (
	// ErrRouteIsNotConstructed is returned when a Route instance was not created
	// through the NewRoute or RestoreRoute factory methods.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute")
)

// Status represents the lifecycle state of a delivery route.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Planned - the route is assembled but the driver has not left yet.
	Planned

	// InProgress - the driver is working the route.
	InProgress

	// Completed - every stop is terminal and the vehicle has been released.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Planned:       "PLANNED",
		InProgress:    "IN_PROGRESS",
		Completed:     "COMPLETED",
	}
}

// StatusFromString parses the persisted/wire representation of a route status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"route status is invalid",
		fmt.Errorf("%q is not a valid route status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"route status is invalid",
			fmt.Errorf("%d is not a valid route status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_PROGRESS".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Route is the aggregate root for a multi-stop delivery route. It owns its
// stops and holds the driver and vehicle working the route.
//
// Route follows these invariants:
//   - stop numbers are unique within the route and define the visitation order
//   - the route is Completed iff every stop is in a terminal status
//   - stops terminate in any order; completion is re-evaluated after every
//     stop transition, never assumed from sequential progress
type Route struct {
	id            kernel.UUID
	driverID      kernel.UUID
	vehicleID     kernel.UUID
	status        Status
	stops         []*Stop
	isConstructed bool
}

// NewRoute creates a Planned Route over the given stops. Stops are kept
// sorted by stop number; duplicate stop numbers are rejected.
func NewRoute(id, driverID, vehicleID kernel.UUID, stops []*Stop) (*Route, error) {
	r := &Route{
		status:        Planned,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setDriverID(driverID),
		r.setVehicleID(vehicleID),
		r.setStops(stops),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute reconstructs a Route from persistence.
// Used exclusively by repository implementations.
func RestoreRoute(
	id, driverID, vehicleID kernel.UUID,
	status Status,
	stops []*Stop,
) (*Route, error) {
	r := &Route{
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setDriverID(driverID),
		r.setVehicleID(vehicleID),
		r.setStatus(status),
		r.setStops(stops),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Route was properly constructed through a factory.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// DriverID returns the driver working the route.
func (r *Route) DriverID() kernel.UUID {
	return r.driverID
}

// VehicleID returns the vehicle assigned to the route.
func (r *Route) VehicleID() kernel.UUID {
	return r.vehicleID
}

// Status returns the current route status.
func (r *Route) Status() Status {
	return r.status
}

// Stops returns the route's stops in visitation order.
func (r *Route) Stops() []*Stop {
	return r.stops
}

// StopByID finds a stop on the route by its identifier.
func (r *Route) StopByID(stopID kernel.UUID) (*Stop, error) {
	for _, s := range r.stops {
		if s.ID().IsEqual(stopID) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("routeStop", stopID.String())
}

// NextPendingStopAfter returns the pending stop with the lowest stop number
// strictly greater than the given one, or nil when no such stop exists.
// Used by the cascade to auto-advance the driver after a non-failed stop.
func (r *Route) NextPendingStopAfter(stopNumber int) *Stop {
	for _, s := range r.stops {
		if s.StopNumber() > stopNumber && s.Status() == StopPending {
			return s
		}
	}
	return nil
}

// AllStopsTerminal reports whether every stop on the route has reached a
// terminal status. Stops may terminate out of numeric order.
func (r *Route) AllStopsTerminal() bool {
	for _, s := range r.stops {
		if !s.Status().IsTerminal() {
			return false
		}
	}
	return true
}

// Start moves the route from Planned to InProgress.
func (r *Route) Start() error {
	if r.status != Planned {
		return errs.NewConflictError("route", r.status.String())
	}

	r.status = InProgress
	return nil
}

// CloseIfFinished marks the route Completed when every stop is terminal.
// Returns true when the route was closed by this call; false when it must
// stay open or was already closed.
func (r *Route) CloseIfFinished() bool {
	if r.status == Completed {
		return false
	}
	if !r.AllStopsTerminal() {
		return false
	}

	r.status = Completed
	return true
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.driverID = id
	return nil
}

func (r *Route) setVehicleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.vehicleID = id
	return nil
}

func (r *Route) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Route) setStops(stops []*Stop) error {
	seen := make(map[int]bool, len(stops))
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.StopNumber()] {
			return errs.NewValueIsInvalidErrorWithCause("stops",
				fmt.Errorf("duplicate stop number %d", s.StopNumber()))
		}
		seen[s.StopNumber()] = true
	}

	sorted := make([]*Stop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StopNumber() < sorted[j].StopNumber()
	})

	r.stops = sorted
	return nil
}
