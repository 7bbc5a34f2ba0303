package route

import (
	"errors"
	"fmt"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

// ErrStopIsNotConstructed is returned when a Stop was not created through
// NewStop or RestoreStop.
var ErrStopIsNotConstructed = errors.New("Stop must be created via NewStop or RestoreStop")

// StopStatus represents the state of one visit on a route.
//
// State transitions:
//
//	StopPending ──> EnRoute ──> Arrived ──> StopCompleted
//	     │             │           │
//	     └─────────────┴───────────┴──────> StopFailed | Skipped
//
// StopCompleted, StopFailed, and Skipped are terminal.
type StopStatus int

const (
	// StopStatusUnknown represents an invalid or undefined status.
	StopStatusUnknown StopStatus = iota

	// StopPending - the stop has not been started yet.
	StopPending

	// EnRoute - the driver is on the way to this stop.
	EnRoute

	// Arrived - the driver is at the stop.
	Arrived

	// StopCompleted - the stop's delivery was completed. Terminal.
	StopCompleted

	// StopFailed - the stop's delivery attempt failed. Terminal.
	StopFailed

	// Skipped - the stop was skipped by dispatch. Terminal.
	Skipped
)

func getStopStatusStrings() map[StopStatus]string {
	return map[StopStatus]string{
		StopStatusUnknown: "UNKNOWN",
		StopPending:       "PENDING",
		EnRoute:           "EN_ROUTE",
		Arrived:           "ARRIVED",
		StopCompleted:     "COMPLETED",
		StopFailed:        "FAILED",
		Skipped:           "SKIPPED",
	}
}

// StopStatusFromString parses the persisted/wire representation of a stop status.
func StopStatusFromString(s string) (StopStatus, error) {
	for status, str := range getStopStatusStrings() {
		if str == s && status != StopStatusUnknown {
			return status, nil
		}
	}
	return StopStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"stop status is invalid",
		fmt.Errorf("%q is not a valid stop status", s),
	)
}

// Validate checks if the StopStatus value is valid.
func (s StopStatus) Validate() error {
	if _, ok := getStopStatusStrings()[s]; !ok || s == StopStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"stop status is invalid",
			fmt.Errorf("%d is not a valid stop status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "EN_ROUTE".
func (s StopStatus) String() string {
	if str, ok := getStopStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s StopStatus) IsTerminal() bool {
	return s == StopCompleted || s == StopFailed || s == Skipped
}

// Stop is one visit on a delivery route. The stop number is 1-based and unique
// within the route; together the stop numbers define the planned visitation
// order. A stop references its delivery by ID.
type Stop struct {
	id            kernel.UUID
	routeID       kernel.UUID
	deliveryID    kernel.UUID
	stopNumber    int
	status        StopStatus
	completedAt   *time.Time
	isConstructed bool
}

// NewStop creates a pending Stop for a route.
func NewStop(id, routeID, deliveryID kernel.UUID, stopNumber int) (*Stop, error) {
	s := &Stop{
		status:        StopPending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setRouteID(routeID),
		s.setDeliveryID(deliveryID),
		s.setStopNumber(stopNumber),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStop reconstructs a Stop from persistence.
// Used exclusively by repository implementations.
func RestoreStop(
	id, routeID, deliveryID kernel.UUID,
	stopNumber int,
	status StopStatus,
	completedAt *time.Time,
) (*Stop, error) {
	s := &Stop{
		completedAt:   completedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setRouteID(routeID),
		s.setDeliveryID(deliveryID),
		s.setStopNumber(stopNumber),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Stop was properly constructed through a factory.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID {
	return s.id
}

// RouteID returns the route this stop belongs to.
func (s *Stop) RouteID() kernel.UUID {
	return s.routeID
}

// DeliveryID returns the delivery visited at this stop.
func (s *Stop) DeliveryID() kernel.UUID {
	return s.deliveryID
}

// StopNumber returns the 1-based position of the stop on its route.
func (s *Stop) StopNumber() int {
	return s.stopNumber
}

// Status returns the current stop status.
func (s *Stop) Status() StopStatus {
	return s.status
}

// CompletedAt returns when the stop reached a terminal status, or nil.
func (s *Stop) CompletedAt() *time.Time {
	return s.completedAt
}

// MarkEnRoute moves the stop from StopPending to EnRoute.
func (s *Stop) MarkEnRoute() error {
	if s.status != StopPending {
		return errs.NewConflictError("route stop", s.status.String())
	}

	s.status = EnRoute
	return nil
}

// MarkArrived moves the stop from EnRoute to Arrived.
func (s *Stop) MarkArrived() error {
	if s.status != EnRoute {
		return errs.NewConflictError("route stop", s.status.String())
	}

	s.status = Arrived
	return nil
}

// Complete marks the stop COMPLETED. Allowed from any non-terminal status:
// a checklist can be submitted before the stop was formally started.
func (s *Stop) Complete(at time.Time) error {
	return s.terminate(StopCompleted, at)
}

// Fail marks the stop FAILED. Allowed from any non-terminal status.
func (s *Stop) Fail(at time.Time) error {
	return s.terminate(StopFailed, at)
}

// Skip marks the stop SKIPPED. Allowed from any non-terminal status.
func (s *Stop) Skip(at time.Time) error {
	return s.terminate(Skipped, at)
}

func (s *Stop) terminate(status StopStatus, at time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewConflictError("route stop", s.status.String())
	}

	s.status = status
	s.completedAt = &at
	return nil
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setRouteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.routeID = id
	return nil
}

func (s *Stop) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.deliveryID = id
	return nil
}

func (s *Stop) setStopNumber(stopNumber int) error {
	if stopNumber < 1 {
		return errs.NewValueIsOutOfRangeError("stopNumber", stopNumber, 1, maxStopsPerRoute)
	}
	if stopNumber > maxStopsPerRoute {
		return errs.NewValueIsOutOfRangeError("stopNumber", stopNumber, 1, maxStopsPerRoute)
	}
	s.stopNumber = stopNumber
	return nil
}

func (s *Stop) setStatus(status StopStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
