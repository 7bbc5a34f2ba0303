package delivery

import (
	"errors"
	"fmt"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through the NewDelivery or RestoreDelivery factory methods.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")
)

// Delivery is the aggregate root tracking one shipment of an order from
// scheduling to a terminal status. It owns the items recorded at checklist
// submission and the checklist itself, references its order, and optionally
// references a driver, a vehicle, and (through its Binding) a route stop.
//
// Delivery follows these invariants:
//   - an order has at most one active delivery
//   - a terminal status (Delivered, PartiallyDelivered, Failed, Cancelled)
//     accepts no further transitions; completing a terminal delivery is a
//     state conflict
//   - deliveryTime is set exactly when the delivery reaches a terminal
//     status through a completion event
//   - items are recorded once; the checklist upserts on the delivery ID
//
// Only the fulfillment cascade transitions delivery status fields; all other
// call sites create deliveries or read them.
type Delivery struct {
	id            kernel.UUID
	orderID       kernel.UUID
	driverID      *kernel.UUID
	vehicleID     *kernel.UUID
	binding       Binding
	status        Status
	scheduledDate time.Time
	deliveryTime  *time.Time
	items         []*Item
	checklist     *Checklist
	isConstructed bool
}

// NewDelivery creates a standalone Delivery in Pending status for an order.
// Use BindToStop to attach it to a route afterwards.
func NewDelivery(id, orderID kernel.UUID, scheduledDate time.Time) (*Delivery, error) {
	d := &Delivery{
		binding:       Standalone{},
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setScheduledDate(scheduledDate),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Used exclusively by repository implementations.
func RestoreDelivery(
	id, orderID kernel.UUID,
	driverID, vehicleID *kernel.UUID,
	binding Binding,
	status Status,
	scheduledDate time.Time,
	deliveryTime *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		driverID:      driverID,
		vehicleID:     vehicleID,
		deliveryTime:  deliveryTime,
		isConstructed: true,
	}

	if binding == nil {
		binding = Standalone{}
	}
	d.binding = binding

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setScheduledDate(scheduledDate),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Delivery was properly constructed through a factory.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the order this delivery fulfills.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// DriverID returns the assigned driver's ID, or nil when unassigned.
func (d *Delivery) DriverID() *kernel.UUID {
	return d.driverID
}

// VehicleID returns the assigned vehicle's ID, or nil when unassigned.
func (d *Delivery) VehicleID() *kernel.UUID {
	return d.vehicleID
}

// Binding returns the routing variant of this delivery. Callers switch on the
// concrete type (RouteBound or Standalone) to pick the release path.
func (d *Delivery) Binding() Binding {
	return d.binding
}

// Status returns the current delivery status.
func (d *Delivery) Status() Status {
	return d.status
}

// ScheduledDate returns the date the delivery was planned for.
func (d *Delivery) ScheduledDate() time.Time {
	return d.scheduledDate
}

// DeliveryTime returns when the delivery reached its terminal status,
// or nil while it is still open.
func (d *Delivery) DeliveryTime() *time.Time {
	return d.deliveryTime
}

// Items returns the items recorded at checklist submission.
func (d *Delivery) Items() []*Item {
	return d.items
}

// Checklist returns the attached checklist, or nil when none was submitted yet.
func (d *Delivery) Checklist() *Checklist {
	return d.checklist
}

// Assign attaches a driver and vehicle to the delivery. Allowed only while
// the delivery is Pending.
func (d *Delivery) Assign(driverID, vehicleID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if d.status != Pending {
		return errs.NewConflictError("delivery", d.status.String())
	}

	d.driverID = &driverID
	d.vehicleID = &vehicleID
	return nil
}

// BindToStop attaches the delivery to a route stop, making it route-bound.
func (d *Delivery) BindToStop(stopID kernel.UUID) error {
	bound, err := NewRouteBound(stopID)
	if err != nil {
		return err
	}

	d.binding = bound
	return nil
}

// OwnedBy reports whether the given driver is assigned to this delivery.
// The cascade rejects completion attempts by any other caller.
func (d *Delivery) OwnedBy(driverID kernel.UUID) bool {
	return d.driverID != nil && d.driverID.IsEqual(driverID)
}

// Start moves the delivery from Pending to InTransit.
// Any other current status is a state conflict.
func (d *Delivery) Start() error {
	if d.status != Pending {
		return errs.NewConflictError("delivery", d.status.String())
	}

	d.status = InTransit
	return nil
}

// Cancel moves the delivery to Cancelled. Terminal deliveries cannot be cancelled.
func (d *Delivery) Cancel() error {
	if d.status.IsTerminal() {
		return errs.NewConflictError("delivery", d.status.String())
	}

	d.status = StatusCancelled
	return nil
}

// CompleteWith settles the delivery with a classified outcome: the status
// becomes the outcome's terminal delivery status and deliveryTime is set.
//
// Completing an already-terminal delivery returns a state conflict; the
// losing side of a concurrent completion race observes exactly this error.
func (d *Delivery) CompleteWith(outcome Outcome, at time.Time) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	if d.status.IsTerminal() {
		return errs.NewConflictError("delivery", d.status.String())
	}

	d.status = outcome.DeliveryStatus()
	d.deliveryTime = &at
	return nil
}

// RecordItems stores the items submitted with the checklist. Items can be
// recorded only once; a delivery that already has items is a state conflict.
func (d *Delivery) RecordItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if len(d.items) > 0 {
		return errs.NewConflictError("delivery items", fmt.Sprintf("%d items recorded", len(d.items)))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	d.items = items
	return nil
}

// AttachChecklist sets the delivery's checklist. The checklist must reference
// this delivery; persistence upserts it on the delivery ID.
func (d *Delivery) AttachChecklist(checklist *Checklist) error {
	if err := checklist.Validate(); err != nil {
		return err
	}
	if !checklist.DeliveryID().IsEqual(d.id) {
		return errs.NewValueIsInvalidErrorWithCause("checklist",
			fmt.Errorf("checklist belongs to delivery %s", checklist.DeliveryID()))
	}

	d.checklist = checklist
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setScheduledDate(scheduledDate time.Time) error {
	if scheduledDate.IsZero() {
		return errs.NewValueIsRequiredError("scheduledDate")
	}
	d.scheduledDate = scheduledDate
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
