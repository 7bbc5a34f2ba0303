package order

import (
	"errors"
	"fmt"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the sales-order aggregate root. It carries the customer-facing
// order number, the monetary total, and the lifecycle status governed by the
// rank table in this package.
//
// Invariants:
//   - must have a valid unique identifier and a non-empty order number
//   - total amount must not be negative
//   - status transitions go through ChangeStatus, which delegates to Decide
//   - can only be created through NewOrder or RestoreOrder
//
// The fulfillment cascade is the only writer allowed to move an order into
// Completed or Partial; all other call sites use ChangeStatus for manual
// back-office corrections.
type Order struct {
	id            kernel.UUID
	orderNumber   string
	customerName  string
	totalAmount   float64
	status        Status
	isConstructed bool
}

// NewOrder creates an Order in New status with validation. This is the only
// way to create a valid new order.
func NewOrder(id kernel.UUID, orderNumber, customerName string, totalAmount float64) (*Order, error) {
	o := &Order{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerName(customerName),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status. Used exclusively by repository implementations.
func RestoreOrder(
	id kernel.UUID, orderNumber, customerName string, totalAmount float64, status Status,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerName(customerName),
		o.setTotalAmount(totalAmount),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the customer-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerName returns the customer reference for the order.
func (o *Order) CustomerName() string {
	return o.customerName
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ChangeStatus transitions the order to the requested status.
//
// The transition is validated by Decide: moving out of the protected tier
// (Completed/Invoiced/Paid) to a lower-ranked status is rejected with
// ErrCannotRevertCompletedOrder unless the target is Cancelled.
func (o *Order) ChangeStatus(requested Status) error {
	newStatus, err := Decide(o.status, requested)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%v is negative", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
