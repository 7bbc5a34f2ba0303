package order

import (
	"errors"
	"fmt"

	"coldchain/internal/pkg/errs"
)

// ErrCannotRevertCompletedOrder is returned by Decide when a transition would
// move an order out of the protected tier to a lower-ranked status other
// than Cancelled.
var ErrCannotRevertCompletedOrder = errors.New("cannot revert completed/paid order")

// Status represents the lifecycle state of a sales order.
//
// The back office advances orders through the warehouse flow
// (New -> Confirmed -> Picking -> Packing -> Ready -> Shipped) and the
// fulfillment cascade moves them into Completed or Partial once a delivery
// attempt is classified. Invoiced and Paid follow billing. Cancelled sits
// outside the ladder and is reachable from any status.
//
// Transitions are deliberately loose: the single enforced rule is that an
// order in the protected tier (rank >= ProtectedRank) can never move to a
// lower-ranked status, except to Cancelled. See Decide.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status assigned at order entry.
	New

	// Confirmed indicates the order has been accepted by the back office.
	Confirmed

	// Picking indicates warehouse staff are collecting the order lines.
	Picking

	// Packing indicates the order is being packed for cold-chain transport.
	Packing

	// Ready indicates the order is packed and awaiting dispatch.
	Ready

	// Shipped indicates the order left the warehouse with a driver.
	Shipped

	// Partial indicates the delivery attempt delivered only part of the order.
	Partial

	// Completed indicates the full order was delivered. First protected status.
	Completed

	// Invoiced indicates an invoice has been issued for the order.
	Invoiced

	// Paid indicates the customer settled the invoice.
	Paid

	// Cancelled is the out-of-band terminal status, reachable from anywhere.
	Cancelled
)

// ProtectedRank is the rank at and above which an order may no longer be
// reverted to a lower-ranked status (except to Cancelled).
const ProtectedRank = 7

// statusRanks is the authoritative rank table for status transitions.
// Invoiced and Paid deliberately share a rank; Cancelled is ranked out-of-band.
var statusRanks = map[Status]int{
	New:       0,
	Confirmed: 1,
	Picking:   2,
	Packing:   3,
	Ready:     4,
	Shipped:   5,
	Partial:   6,
	Completed: 7,
	Invoiced:  8,
	Paid:      8,
	Cancelled: -1,
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		New:       "NEW",
		Confirmed: "CONFIRMED",
		Picking:   "PICKING",
		Packing:   "PACKING",
		Ready:     "READY",
		Shipped:   "SHIPPED",
		Partial:   "PARTIAL",
		Completed: "COMPLETED",
		Invoiced:  "INVOICED",
		Paid:      "PAID",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses the persisted/wire representation of a status.
// Returns an error for unrecognized values and for "UNKNOWN".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := statusRanks[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "COMPLETED".
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Rank returns the status position in the rank table.
// Panics are avoided: an invalid status ranks as 0 after a failed Validate,
// so callers must Validate first.
func (s Status) Rank() int {
	return statusRanks[s]
}

// IsProtected reports whether the status belongs to the protected tier
// (Completed, Invoiced, Paid).
func (s Status) IsProtected() bool {
	return s.Rank() >= ProtectedRank
}

// Decide validates a requested status transition and returns the status the
// order should take.
//
// The single enforced rule: once an order reaches the protected tier
// (rank >= ProtectedRank), it cannot move to a lower-ranked status unless the
// target is Cancelled. All other transitions are accepted; no further
// monotonicity is enforced, matching the manual back-office workflow where
// statuses are corrected freely before completion.
//
// Decide is pure; it never mutates anything.
func Decide(current, requested Status) (Status, error) {
	if err := current.Validate(); err != nil {
		return Unknown, err
	}
	if err := requested.Validate(); err != nil {
		return Unknown, err
	}

	if current.IsProtected() && !requested.IsProtected() && requested != Cancelled {
		return Unknown, ErrCannotRevertCompletedOrder
	}

	return requested, nil
}
