package delivery

import (
	"fmt"

	"coldchain/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> InTransit ──┬──> Delivered
//	    │            │      ├──> PartiallyDelivered
//	    │            │      └──> Failed
//	    └────────────┴─────────> Cancelled
//
// A checklist submission may also complete a delivery straight from Pending;
// the cascade only refuses deliveries that are already terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status of a scheduled delivery.
	Pending

	// InTransit indicates the driver has started the delivery run.
	InTransit

	// Delivered indicates every item reached the customer. Terminal.
	Delivered

	// PartiallyDelivered indicates some items were rejected at the door. Terminal.
	PartiallyDelivered

	// Failed indicates the delivery attempt failed entirely. Terminal.
	Failed

	// StatusCancelled indicates the delivery was called off. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "UNKNOWN",
		Pending:            "PENDING",
		InTransit:          "IN_TRANSIT",
		Delivered:          "DELIVERED",
		PartiallyDelivered: "PARTIALLY_DELIVERED",
		Failed:             "FAILED",
		StatusCancelled:    "CANCELLED",
	}
}

// StatusFromString parses the persisted/wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status, e.g. "IN_TRANSIT".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == PartiallyDelivered || s == Failed || s == StatusCancelled
}
