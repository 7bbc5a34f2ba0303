package delivery

import (
	"fmt"

	"coldchain/internal/pkg/errs"
)

// Outcome is the classified result of a delivery attempt. It is produced by
// the outcome classifier from the submitted item quantities and the optional
// issue flag, and drives the fulfillment cascade.
type Outcome int

const (
	// OutcomeUnknown represents an invalid or undefined outcome.
	OutcomeUnknown Outcome = iota

	// OutcomeDelivered means every item was handed over in full.
	OutcomeDelivered

	// OutcomePartiallyDelivered means at least one item was rejected,
	// but not the whole shipment.
	OutcomePartiallyDelivered

	// OutcomeFailed means the attempt failed: an issue was reported or
	// nothing was delivered at all.
	OutcomeFailed
)

func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomeUnknown:            "UNKNOWN",
		OutcomeDelivered:          "DELIVERED",
		OutcomePartiallyDelivered: "PARTIALLY_DELIVERED",
		OutcomeFailed:             "FAILED",
	}
}

// Validate checks if the Outcome value is valid.
func (o Outcome) Validate() error {
	if _, ok := getOutcomeStrings()[o]; !ok || o == OutcomeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome is invalid",
			fmt.Errorf("%d is not a valid outcome", o),
		)
	}
	return nil
}

// String returns the wire representation of the outcome.
func (o Outcome) String() string {
	if str, ok := getOutcomeStrings()[o]; ok {
		return str
	}
	return "UNKNOWN"
}

// DeliveryStatus maps the outcome onto the terminal delivery status it implies.
func (o Outcome) DeliveryStatus() Status {
	switch o {
	case OutcomeDelivered:
		return Delivered
	case OutcomePartiallyDelivered:
		return PartiallyDelivered
	case OutcomeFailed:
		return Failed
	default:
		return StatusUnknown
	}
}
