package delivery

import (
	"errors"
	"fmt"
	"strings"

	"coldchain/internal/core/domain/model/kernel"
)

// ErrItemsInvalid is the sentinel all item validation failures unwrap to.
var ErrItemsInvalid = errors.New("delivery items are invalid")

// ViolationReason identifies which item invariant was broken. The values are
// machine-readable and surface unchanged in API responses.
type ViolationReason string

const (
	// ViolationQuantityMismatch - delivered + rejected quantities do not add up
	// to the ordered quantity.
	ViolationQuantityMismatch ViolationReason = "QUANTITY_MISMATCH"

	// ViolationNegativeQuantity - a delivered or rejected quantity is negative.
	ViolationNegativeQuantity ViolationReason = "NEGATIVE_QUANTITY"

	// ViolationMissingRejectionReason - items were rejected without a reason.
	ViolationMissingRejectionReason ViolationReason = "MISSING_REJECTION_REASON"

	// ViolationMissingRejectionNotes - the reason is OTHER but no notes were given.
	ViolationMissingRejectionNotes ViolationReason = "MISSING_REJECTION_NOTES"
)

// ItemViolation pins one broken invariant to one submitted item.
type ItemViolation struct {
	Index       int
	OrderItemID kernel.UUID
	Reason      ViolationReason
}

// ItemValidationError carries every item violation found in a checklist
// submission, one entry per failing item and rule. It is raised before any
// write, so a caller receiving it can correct the payload and resubmit.
type ItemValidationError struct {
	Violations []ItemViolation
}

// NewItemValidationError creates an ItemValidationError from the collected violations.
func NewItemValidationError(violations []ItemViolation) *ItemValidationError {
	return &ItemValidationError{Violations: violations}
}

func (e *ItemValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("item %d (%s): %s", v.Index, v.OrderItemID, v.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrItemsInvalid, strings.Join(parts, "; "))
}

func (e *ItemValidationError) Unwrap() error {
	return ErrItemsInvalid
}
