package services

import (
	"coldchain/internal/core/domain/model/delivery"
)

// OutcomeClassifier is a domain service that derives the outcome of a completed
// delivery from the driver's item-level results and the checklist issue flag.
//
// Classification rules, applied in order (first match wins):
//  1. Every submitted item must satisfy the item invariants. Any violation
//     aborts classification with an ItemValidationError listing every failing
//     item, not just the first one.
//  2. A reported issue, or a delivery where nothing was handed over, is Failed.
//  3. Any rejected quantity makes the delivery PartiallyDelivered.
//  4. Otherwise the delivery is fully Delivered.
//
// The classifier is pure: it never mutates the items and has no dependencies,
// so callers can run it before touching any persistent state.
//
// Example usage:
//
//	classifier := NewOutcomeClassifier()
//	outcome, err := classifier.Classify(items, checklist.HasIssue())
//	var validationErr *delivery.ItemValidationError
//	if errors.As(err, &validationErr) {
//	    // Reject the submission, reporting validationErr.Violations
//	    return
//	}
//	// Apply outcome to the delivery aggregate
type OutcomeClassifier struct{}

// NewOutcomeClassifier creates a new OutcomeClassifier instance.
func NewOutcomeClassifier() OutcomeClassifier {
	return OutcomeClassifier{}
}

// Classify derives the delivery outcome from the submitted items.
//
// hasIssue is the checklist's issue flag: a non-empty issue category forces a
// Failed outcome regardless of the per-item quantities.
//
// Returns an ItemValidationError when any item breaks the item invariants;
// the error carries one entry per violation across all items.
func (c OutcomeClassifier) Classify(items []*delivery.Item, hasIssue bool) (delivery.Outcome, error) {
	var violations []delivery.ItemViolation
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return delivery.OutcomeUnknown, err
		}
		for _, reason := range item.Violations() {
			violations = append(violations, delivery.ItemViolation{
				Index:       idx,
				OrderItemID: item.OrderItemID(),
				Reason:      reason,
			})
		}
	}
	if len(violations) > 0 {
		return delivery.OutcomeUnknown, delivery.NewItemValidationError(violations)
	}

	totalDelivered := 0
	anyRejected := false
	for _, item := range items {
		totalDelivered += item.DeliveredQuantity()
		if item.RejectedQuantity() > 0 {
			anyRejected = true
		}
	}

	switch {
	case hasIssue || totalDelivered == 0:
		return delivery.OutcomeFailed, nil
	case anyRejected:
		return delivery.OutcomePartiallyDelivered, nil
	default:
		return delivery.OutcomeDelivered, nil
	}
}
