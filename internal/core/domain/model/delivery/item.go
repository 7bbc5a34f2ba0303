package delivery

import (
	"errors"
	"fmt"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")

// RejectionReason is the cold-chain vocabulary for why a customer refused an item.
type RejectionReason int

const (
	// ReasonNone means the item was not rejected.
	ReasonNone RejectionReason = iota

	// Melted - the product thawed or melted in transit.
	Melted

	// PackagingDamaged - the packaging arrived damaged.
	PackagingDamaged

	// Expired - the product was past its expiry date.
	Expired

	// WrongProduct - a different product was loaded than ordered.
	WrongProduct

	// InsufficientStock - less was loaded than ordered.
	InsufficientStock

	// CustomerRefused - the customer refused the item without defect.
	CustomerRefused

	// Other - any other reason; requires explanatory notes.
	Other
)

func getRejectionReasonStrings() map[RejectionReason]string {
	return map[RejectionReason]string{
		ReasonNone:        "",
		Melted:            "MELTED",
		PackagingDamaged:  "PACKAGING_DAMAGED",
		Expired:           "EXPIRED",
		WrongProduct:      "WRONG_PRODUCT",
		InsufficientStock: "INSUFFICIENT_STOCK",
		CustomerRefused:   "CUSTOMER_REFUSED",
		Other:             "OTHER",
	}
}

// RejectionReasonFromString parses the wire representation of a rejection reason.
// The empty string parses to ReasonNone.
func RejectionReasonFromString(s string) (RejectionReason, error) {
	for reason, str := range getRejectionReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return ReasonNone, errs.NewValueIsInvalidErrorWithCause(
		"rejectionReason is invalid",
		fmt.Errorf("%q is not a valid rejection reason", s),
	)
}

// Validate checks if the RejectionReason value is valid. ReasonNone is valid.
func (r RejectionReason) Validate() error {
	if _, ok := getRejectionReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"rejectionReason is invalid",
			fmt.Errorf("%d is not a valid rejection reason", r),
		)
	}
	return nil
}

// String returns the wire representation of the reason; empty for ReasonNone.
func (r RejectionReason) String() string {
	if str, ok := getRejectionReasonStrings()[r]; ok {
		return str
	}
	return ""
}

// Item records the delivered and rejected quantities for one order line at
// checklist submission. Items are written once and immutable afterward.
//
// The quantitative invariants (delivered + rejected == ordered, non-negative
// quantities, reason and notes requirements) are checked by Violations, which
// the outcome classifier uses to build the per-item validation failure list.
type Item struct {
	orderItemID     kernel.UUID
	productID       kernel.UUID
	productName     string
	orderedQuantity int
	deliveredQty    int
	rejectedQty     int
	rejectionReason RejectionReason
	rejectionNotes  string
	unit            string
	isConstructed   bool
}

// NewItem creates a delivery item for one order line. Structural requirements
// (valid IDs, non-empty product name and unit, positive ordered quantity, a
// known rejection reason value) are enforced here; the quantity invariants are
// deferred to Violations so that every failing item can be reported at once.
func NewItem(
	orderItemID, productID kernel.UUID,
	productName string,
	orderedQuantity, deliveredQuantity, rejectedQuantity int,
	rejectionReason RejectionReason,
	rejectionNotes, unit string,
) (*Item, error) {
	item := &Item{
		deliveredQty:   deliveredQuantity,
		rejectedQty:    rejectedQuantity,
		rejectionNotes: rejectionNotes,
		isConstructed:  true,
	}

	if err := errors.Join(
		item.setOrderItemID(orderItemID),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setOrderedQuantity(orderedQuantity),
		item.setRejectionReason(rejectionReason),
		item.setUnit(unit),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item was created via NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// OrderItemID returns the order line this item settles.
func (i *Item) OrderItemID() kernel.UUID {
	return i.orderItemID
}

// ProductID returns the delivered product's identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot taken at submission.
func (i *Item) ProductName() string {
	return i.productName
}

// OrderedQuantity returns the quantity the customer ordered.
func (i *Item) OrderedQuantity() int {
	return i.orderedQuantity
}

// DeliveredQuantity returns the quantity handed over.
func (i *Item) DeliveredQuantity() int {
	return i.deliveredQty
}

// RejectedQuantity returns the quantity refused at the door.
func (i *Item) RejectedQuantity() int {
	return i.rejectedQty
}

// RejectionReason returns why the rejected quantity was refused; ReasonNone
// when nothing was rejected.
func (i *Item) RejectionReason() RejectionReason {
	return i.rejectionReason
}

// RejectionNotes returns the free-text explanation; required when the reason is Other.
func (i *Item) RejectionNotes() string {
	return i.rejectionNotes
}

// Unit returns the unit of measure for the quantities.
func (i *Item) Unit() string {
	return i.unit
}

// Violations checks the quantitative invariants and returns one reason per
// violated rule, in a stable order. An empty result means the item is consistent.
func (i *Item) Violations() []ViolationReason {
	var violations []ViolationReason

	if i.deliveredQty < 0 || i.rejectedQty < 0 {
		violations = append(violations, ViolationNegativeQuantity)
	}
	if i.deliveredQty+i.rejectedQty != i.orderedQuantity {
		violations = append(violations, ViolationQuantityMismatch)
	}
	if i.rejectedQty > 0 && i.rejectionReason == ReasonNone {
		violations = append(violations, ViolationMissingRejectionReason)
	}
	if i.rejectionReason == Other && i.rejectionNotes == "" {
		violations = append(violations, ViolationMissingRejectionNotes)
	}

	return violations
}

func (i *Item) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderItemID = id
	return nil
}

func (i *Item) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setOrderedQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderedQuantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	i.orderedQuantity = qty
	return nil
}

func (i *Item) setRejectionReason(reason RejectionReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	i.rejectionReason = reason
	return nil
}

func (i *Item) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("unit")
	}
	i.unit = unit
	return nil
}
