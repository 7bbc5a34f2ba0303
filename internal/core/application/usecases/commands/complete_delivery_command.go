package commands

import (
	"errors"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/guard"
)

var (
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
	ErrItemResultsAreRequired = errors.New("at least one item result is required")
	ErrSignatureIsRequired    = errors.New("signature URL is required")
	ErrSignedByIsRequired     = errors.New("recipient name is required")
)

// ItemResult is the driver's reported outcome for one order line: how much was
// handed over, how much was rejected at the door, and why.
type ItemResult struct {
	OrderItemID       kernel.UUID
	ProductID         kernel.UUID
	ProductName       string
	OrderedQuantity   int
	DeliveredQuantity int
	RejectedQuantity  int
	RejectionReason   string
	RejectionNotes    string
	Unit              string
}

// ChecklistPhoto is an evidence photo submitted with the checklist. The URL
// points at an object already uploaded through the photo storage.
type ChecklistPhoto struct {
	URL       string
	PhotoType string
	Caption   string
}

// CompleteDeliveryCommand represents a driver submitting the signed delivery
// checklist, settling the delivery and everything downstream of it.
//
// Example:
//
//	cmd, err := NewCompleteDeliveryCommand(
//	    deliveryID, driverID, items,
//	    "https://media.local/sig.png", "I. Petrov", time.Now(),
//	    true, "", "left at reception", photos,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid checklist submission: %w", err)
//	}
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to complete delivery: %w", err)
//	}
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	driverID      kernel.UUID
	items         []ItemResult
	signatureURL  string
	signedBy      string
	signedAt      time.Time
	itemsVerified bool
	issueCategory string
	notes         string
	photos        []ChecklistPhoto

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command carrying one checklist
// submission. Validates identifiers, the signature requirements and that at
// least one item result was reported. The quantitative item invariants are
// the outcome classifier's concern, not the command's.
func NewCompleteDeliveryCommand(
	deliveryID, driverID kernel.UUID,
	items []ItemResult,
	signatureURL, signedBy string,
	signedAt time.Time,
	itemsVerified bool,
	issueCategory, notes string,
	photos []ChecklistPhoto,
) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		signedAt:      signedAt,
		itemsVerified: itemsVerified,
		issueCategory: issueCategory,
		notes:         notes,
		photos:        photos,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
		cmd.setItems(items),
		cmd.setSignatureURL(signatureURL),
		cmd.setSignedBy(signedBy),
	); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being completed.
func (c CompleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the driver submitting the checklist.
func (c CompleteDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Items returns the per-line item results.
func (c CompleteDeliveryCommand) Items() []ItemResult {
	return c.items
}

// SignatureURL returns the URL of the recipient's signature image.
func (c CompleteDeliveryCommand) SignatureURL() string {
	return c.signatureURL
}

// SignedBy returns the name of the person who signed for the delivery.
func (c CompleteDeliveryCommand) SignedBy() string {
	return c.signedBy
}

// SignedAt returns the moment the checklist was signed.
func (c CompleteDeliveryCommand) SignedAt() time.Time {
	return c.signedAt
}

// ItemsVerified reports whether the driver confirmed the items against the order.
func (c CompleteDeliveryCommand) ItemsVerified() bool {
	return c.itemsVerified
}

// IssueCategory returns the reported issue category, or empty when none.
func (c CompleteDeliveryCommand) IssueCategory() string {
	return c.issueCategory
}

// Notes returns the driver's free-form notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

// Photos returns the evidence photos submitted with the checklist.
func (c CompleteDeliveryCommand) Photos() []ChecklistPhoto {
	return c.photos
}

func (c *CompleteDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CompleteDeliveryCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CompleteDeliveryCommand) setItems(items []ItemResult) error {
	if len(items) == 0 {
		return ErrItemResultsAreRequired
	}

	c.items = items
	return nil
}

func (c *CompleteDeliveryCommand) setSignatureURL(signatureURL string) error {
	if signatureURL == "" {
		return ErrSignatureIsRequired
	}

	c.signatureURL = signatureURL
	return nil
}

func (c *CompleteDeliveryCommand) setSignedBy(signedBy string) error {
	if signedBy == "" {
		return ErrSignedByIsRequired
	}

	c.signedBy = signedBy
	return nil
}
