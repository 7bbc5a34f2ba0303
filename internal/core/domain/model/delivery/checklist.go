package delivery

import (
	"errors"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"
)

// ErrChecklistIsNotConstructed is returned when a Checklist was not created
// through NewChecklist.
var ErrChecklistIsNotConstructed = errors.New("Checklist must be created via NewChecklist")

// Photo is an evidence photo attached to a checklist. The URL is minted by the
// photo-storage collaborator before the cascade runs.
type Photo struct {
	URL       string
	PhotoType string
	Caption   string
}

// Checklist is the signed proof-of-delivery document. Exactly one exists per
// delivery; resubmitting a checklist upserts on the delivery ID.
type Checklist struct {
	id            kernel.UUID
	deliveryID    kernel.UUID
	signatureURL  string
	signedBy      string
	signedAt      time.Time
	itemsVerified bool
	issueCategory string
	notes         string
	photos        []Photo
	isConstructed bool
}

// NewChecklist creates a checklist for a delivery. The signature URL and the
// recipient name are mandatory; issueCategory is empty when no issue was
// reported at the door.
func NewChecklist(
	id, deliveryID kernel.UUID,
	signatureURL, signedBy string,
	signedAt time.Time,
	itemsVerified bool,
	issueCategory, notes string,
	photos []Photo,
) (*Checklist, error) {
	c := &Checklist{
		itemsVerified: itemsVerified,
		issueCategory: issueCategory,
		notes:         notes,
		photos:        photos,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setDeliveryID(deliveryID),
		c.setSignatureURL(signatureURL),
		c.setSignedBy(signedBy),
		c.setSignedAt(signedAt),
		c.validatePhotos(photos),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Checklist was created via NewChecklist.
func (c *Checklist) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrChecklistIsNotConstructed
	}
	return nil
}

// ID returns the checklist's unique identifier.
func (c *Checklist) ID() kernel.UUID {
	return c.id
}

// DeliveryID returns the delivery this checklist documents. It is also the
// upsert key: a delivery has at most one checklist.
func (c *Checklist) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// SignatureURL returns the stored signature image URL.
func (c *Checklist) SignatureURL() string {
	return c.signatureURL
}

// SignedBy returns the name of the person who signed for the shipment.
func (c *Checklist) SignedBy() string {
	return c.signedBy
}

// SignedAt returns when the checklist was signed.
func (c *Checklist) SignedAt() time.Time {
	return c.signedAt
}

// ItemsVerified reports whether the driver went through item verification.
func (c *Checklist) ItemsVerified() bool {
	return c.itemsVerified
}

// IssueCategory returns the reported issue category; empty when none.
func (c *Checklist) IssueCategory() string {
	return c.issueCategory
}

// HasIssue reports whether an issue was flagged at the door.
func (c *Checklist) HasIssue() bool {
	return c.issueCategory != ""
}

// Notes returns the free-text notes recorded with the checklist.
func (c *Checklist) Notes() string {
	return c.notes
}

// Photos returns the evidence photos attached to the checklist.
func (c *Checklist) Photos() []Photo {
	return c.photos
}

func (c *Checklist) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Checklist) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *Checklist) setSignatureURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("signatureUrl")
	}
	c.signatureURL = url
	return nil
}

func (c *Checklist) setSignedBy(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("signedBy")
	}
	c.signedBy = name
	return nil
}

func (c *Checklist) setSignedAt(signedAt time.Time) error {
	if signedAt.IsZero() {
		return errs.NewValueIsRequiredError("signedAt")
	}
	c.signedAt = signedAt
	return nil
}

func (c *Checklist) validatePhotos(photos []Photo) error {
	for _, p := range photos {
		if p.URL == "" {
			return errs.NewValueIsRequiredError("photo url")
		}
	}
	return nil
}
