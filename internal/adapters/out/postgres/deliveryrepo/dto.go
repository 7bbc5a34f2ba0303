// Package deliveryrepo persists the delivery aggregate with its recorded items,
// checklist, and checklist photos. The delivery row, the item rows, and the
// checklist rows live in separate tables; the repository loads and stores them
// together so the aggregate round-trips as one unit.
package deliveryrepo

import (
	"time"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// DriverID, VehicleID, StopID, and DeliveryTime are nullable; StopID doubles as
// the binding discriminator (null means standalone).
type DeliveryDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid"`
	VehicleID     *uuid.UUID `gorm:"type:uuid"`
	StopID        *uuid.UUID `gorm:"type:uuid"`
	Status        string     `gorm:"index"`
	ScheduledDate time.Time
	DeliveryTime  *time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ItemDTO represents one recorded order line of a delivery. The composite
// primary key makes item inserts idempotent on checklist resubmission.
type ItemDTO struct {
	DeliveryID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID         uuid.UUID `gorm:"type:uuid"`
	ProductName       string
	OrderedQuantity   int
	DeliveredQuantity int
	RejectedQuantity  int
	RejectionReason   string
	RejectionNotes    string
	Unit              string
}

func (ItemDTO) TableName() string {
	return "delivery_items"
}

// ChecklistDTO represents the signed proof-of-delivery document. The unique
// index on DeliveryID enforces at most one checklist per delivery and is the
// upsert key for resubmissions.
type ChecklistDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	SignatureURL  string
	SignedBy      string
	SignedAt      time.Time
	ItemsVerified bool
	IssueCategory string
	Notes         string
}

func (ChecklistDTO) TableName() string {
	return "delivery_checklists"
}

// PhotoDTO represents one evidence photo attached to a checklist.
type PhotoDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	ChecklistID uuid.UUID `gorm:"type:uuid;index"`
	URL         string
	PhotoType   string
	Caption     string
}

func (PhotoDTO) TableName() string {
	return "checklist_photos"
}

// fromDomain converts a delivery aggregate to its table representations.
func fromDomain(aggregate *delivery.Delivery) (DeliveryDTO, []ItemDTO, *ChecklistDTO, []PhotoDTO) {
	dto := DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Status:        aggregate.Status().String(),
		ScheduledDate: aggregate.ScheduledDate(),
		DeliveryTime:  aggregate.DeliveryTime(),
	}
	if aggregate.DriverID() != nil {
		driverID := aggregate.DriverID().Bytes()
		dto.DriverID = &driverID
	}
	if aggregate.VehicleID() != nil {
		vehicleID := aggregate.VehicleID().Bytes()
		dto.VehicleID = &vehicleID
	}
	if bound, ok := aggregate.Binding().(delivery.RouteBound); ok {
		stopID := bound.StopID().Bytes()
		dto.StopID = &stopID
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			DeliveryID:        dto.ID,
			OrderItemID:       item.OrderItemID().Bytes(),
			ProductID:         item.ProductID().Bytes(),
			ProductName:       item.ProductName(),
			OrderedQuantity:   item.OrderedQuantity(),
			DeliveredQuantity: item.DeliveredQuantity(),
			RejectedQuantity:  item.RejectedQuantity(),
			RejectionReason:   item.RejectionReason().String(),
			RejectionNotes:    item.RejectionNotes(),
			Unit:              item.Unit(),
		})
	}

	checklist := aggregate.Checklist()
	if checklist == nil {
		return dto, items, nil, nil
	}

	checklistDTO := &ChecklistDTO{
		ID:            checklist.ID().Bytes(),
		DeliveryID:    checklist.DeliveryID().Bytes(),
		SignatureURL:  checklist.SignatureURL(),
		SignedBy:      checklist.SignedBy(),
		SignedAt:      checklist.SignedAt(),
		ItemsVerified: checklist.ItemsVerified(),
		IssueCategory: checklist.IssueCategory(),
		Notes:         checklist.Notes(),
	}

	photos := make([]PhotoDTO, 0, len(checklist.Photos()))
	for _, photo := range checklist.Photos() {
		photos = append(photos, PhotoDTO{
			ChecklistID: checklistDTO.ID,
			URL:         photo.URL,
			PhotoType:   photo.PhotoType,
			Caption:     photo.Caption,
		})
	}

	return dto, items, checklistDTO, photos
}

// toDomain reconstructs a delivery aggregate from its table representations.
func toDomain(dto DeliveryDTO, items []ItemDTO, checklist *ChecklistDTO, photos []PhotoDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	var binding delivery.Binding = delivery.Standalone{}
	if dto.StopID != nil {
		stopID, err := kernel.UUIDFromBytes(dto.StopID[:])
		if err != nil {
			return nil, err
		}
		binding, err = delivery.NewRouteBound(stopID)
		if err != nil {
			return nil, err
		}
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	aggregate, err := delivery.RestoreDelivery(
		id, orderID, driverID, vehicleID, binding, status, dto.ScheduledDate, dto.DeliveryTime)
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		domainItems, err := itemsToDomain(items)
		if err != nil {
			return nil, err
		}
		if err := aggregate.RecordItems(domainItems); err != nil {
			return nil, err
		}
	}

	if checklist != nil {
		domainChecklist, err := checklistToDomain(*checklist, photos)
		if err != nil {
			return nil, err
		}
		if err := aggregate.AttachChecklist(domainChecklist); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}

func itemsToDomain(dtos []ItemDTO) ([]*delivery.Item, error) {
	items := make([]*delivery.Item, 0, len(dtos))
	for _, dto := range dtos {
		orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		reason, err := delivery.RejectionReasonFromString(dto.RejectionReason)
		if err != nil {
			return nil, err
		}

		item, err := delivery.NewItem(
			orderItemID, productID, dto.ProductName,
			dto.OrderedQuantity, dto.DeliveredQuantity, dto.RejectedQuantity,
			reason, dto.RejectionNotes, dto.Unit)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func checklistToDomain(dto ChecklistDTO, photoDTOs []PhotoDTO) (*delivery.Checklist, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	photos := make([]delivery.Photo, 0, len(photoDTOs))
	for _, p := range photoDTOs {
		photos = append(photos, delivery.Photo{
			URL:       p.URL,
			PhotoType: p.PhotoType,
			Caption:   p.Caption,
		})
	}

	return delivery.NewChecklist(
		id, deliveryID, dto.SignatureURL, dto.SignedBy, dto.SignedAt,
		dto.ItemsVerified, dto.IssueCategory, dto.Notes, photos)
}

func optionalUUID(b *uuid.UUID) (*kernel.UUID, error) {
	if b == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(b[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
