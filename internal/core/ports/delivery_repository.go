package ports

import (
	"context"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates,
// including their items, checklist and checklist photos.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate. Items and the
	// checklist attached since the last load are inserted alongside the
	// delivery row.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate with its items and checklist.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery and locks its row for the duration of
	// the current transaction. Concurrent completions of the same delivery
	// serialize on this lock; the loser observes a terminal status.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
}
