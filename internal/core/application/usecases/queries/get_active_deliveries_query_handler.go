package queries

import (
	"context"
	"time"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves open deliveries from the database.
// Joins the order row so dashboards can show the order number and customer
// without a second round trip.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending and in-transit deliveries.
// Results are sorted by scheduled date, then by ID for consistent output.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			o.order_number,
			o.customer_name,
			d.status,
			d.scheduled_date,
			d.driver_id
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.status IN (?, ?)
		ORDER BY d.scheduled_date, d.id
	`, delivery.Pending.String(), delivery.InTransit.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id, orderID uuid.UUID
		var driverID *uuid.UUID
		var scheduledDate time.Time

		err = rows.Scan(
			&id,
			&orderID,
			&resp.OrderNumber,
			&resp.CustomerName,
			&resp.Status,
			&scheduledDate,
			&driverID,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		orderUUID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderUUID

		if driverID != nil {
			driverUUID, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &driverUUID
		}

		resp.ScheduledDate = scheduledDate
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
