package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRouteProgressQueryHandler reads one route and its stops directly from
// the database.
type GetRouteProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteProgressQueryHandler creates a handler for route progress queries.
// Requires a GORM database connection for query execution.
func NewGetRouteProgressQueryHandler(db *gorm.DB) GetRouteProgressQueryHandler {
	return GetRouteProgressQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error for an
// unknown route; stops come back ordered by stop number.
func (h GetRouteProgressQueryHandler) Handle(
	ctx context.Context,
	query GetRouteProgressQuery,
) (GetRouteProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteProgressQueryResponse{}, err
	}

	var resp GetRouteProgressQueryResponse
	var routeID, driverID, vehicleID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, driver_id, vehicle_id, status
		FROM routes
		WHERE id = ?
	`, query.RouteID().Bytes()).Row()

	err := row.Scan(&routeID, &driverID, &vehicleID, &resp.Status)
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return GetRouteProgressQueryResponse{}, errs.NewObjectNotFoundError("routeId", query.RouteID())
	}
	if err != nil {
		return GetRouteProgressQueryResponse{}, err
	}

	if resp.RouteID, err = kernel.UUIDFromBytes(routeID[:]); err != nil {
		return GetRouteProgressQueryResponse{}, err
	}
	if resp.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return GetRouteProgressQueryResponse{}, err
	}
	if resp.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
		return GetRouteProgressQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, delivery_id, stop_number, status, completed_at
		FROM route_stops
		WHERE route_id = ?
		ORDER BY stop_number
	`, query.RouteID().Bytes()).Rows()
	if err != nil {
		return GetRouteProgressQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var stop StopProgressResponse
		var stopID, deliveryID uuid.UUID
		var completedAt *time.Time

		err = rows.Scan(&stopID, &deliveryID, &stop.StopNumber, &stop.Status, &completedAt)
		if err != nil {
			return GetRouteProgressQueryResponse{}, err
		}

		if stop.StopID, err = kernel.UUIDFromBytes(stopID[:]); err != nil {
			return GetRouteProgressQueryResponse{}, err
		}
		if stop.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return GetRouteProgressQueryResponse{}, err
		}
		stop.CompletedAt = completedAt

		resp.Stops = append(resp.Stops, stop)
	}

	if err = rows.Err(); err != nil {
		return GetRouteProgressQueryResponse{}, err
	}

	return resp, nil
}
