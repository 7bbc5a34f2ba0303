package queries

import (
	"errors"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/guard"
)

var (
	ErrGetRouteProgressQueryIsNotConstructed = errors.New(
		"GetRouteProgressQuery must be created via NewGetRouteProgressQuery constructor",
	)
)

// GetRouteProgressQuery retrieves one route with the status of every stop,
// so dispatchers can follow a driver working through a multi-stop route.
//
// Example:
//
//	query, err := NewGetRouteProgressQuery(routeID)
//	if err != nil {
//	    return err
//	}
//	progress, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown route
//	}
type GetRouteProgressQuery struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteProgressQuery creates a query for one route's progress.
func NewGetRouteProgressQuery(routeID kernel.UUID) (GetRouteProgressQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteProgressQuery{}, err
	}

	return GetRouteProgressQuery{
		routeID: routeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRouteProgressQueryIsNotConstructed if validation fails.
func (q GetRouteProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteProgressQueryIsNotConstructed)
}

// RouteID returns the route being inspected.
func (q GetRouteProgressQuery) RouteID() kernel.UUID {
	return q.routeID
}

// StopProgressResponse is the per-stop slice of a route progress response.
type StopProgressResponse struct {
	StopID      kernel.UUID
	DeliveryID  kernel.UUID
	StopNumber  int
	Status      string
	CompletedAt *time.Time
}

// GetRouteProgressQueryResponse represents one route and its stops in
// visitation order.
type GetRouteProgressQueryResponse struct {
	RouteID   kernel.UUID
	DriverID  kernel.UUID
	VehicleID kernel.UUID
	Status    string
	Stops     []StopProgressResponse
}
