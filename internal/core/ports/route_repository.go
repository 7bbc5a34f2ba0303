package ports

import (
	"context"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates and
// their stops.
type RouteRepository interface {
	// Add persists a new route aggregate with all of its stops.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route aggregate and its stops.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route aggregate with its stops in visitation order.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetForUpdate retrieves a route and locks its row for the duration of
	// the current transaction. Stop transitions from concurrent deliveries
	// on the same route serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// GetForUpdateByStopID retrieves the route owning the given stop and locks
	// its row, like GetForUpdate. Used when a delivery only knows the stop it
	// is bound to.
	GetForUpdateByStopID(ctx context.Context, stopID kernel.UUID) (*route.Route, error)

	// GetAllInProgress retrieves every route that has been started but not
	// closed yet. Used by the sweep job that closes finished routes.
	GetAllInProgress(ctx context.Context) ([]*route.Route, error)
}
