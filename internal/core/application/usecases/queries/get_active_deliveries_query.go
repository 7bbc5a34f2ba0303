// Package queries contains read-only operations for the cold-chain delivery
// system. Query handlers bypass the domain model and read the database
// directly, returning flat response structures shaped for the API.
package queries

import (
	"errors"
	"time"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/guard"
)

var (
	ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
		"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
	)
)

// GetActiveDeliveriesQuery retrieves all deliveries that are not settled yet,
// i.e. pending or in transit, for dispatcher dashboards.
//
// Example:
//
//	query := NewGetActiveDeliveriesQuery()
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get active deliveries: %w", err)
//	}
//	fmt.Printf("%d deliveries on the road or waiting\n", len(deliveries))
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query to retrieve open deliveries.
// This is a parameterless query.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveDeliveriesQueryIsNotConstructed if validation fails.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse represents one open delivery together with
// the order it fulfills.
type GetActiveDeliveriesQueryResponse struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   string
	CustomerName  string
	Status        string
	ScheduledDate time.Time
	DriverID      *kernel.UUID
}
