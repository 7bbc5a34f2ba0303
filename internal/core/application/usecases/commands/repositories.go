// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"coldchain/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// RouteRepoFactory provides access to the route repository within a transaction.
	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	// FleetRepoFactory provides access to the driver and vehicle repositories
	// within a transaction.
	FleetRepoFactory interface {
		DriverRepository() ports.DriverRepository
		VehicleRepository() ports.VehicleRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages transactions for delivery lifecycle operations.
	// Departures also move the order and may touch the route owning the
	// delivery's stop.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
		RouteRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// RouteUoW manages transactions for route operations and the fleet
	// resources released when a route closes.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
		FleetRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// FulfillmentUoW manages transactions for the delivery completion cascade,
	// which can touch every aggregate in the system: the delivery itself, its
	// order, the route stop it is bound to, and the fleet resources to release.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	FulfillmentUoW interface {
		TxManager
		DeliveryRepoFactory
		OrderRepoFactory
		RouteRepoFactory
		FleetRepoFactory
	}

	// FulfillmentUoWFactory creates new unit of work instances for the
	// completion cascade.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)
