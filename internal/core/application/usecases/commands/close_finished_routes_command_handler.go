package commands

import (
	"context"

	"coldchain/internal/core/domain/model/route"
	"coldchain/internal/core/domain/services"
)

// CloseFinishedRoutesCommandHandler sweeps in-progress routes and closes the
// finished ones, releasing the driver and vehicle of every route it closes.
// All updates occur within a single transaction.
type CloseFinishedRoutesCommandHandler struct {
	uowFactory RouteUoWFactory
	monitor    services.RouteCompletionMonitor
}

// NewCloseFinishedRoutesCommandHandler creates a handler for the route sweep.
func NewCloseFinishedRoutesCommandHandler(uowFactory RouteUoWFactory) CloseFinishedRoutesCommandHandler {
	return CloseFinishedRoutesCommandHandler{
		uowFactory: uowFactory,
		monitor:    services.NewRouteCompletionMonitor(),
	}
}

// Handle processes the sweep command.
func (h *CloseFinishedRoutesCommandHandler) Handle(ctx context.Context, cmd CloseFinishedRoutesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()
	routes, err := routeRepo.GetAllInProgress(ctx)
	if err != nil {
		return err
	}

	for _, r := range routes {
		if err = h.closeIfFinished(ctx, uow, r); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func (h *CloseFinishedRoutesCommandHandler) closeIfFinished(
	ctx context.Context,
	uow RouteUoW,
	r *route.Route,
) error {
	closed, err := h.monitor.TryClose(r)
	if err != nil {
		return err
	}
	if !closed {
		return nil
	}

	if err = uow.RouteRepository().Update(ctx, r); err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	driver, err := driverRepo.Get(ctx, r.DriverID())
	if err != nil {
		return err
	}
	driver.Release()
	if err = driverRepo.Update(ctx, driver); err != nil {
		return err
	}

	vehicleRepo := uow.VehicleRepository()
	vehicle, err := vehicleRepo.Get(ctx, r.VehicleID())
	if err != nil {
		return err
	}
	vehicle.Release()
	if err = vehicleRepo.Update(ctx, vehicle); err != nil {
		return err
	}

	return nil
}
