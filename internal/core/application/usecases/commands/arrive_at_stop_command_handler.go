package commands

import (
	"context"

	"coldchain/internal/pkg/errs"
)

// ArriveAtStopCommandHandler records a driver's arrival at a route stop,
// moving the stop from en-route to arrived.
type ArriveAtStopCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewArriveAtStopCommandHandler creates a handler for stop arrivals.
func NewArriveAtStopCommandHandler(uowFactory RouteUoWFactory) ArriveAtStopCommandHandler {
	return ArriveAtStopCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the arrival report. Only the driver working the route may
// report arrival; a stop that is not en-route is a state conflict.
func (h *ArriveAtStopCommandHandler) Handle(ctx context.Context, cmd ArriveAtStopCommand) error {
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
	r, err := routeRepo.GetForUpdateByStopID(ctx, cmd.StopID())
	if err != nil {
		return err
	}

	if !r.DriverID().IsEqual(cmd.DriverID()) {
		return errs.NewNotPermittedError("arrive at stop", cmd.StopID().String())
	}

	stop, err := r.StopByID(cmd.StopID())
	if err != nil {
		return err
	}

	if err = stop.MarkArrived(); err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
