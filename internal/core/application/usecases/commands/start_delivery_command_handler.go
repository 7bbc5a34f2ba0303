package commands

import (
	"context"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/core/domain/model/route"
	"coldchain/internal/pkg/errs"
)

// StartDeliveryCommandHandler puts a delivery in transit and marks its order
// shipped. For a route-bound delivery the bound stop moves to en-route as
// well, so route progress views reflect the departure.
type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewStartDeliveryCommandHandler creates a handler for delivery departures.
func NewStartDeliveryCommandHandler(uowFactory DeliveryUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the departure. Only the assigned driver may start the
// delivery; a delivery that is not pending is a state conflict.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !d.OwnedBy(cmd.DriverID()) {
		return errs.NewNotPermittedError("start delivery", cmd.DeliveryID().String())
	}

	if err = d.Start(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = h.markOrderShipped(ctx, uow, d.OrderID()); err != nil {
		return err
	}

	if bound, ok := d.Binding().(delivery.RouteBound); ok {
		if err = h.markStopEnRoute(ctx, uow, bound); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// markOrderShipped moves the order to shipped once its delivery departs.
// The status authority applies, so a protected order refuses the move.
func (h *StartDeliveryCommandHandler) markOrderShipped(
	ctx context.Context,
	uow DeliveryUoW,
	orderID kernel.UUID,
) error {
	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = ord.ChangeStatus(order.Shipped); err != nil {
		return err
	}

	return orderRepo.Update(ctx, ord)
}

// markStopEnRoute advances the bound stop when it is still pending. Stops
// already advanced by the previous stop's completion are left alone.
func (h *StartDeliveryCommandHandler) markStopEnRoute(
	ctx context.Context,
	uow DeliveryUoW,
	bound delivery.RouteBound,
) error {
	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetForUpdateByStopID(ctx, bound.StopID())
	if err != nil {
		return err
	}

	stop, err := r.StopByID(bound.StopID())
	if err != nil {
		return err
	}

	if stop.Status() != route.StopPending {
		return nil
	}

	// the first departure also starts a planned route
	if r.Status() == route.Planned {
		if err = r.Start(); err != nil {
			return err
		}
	}

	if err = stop.MarkEnRoute(); err != nil {
		return err
	}

	return routeRepo.Update(ctx, r)
}
