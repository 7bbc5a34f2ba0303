package commands

import (
	"context"
	"time"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/core/domain/services"
	"coldchain/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler runs the delivery fulfillment cascade. One
// checklist submission settles the delivery, the customer's order, the route
// stop the delivery is bound to, and the fleet resources it was holding. The
// whole cascade runs inside a single transaction: either every downstream
// record reflects the completion or none does.
//
// Cascade order:
//  1. Load and lock the delivery. Missing delivery is not-found; a delivery
//     owned by a different driver is not-permitted; an already-terminal
//     delivery is a state conflict. All checks run before any write.
//  2. Classify the item results into an outcome. Invalid items abort with a
//     per-item validation error.
//  3. Settle the delivery: record items, attach the checklist, set the
//     terminal status and delivery time.
//  4. Cascade the outcome onto the order: a delivered outcome completes the
//     order, a partial one marks it partial, a failed attempt leaves the
//     order untouched for a retry.
//  5. Route-bound deliveries terminate their stop, advance the next pending
//     stop to en-route, and close the route when every stop is terminal.
//     Standalone deliveries release their driver and vehicle directly;
//     route-bound ones keep them until the route closes.
// CompleteDeliveryResult summarizes a settled delivery for the caller:
// the terminal status the delivery took plus the checklist receipt.
type CompleteDeliveryResult struct {
	DeliveryStatus     delivery.Status
	SignedBy           string
	DeliveredItemCount int
	RejectedItemCount  int
	CompletedAt        time.Time
}

type CompleteDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	classifier services.OutcomeClassifier
	monitor    services.RouteCompletionMonitor
	now        func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for checklist submissions.
// Requires a FulfillmentUoWFactory since the cascade spans every aggregate.
func NewCompleteDeliveryCommandHandler(uowFactory FulfillmentUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		classifier: services.NewOutcomeClassifier(),
		monitor:    services.NewRouteCompletionMonitor(),
		now:        time.Now,
	}
}

// Handle processes one checklist submission end to end and returns the
// settlement receipt.
func (h *CompleteDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteDeliveryCommand,
) (CompleteDeliveryResult, error) {
	var result CompleteDeliveryResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return result, err
	}

	if !d.OwnedBy(cmd.DriverID()) {
		return result, errs.NewNotPermittedError("complete delivery", cmd.DeliveryID().String())
	}
	if d.Status().IsTerminal() {
		return result, errs.NewConflictError("delivery", d.Status().String())
	}

	outcome, err := h.classifier.Classify(items, cmd.IssueCategory() != "")
	if err != nil {
		return result, err
	}

	checklist, err := delivery.NewChecklist(
		kernel.NewUUID(), d.ID(),
		cmd.SignatureURL(), cmd.SignedBy(), cmd.SignedAt(),
		cmd.ItemsVerified(), cmd.IssueCategory(), cmd.Notes(),
		buildPhotos(cmd.Photos()),
	)
	if err != nil {
		return result, err
	}

	completedAt := h.now()
	if err = d.RecordItems(items); err != nil {
		return result, err
	}
	if err = d.AttachChecklist(checklist); err != nil {
		return result, err
	}
	if err = d.CompleteWith(outcome, completedAt); err != nil {
		return result, err
	}
	if err = deliveryRepo.Update(ctx, d); err != nil {
		return result, err
	}

	if err = h.cascadeToOrder(ctx, uow, d.OrderID(), outcome); err != nil {
		return result, err
	}

	switch binding := d.Binding().(type) {
	case delivery.RouteBound:
		if err = h.settleRouteStop(ctx, uow, binding.StopID(), outcome, completedAt); err != nil {
			return result, err
		}
	default:
		if err = h.releaseFleet(ctx, uow, d.DriverID(), d.VehicleID()); err != nil {
			return result, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return result, err
	}

	return newCompleteDeliveryResult(d, checklist, completedAt), nil
}

func newCompleteDeliveryResult(
	d *delivery.Delivery,
	checklist *delivery.Checklist,
	completedAt time.Time,
) CompleteDeliveryResult {
	// The receipt counts units, not order lines: a line delivered 6/rejected 4
	// contributes to both totals.
	delivered, rejected := 0, 0
	for _, item := range d.Items() {
		delivered += item.DeliveredQuantity()
		rejected += item.RejectedQuantity()
	}

	return CompleteDeliveryResult{
		DeliveryStatus:     d.Status(),
		SignedBy:           checklist.SignedBy(),
		DeliveredItemCount: delivered,
		RejectedItemCount:  rejected,
		CompletedAt:        completedAt,
	}
}

// cascadeToOrder maps the delivery outcome onto the customer's order status.
// A failed attempt leaves the order as-is so another delivery can be scheduled.
func (h *CompleteDeliveryCommandHandler) cascadeToOrder(
	ctx context.Context,
	uow FulfillmentUoW,
	orderID kernel.UUID,
	outcome delivery.Outcome,
) error {
	var target order.Status
	switch outcome {
	case delivery.OutcomeDelivered:
		target = order.Completed
	case delivery.OutcomePartiallyDelivered:
		target = order.Partial
	default:
		return nil
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = ord.ChangeStatus(target); err != nil {
		return err
	}

	return orderRepo.Update(ctx, ord)
}

// settleRouteStop terminates the stop bound to the completed delivery,
// advances the next pending stop, and closes the route when it was the last
// open stop. Fleet resources are released only when the route closes.
func (h *CompleteDeliveryCommandHandler) settleRouteStop(
	ctx context.Context,
	uow FulfillmentUoW,
	stopID kernel.UUID,
	outcome delivery.Outcome,
	completedAt time.Time,
) error {
	routeRepo := uow.RouteRepository()
	r, err := routeRepo.GetForUpdateByStopID(ctx, stopID)
	if err != nil {
		return err
	}

	stop, err := r.StopByID(stopID)
	if err != nil {
		return err
	}

	if outcome == delivery.OutcomeFailed {
		err = stop.Fail(completedAt)
	} else {
		err = stop.Complete(completedAt)
	}
	if err != nil {
		return err
	}

	// A failed attempt keeps the driver at the stop, so the next stop is
	// advanced only on a successful or partial outcome.
	if outcome != delivery.OutcomeFailed {
		if next := r.NextPendingStopAfter(stop.StopNumber()); next != nil {
			if err = next.MarkEnRoute(); err != nil {
				return err
			}
		}
	}

	closed, err := h.monitor.TryClose(r)
	if err != nil {
		return err
	}

	if err = routeRepo.Update(ctx, r); err != nil {
		return err
	}

	if closed {
		driverID := r.DriverID()
		vehicleID := r.VehicleID()
		return h.releaseFleet(ctx, uow, &driverID, &vehicleID)
	}

	return nil
}

// releaseFleet returns the driver and vehicle to their available pools.
// Nil identifiers are skipped: an unassigned delivery holds no resources.
func (h *CompleteDeliveryCommandHandler) releaseFleet(
	ctx context.Context,
	uow FulfillmentUoW,
	driverID, vehicleID *kernel.UUID,
) error {
	if driverID != nil {
		driverRepo := uow.DriverRepository()
		driver, err := driverRepo.Get(ctx, *driverID)
		if err != nil {
			return err
		}
		driver.Release()
		if err = driverRepo.Update(ctx, driver); err != nil {
			return err
		}
	}

	if vehicleID != nil {
		vehicleRepo := uow.VehicleRepository()
		vehicle, err := vehicleRepo.Get(ctx, *vehicleID)
		if err != nil {
			return err
		}
		vehicle.Release()
		if err = vehicleRepo.Update(ctx, vehicle); err != nil {
			return err
		}
	}

	return nil
}

func buildItems(results []ItemResult) ([]*delivery.Item, error) {
	items := make([]*delivery.Item, 0, len(results))
	for _, r := range results {
		reason, err := delivery.RejectionReasonFromString(r.RejectionReason)
		if err != nil {
			return nil, err
		}

		item, err := delivery.NewItem(
			r.OrderItemID, r.ProductID,
			r.ProductName,
			r.OrderedQuantity, r.DeliveredQuantity, r.RejectedQuantity,
			reason, r.RejectionNotes, r.Unit,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func buildPhotos(photos []ChecklistPhoto) []delivery.Photo {
	if len(photos) == 0 {
		return nil
	}
	out := make([]delivery.Photo, 0, len(photos))
	for _, p := range photos {
		out = append(out, delivery.Photo{
			URL:       p.URL,
			PhotoType: p.PhotoType,
			Caption:   p.Caption,
		})
	}
	return out
}
