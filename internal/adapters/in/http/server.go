// Package http exposes the delivery fulfillment API over echo. It binds and
// validates request payloads, authenticates drivers, dispatches to the
// application layer and maps domain errors to HTTP statuses.
package http

import (
	"net/http"
	"time"

	"coldchain/internal/core/application/usecases/commands"
	"coldchain/internal/core/application/usecases/queries"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	completeDeliveryHandler  commands.CompleteDeliveryCommandHandler
	startDeliveryHandler     commands.StartDeliveryCommandHandler
	arriveAtStopHandler      commands.ArriveAtStopCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler
	getRouteProgressHandler    queries.GetRouteProgressQueryHandler

	photoStore ports.PhotoStorage
	driverAuth ports.DriverAuth
}

// NewServer creates a new HTTP server with the required handlers and ports.
func NewServer(
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	arriveAtStopHandler commands.ArriveAtStopCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	getRouteProgressHandler queries.GetRouteProgressQueryHandler,
	photoStore ports.PhotoStorage,
	driverAuth ports.DriverAuth,
) *Server {
	return &Server{
		completeDeliveryHandler:    completeDeliveryHandler,
		startDeliveryHandler:       startDeliveryHandler,
		arriveAtStopHandler:        arriveAtStopHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		getActiveDeliveriesHandler: getActiveDeliveriesHandler,
		getRouteProgressHandler:    getRouteProgressHandler,
		photoStore:                 photoStore,
		driverAuth:                 driverAuth,
	}
}

// RegisterRoutes wires the API routes and the request validator into echo.
// Driver-facing endpoints go through driver authentication; dispatcher reads
// and the back-office status endpoint do not.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = &requestValidator{validate: validator.New()}

	api := e.Group("/api/v1")

	api.POST("/deliveries/:deliveryId/start", s.StartDelivery, s.requireDriver)
	api.POST("/deliveries/:deliveryId/complete", s.CompleteDelivery, s.requireDriver)
	api.POST("/deliveries/:deliveryId/photos", s.UploadChecklistPhoto, s.requireDriver)
	api.POST("/stops/:stopId/arrive", s.ArriveAtStop, s.requireDriver)

	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
	api.GET("/routes/:routeId/progress", s.GetRouteProgress)
}

// StartDelivery handles POST /api/v1/deliveries/:deliveryId/start - the driver
// departs, putting the delivery in transit and the order in shipped.
func (s *Server) StartDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(deliveryID, driverIDFromContext(ctx))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:deliveryId/complete - the
// driver submits the signed checklist and receives the settlement receipt.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req completeDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err)
	}

	items, err := itemResultsFromRequest(req.Items)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	photos := make([]commands.ChecklistPhoto, len(req.Photos))
	for i, p := range req.Photos {
		photos[i] = commands.ChecklistPhoto{URL: p.URL, PhotoType: p.PhotoType, Caption: p.Caption}
	}

	signedAt := req.SignedAt
	if signedAt.IsZero() {
		signedAt = time.Now()
	}

	cmd, err := commands.NewCompleteDeliveryCommand(
		deliveryID, driverIDFromContext(ctx),
		items,
		req.SignatureURL, req.SignedBy, signedAt,
		req.ItemsVerified, req.IssueCategory, req.Notes,
		photos,
	)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	result, err := s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, completeDeliveryResponse{
		DeliveryStatus:     result.DeliveryStatus.String(),
		SignedBy:           result.SignedBy,
		DeliveredItemCount: result.DeliveredItemCount,
		RejectedItemCount:  result.RejectedItemCount,
		CompletedAt:        result.CompletedAt,
	})
}

// UploadChecklistPhoto handles POST /api/v1/deliveries/:deliveryId/photos -
// stores one evidence photo or signature image and returns the minted URL.
// The URL is then referenced from a checklist submission.
func (s *Server) UploadChecklistPhoto(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(ctx, err)
	}
	defer src.Close()

	url, err := s.photoStore.Store(ctx.Request().Context(), deliveryID.String(), fileHeader.Filename, src)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, uploadPhotoResponse{URL: url})
}

// ArriveAtStop handles POST /api/v1/stops/:stopId/arrive - the driver reports
// arrival at a route stop.
func (s *Server) ArriveAtStop(ctx echo.Context) error {
	stopID, err := kernel.UUIDFromString(ctx.Param("stopId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewArriveAtStopCommand(stopID, driverIDFromContext(ctx))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.arriveAtStopHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderId/status - back-office
// manual status change, subject to the same transition rules as the cascade.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req changeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return writeBadRequest(ctx, err)
	}

	requested, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, requested)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active - open deliveries
// for the dispatcher dashboard.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]activeDeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		var driverID *string
		if d.DriverID != nil {
			id := d.DriverID.String()
			driverID = &id
		}

		response[i] = activeDeliveryResponse{
			ID:            d.ID.String(),
			OrderID:       d.OrderID.String(),
			OrderNumber:   d.OrderNumber,
			CustomerName:  d.CustomerName,
			Status:        d.Status,
			ScheduledDate: d.ScheduledDate,
			DriverID:      driverID,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRouteProgress handles GET /api/v1/routes/:routeId/progress - one route
// with its stops in visitation order.
func (s *Server) GetRouteProgress(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewGetRouteProgressQuery(routeID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	progress, err := s.getRouteProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	stops := make([]stopProgressResponse, len(progress.Stops))
	completed := 0
	for i, stop := range progress.Stops {
		if stop.CompletedAt != nil {
			completed++
		}

		stops[i] = stopProgressResponse{
			StopID:      stop.StopID.String(),
			DeliveryID:  stop.DeliveryID.String(),
			StopNumber:  stop.StopNumber,
			Status:      stop.Status,
			CompletedAt: stop.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, routeProgressResponse{
		RouteID:        progress.RouteID.String(),
		DriverID:       progress.DriverID.String(),
		VehicleID:      progress.VehicleID.String(),
		Status:         progress.Status,
		CompletedStops: completed,
		TotalStops:     len(stops),
		Stops:          stops,
	})
}

func itemResultsFromRequest(reqItems []itemResultRequest) ([]commands.ItemResult, error) {
	items := make([]commands.ItemResult, len(reqItems))
	for i, item := range reqItems {
		orderItemID, err := kernel.UUIDFromString(item.OrderItemID)
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, err
		}

		items[i] = commands.ItemResult{
			OrderItemID:       orderItemID,
			ProductID:         productID,
			ProductName:       item.ProductName,
			OrderedQuantity:   item.OrderedQuantity,
			DeliveredQuantity: item.DeliveredQuantity,
			RejectedQuantity:  item.RejectedQuantity,
			RejectionReason:   item.RejectionReason,
			RejectionNotes:    item.RejectionNotes,
			Unit:              item.Unit,
		}
	}

	return items, nil
}

// requestValidator adapts go-playground/validator to echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
