package http

import "time"

// errorResponse is the uniform error body for failed requests.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// itemViolationResponse pins one broken checklist invariant to one submitted item.
type itemViolationResponse struct {
	Index       int    `json:"index"`
	OrderItemID string `json:"orderItemId"`
	Reason      string `json:"reason"`
}

// validationErrorResponse is returned when checklist items break the
// quantitative invariants. It lists every failing item so the driver app can
// correct the whole payload in one round trip.
type validationErrorResponse struct {
	Code       int                     `json:"code"`
	Message    string                  `json:"message"`
	Violations []itemViolationResponse `json:"violations"`
}

type itemResultRequest struct {
	OrderItemID       string `json:"orderItemId" validate:"required,uuid"`
	ProductID         string `json:"productId" validate:"required,uuid"`
	ProductName       string `json:"productName" validate:"required"`
	OrderedQuantity   int    `json:"orderedQuantity"`
	DeliveredQuantity int    `json:"deliveredQuantity"`
	RejectedQuantity  int    `json:"rejectedQuantity"`
	RejectionReason   string `json:"rejectionReason"`
	RejectionNotes    string `json:"rejectionNotes"`
	Unit              string `json:"unit"`
}

type checklistPhotoRequest struct {
	URL       string `json:"url" validate:"required,url"`
	PhotoType string `json:"photoType"`
	Caption   string `json:"caption"`
}

// completeDeliveryRequest is the driver's signed checklist submission. Only
// structural validity is checked here; the quantity invariants belong to the
// domain so that violations come back as a per-item list.
type completeDeliveryRequest struct {
	Items         []itemResultRequest     `json:"items" validate:"required,min=1,dive"`
	SignatureURL  string                  `json:"signatureUrl" validate:"required,url"`
	SignedBy      string                  `json:"signedBy" validate:"required"`
	SignedAt      time.Time               `json:"signedAt"`
	ItemsVerified bool                    `json:"itemsVerified"`
	IssueCategory string                  `json:"issueCategory"`
	Notes         string                  `json:"notes"`
	Photos        []checklistPhotoRequest `json:"photos" validate:"dive"`
}

// completeDeliveryResponse is the settlement receipt returned to the driver.
type completeDeliveryResponse struct {
	DeliveryStatus     string    `json:"deliveryStatus"`
	SignedBy           string    `json:"signedBy"`
	DeliveredItemCount int       `json:"deliveredItemCount"`
	RejectedItemCount  int       `json:"rejectedItemCount"`
	CompletedAt        time.Time `json:"completedAt"`
}

type changeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type activeDeliveryResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	OrderNumber   string    `json:"orderNumber"`
	CustomerName  string    `json:"customerName"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduledDate"`
	DriverID      *string   `json:"driverId,omitempty"`
}

type stopProgressResponse struct {
	StopID      string     `json:"stopId"`
	DeliveryID  string     `json:"deliveryId"`
	StopNumber  int        `json:"stopNumber"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type routeProgressResponse struct {
	RouteID        string                 `json:"routeId"`
	DriverID       string                 `json:"driverId"`
	VehicleID      string                 `json:"vehicleId"`
	Status         string                 `json:"status"`
	CompletedStops int                    `json:"completedStops"`
	TotalStops     int                    `json:"totalStops"`
	Stops          []stopProgressResponse `json:"stops"`
}

type uploadPhotoResponse struct {
	URL string `json:"url"`
}
