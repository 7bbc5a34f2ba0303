package http

import (
	"errors"
	"net/http"

	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps an application error to an HTTP response. Checklist item
// violations get a dedicated body listing every failing item; everything else
// maps through the error taxonomy.
func writeError(ctx echo.Context, err error) error {
	var validationErr *delivery.ItemValidationError
	if errors.As(err, &validationErr) {
		violations := make([]itemViolationResponse, len(validationErr.Violations))
		for i, v := range validationErr.Violations {
			violations[i] = itemViolationResponse{
				Index:       v.Index,
				OrderItemID: v.OrderItemID.String(),
				Reason:      string(v.Reason),
			}
		}

		return ctx.JSON(http.StatusBadRequest, validationErrorResponse{
			Code:       http.StatusBadRequest,
			Message:    "checklist items failed validation",
			Violations: violations,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeStatus(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrNotPermitted):
		return writeStatus(ctx, http.StatusForbidden, err)
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, order.ErrCannotRevertCompletedOrder):
		return writeStatus(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeStatus(ctx, http.StatusBadRequest, err)
	default:
		ctx.Logger().Error(err)

		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

// writeBadRequest reports a malformed request body or parameter.
func writeBadRequest(ctx echo.Context, err error) error {
	return writeStatus(ctx, http.StatusBadRequest, err)
}

func writeStatus(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}
