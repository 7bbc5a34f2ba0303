package http

import (
	"context"

	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// DriverTokenHeader carries the driver credential on driver-facing endpoints.
const DriverTokenHeader = "X-Driver-Token"

const driverContextKey = "driverID"

// HeaderDriverAuth resolves the driver from a trusted gateway header that
// carries the driver ID directly. The API gateway in front of this service
// terminates the real authentication and forwards the resolved identity.
type HeaderDriverAuth struct{}

// NewHeaderDriverAuth creates a trusted-header driver authenticator.
func NewHeaderDriverAuth() HeaderDriverAuth {
	return HeaderDriverAuth{}
}

// Authenticate parses the forwarded driver ID. Anything that is not a valid
// UUID is treated as an unauthenticated caller.
func (HeaderDriverAuth) Authenticate(_ context.Context, credential string) (kernel.UUID, error) {
	if credential == "" {
		return kernel.UUID{}, errs.NewNotPermittedError("authenticate driver", "missing credential")
	}

	driverID, err := kernel.UUIDFromString(credential)
	if err != nil {
		return kernel.UUID{}, errs.NewNotPermittedErrorWithCause("authenticate driver", credential, err)
	}

	return driverID, nil
}

// requireDriver authenticates the calling driver and stashes the identity in
// the request context for the handler.
func (s *Server) requireDriver(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		credential := ctx.Request().Header.Get(DriverTokenHeader)

		driverID, err := s.driverAuth.Authenticate(ctx.Request().Context(), credential)
		if err != nil {
			return writeError(ctx, err)
		}

		ctx.Set(driverContextKey, driverID)

		return next(ctx)
	}
}

func driverIDFromContext(ctx echo.Context) kernel.UUID {
	driverID, _ := ctx.Get(driverContextKey).(kernel.UUID)
	return driverID
}
