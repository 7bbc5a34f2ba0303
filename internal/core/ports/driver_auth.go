package ports

import (
	"context"

	"coldchain/internal/core/domain/model/kernel"
)

// DriverAuth resolves the driver behind an incoming request credential.
// Ownership checks in the command handlers rely on the returned identity,
// so the HTTP layer authenticates before dispatching any driver operation.
type DriverAuth interface {
	// Authenticate maps a request credential to a driver ID.
	// Returns a not-permitted error for credentials it cannot resolve.
	Authenticate(ctx context.Context, credential string) (kernel.UUID, error)
}
