package delivery

import (
	"coldchain/internal/core/domain/model/kernel"
)

// Binding is the sealed variant describing how a delivery relates to routing.
// A delivery is either bound to one stop of a multi-stop route, or standalone.
// The two cases release the driver and vehicle on different paths, so the
// cascade switches on the concrete type rather than on an optional field.
type Binding interface {
	isBinding()
}

// Standalone marks a delivery that is not part of a multi-stop route.
// Its driver and vehicle are released immediately on completion.
type Standalone struct{}

func (Standalone) isBinding() {}

// RouteBound marks a delivery attached to a route stop. The stop belongs to
// its route; the delivery only holds a weak reference by ID.
type RouteBound struct {
	stopID kernel.UUID
}

// NewRouteBound creates a RouteBound binding for the given stop.
func NewRouteBound(stopID kernel.UUID) (RouteBound, error) {
	if err := stopID.Validate(); err != nil {
		return RouteBound{}, err
	}
	return RouteBound{stopID: stopID}, nil
}

func (RouteBound) isBinding() {}

// StopID returns the identifier of the route stop this delivery is bound to.
func (b RouteBound) StopID() kernel.UUID {
	return b.stopID
}
