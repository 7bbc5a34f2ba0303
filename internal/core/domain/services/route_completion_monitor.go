package services

import (
	"coldchain/internal/core/domain/model/route"
)

// RouteCompletionMonitor is a domain service that decides whether a route has
// finished. A route finishes when every stop has reached a terminal status;
// stops may terminate in any order, so the monitor re-evaluates the whole
// route instead of tracking sequential progress.
//
// The monitor only mutates the route aggregate. Releasing the driver and
// vehicle attached to a closed route is the caller's responsibility, since it
// must happen in the same transaction as the route update.
type RouteCompletionMonitor struct{}

// NewRouteCompletionMonitor creates a new RouteCompletionMonitor instance.
func NewRouteCompletionMonitor() RouteCompletionMonitor {
	return RouteCompletionMonitor{}
}

// TryClose closes the route when all of its stops are terminal.
//
// Returns true when this call transitioned the route to Completed. Routes that
// are already closed, or that still have open stops, are left untouched and
// return false.
func (m RouteCompletionMonitor) TryClose(r *route.Route) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	return r.CloseIfFinished(), nil
}
