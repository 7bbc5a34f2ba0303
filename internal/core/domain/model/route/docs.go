// Package route provides domain entities for multi-stop delivery routes in the
// cold-chain system. It implements the DeliveryRoute aggregate root and its
// owned RouteStop entities.
//
// The package includes:
//   - Route: The aggregate root holding the ordered stops, the assigned driver
//     and vehicle, and the route lifecycle status
//   - Stop: One visit on the route, with a 1-based unique stop number and its
//     own state machine
//
// Key business rules:
//   - stop numbers are 1-based and unique within a route; they define the
//     planned visitation order
//   - the stop state machine is PENDING -> EN_ROUTE -> ARRIVED -> COMPLETED,
//     with FAILED and SKIPPED reachable from any non-terminal state; terminal
//     states have no outgoing transitions
//   - a route is COMPLETED exactly when every stop is terminal; stops may
//     terminate out of numeric order, so the completion predicate never
//     assumes sequential progress
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package route
