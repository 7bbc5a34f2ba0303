// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the cold-chain delivery system. It implements
// business rules that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OutcomeClassifier: derives the outcome of a completed delivery from its
//     item-level results and the driver's checklist
//   - RouteCompletionMonitor: closes a route once every stop has terminated
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
