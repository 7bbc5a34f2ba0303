// Package order provides domain entities and business logic for sales-order
// management in the cold-chain fulfillment system. It implements the Order
// aggregate root with lifecycle management governed by an explicit status
// rank table.
//
// The package includes:
//   - Order: The aggregate root carrying order number, customer reference, total, and status
//   - Status: The order lifecycle enum with its immutable rank table
//   - Decide: The pure status-transition authority
//
// Key business rules:
//   - Orders must have a valid unique identifier and non-empty order number
//   - Statuses rank NEW=0 through PAID=8; CANCELLED ranks out-of-band at -1
//   - Once an order reaches the protected tier (rank >= 7: COMPLETED, INVOICED,
//     PAID) it can never move to a lower-ranked status, except to CANCELLED
//   - All other transitions are accepted without monotonicity enforcement,
//     leaving the back office free to correct statuses before completion
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
