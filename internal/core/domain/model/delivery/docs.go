// Package delivery provides domain entities and business logic for delivery
// fulfillment in the cold-chain system. It implements the Delivery aggregate
// root together with its owned items, checklist, and photos.
//
// The package includes:
//   - Delivery: The aggregate root tracking one shipment of an order
//   - Binding: A sealed variant distinguishing route-bound from standalone deliveries
//   - Item: A per-order-line record of delivered and rejected quantities
//   - Checklist: The signed proof-of-delivery document, one per delivery
//   - Outcome: The classified result of a delivery attempt
//   - ItemValidationError: The per-item violation list raised before any write
//
// Key business rules:
//   - deliveredQuantity + rejectedQuantity must equal orderedQuantity on every item
//   - a rejection reason is required whenever rejectedQuantity > 0, and
//     rejection notes are required when the reason is Other
//   - a delivery in a terminal status (Delivered, PartiallyDelivered with
//     delivery time set, Failed, Cancelled) accepts no further transitions
//   - the checklist upserts on deliveryID; items are written once and are
//     immutable afterward
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
