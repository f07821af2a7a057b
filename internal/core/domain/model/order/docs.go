// Package order provides domain entities and business logic for order management
// in the delivery system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and lifecycle
//   - Item: An order line holding the menu item reference, captured price, and quantity
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid unique identifier, restaurant, client, and at least one item
//   - Order status follows a defined workflow:
//     pending -> preparing -> taken -> delivering -> completed
//   - Couriers may take orders in pending or preparing status
//   - Cancellation is allowed from any non-terminal status
//   - Monetary totals use fixed-point decimals with two fractional digits
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
