// Package order provides domain entities and business logic for order
// management in the grocery storefront. It implements the Order aggregate
// root with lifecycle management and actor-aware state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, money totals, and lifecycle
//   - Status: A state machine that enforces valid order status transitions per actor role
//   - Role: The actor (customer, store, partner, system) requesting a transition
//   - Item: An immutable product snapshot captured at order time
//
// Key business rules:
//   - Order totals always satisfy total = subtotal + delivery fee - discount
//   - Status follows the workflow: pending -> processing -> ready_for_pickup ->
//     (awaiting_pickup_verification) -> in_transit -> delivered
//   - cancelled is reachable from any non-terminal state, but customers may
//     cancel only while the order is still pending
//   - At most one delivery partner is ever bound to an order; once set, the
//     partner assignment never changes
//   - Delivered and cancelled are terminal; no further transitions are allowed
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
