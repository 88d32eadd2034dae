// Package ports defines the contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUnassigned retrieves orders in ready_for_pickup status with no
	// delivery partner bound. This is the partner board's view of claimable
	// work; it is advisory only, since the claim itself re-checks the
	// preconditions atomically.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// ClaimUnassigned atomically binds a delivery partner to an order.
	//
	// The check-and-set of (status, delivery_partner_id) must be a single
	// conditional write that only succeeds if the row still matches
	// status = ready_for_pickup and delivery_partner_id IS NULL at write
	// time. It must never be implemented as a read-then-write pair: that is
	// exactly the race window that would double-dispatch one order to two
	// partners.
	//
	// next is the post-claim status (awaiting_pickup_verification or
	// in_transit, depending on configuration).
	//
	// Returns the updated order on success, errs.ErrObjectNotFound if the
	// order id is unknown, or order.ErrOrderUnavailable if the row no longer
	// matches the preconditions (lost race).
	ClaimUnassigned(ctx context.Context, orderID, partnerID kernel.UUID, next order.Status) (*order.Order, error)
}
