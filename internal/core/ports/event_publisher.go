package ports

import (
	"context"

	"grocery/internal/core/domain/model/order"
)

// EventPublisher fans a committed status transition out to the observer
// topics for the order's customer, store, and (when bound) delivery partner.
//
// Publish is fire-and-forget relative to the transition that triggered it:
// implementations must never block on slow observers and never surface
// delivery failures to the caller. Delivery is at-least-once and unordered
// across topics; every message carries the full order snapshot so observers
// can resynchronize from any single message.
type EventPublisher interface {
	Publish(ctx context.Context, event *order.Event, snapshot *order.Order)
}
