package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// EventRepository defines the persistence contract for the order_events
// outbox. Events are added in the same transaction as the transition they
// record; the relay job drains unpublished rows, giving the fan-out its
// at-least-once guarantee.
type EventRepository interface {
	// Add persists a transition event in the current transaction.
	Add(ctx context.Context, event *order.Event) error

	// GetUnpublished retrieves up to limit events not yet handed to the
	// publisher, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*order.Event, error)

	// MarkPublished records that an event was handed to the publisher.
	MarkPublished(ctx context.Context, eventID kernel.UUID) error
}
