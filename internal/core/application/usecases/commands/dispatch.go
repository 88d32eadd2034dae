package commands

import (
	"context"

	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
)

// dispatchEvent hands a committed transition to the fan-out and marks the
// outbox row published. Called after Commit, outside any transaction.
//
// Both steps are best-effort: the publish is fire-and-forget by contract,
// and a failed mark just means the relay job republishes the event later.
// Observers treat snapshots as idempotent overwrites, so the duplicate is
// harmless.
func dispatchEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	events ports.EventRepository,
	event *order.Event,
	snapshot *order.Order,
) {
	publisher.Publish(ctx, event, snapshot)
	_ = events.MarkPublished(ctx, event.ID())
}
