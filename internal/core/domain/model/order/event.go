package order

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent or RestoreEvent factory methods.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event records a committed status transition. Events are written to the
// order_events outbox in the same transaction as the transition itself, then
// fanned out to observers; the relay retries undelivered rows, which yields
// at-least-once delivery.
//
// Observers always receive a full order snapshot alongside the event, never
// a diff, so duplicates are safe to apply as idempotent overwrites keyed by
// order id.
type Event struct {
	// id is the unique identifier for the event
	id kernel.UUID

	// orderID is the order that transitioned
	orderID kernel.UUID

	oldStatus Status
	newStatus Status

	occurredAt time.Time

	// isConstructed ensures the event was created via a constructor
	isConstructed bool
}

// NewEvent creates a transition event.
func NewEvent(id, orderID kernel.UUID, oldStatus, newStatus Status, occurredAt time.Time) (*Event, error) {
	event := &Event{
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		newStatus.Validate(),
	); err != nil {
		return nil, err
	}

	event.id = id
	event.orderID = orderID
	event.oldStatus = oldStatus
	event.newStatus = newStatus
	return event, nil
}

// RestoreEvent reconstructs an Event from persistence.
func RestoreEvent(id, orderID kernel.UUID, oldStatus, newStatus Status, occurredAt time.Time) (*Event, error) {
	return NewEvent(id, orderID, oldStatus, newStatus, occurredAt)
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order that transitioned.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// OldStatus returns the status before the transition.
// It is Unknown for the placement event of a new order.
func (e *Event) OldStatus() Status {
	return e.oldStatus
}

// NewStatus returns the status after the transition.
func (e *Event) NewStatus() Status {
	return e.newStatus
}

// OccurredAt returns the transition timestamp.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}
