package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
)

// ErrTransitionOrderCommandHandlerParamsAreRequired is returned when the
// handler is constructed with nil dependencies.
var ErrTransitionOrderCommandHandlerParamsAreRequired = errors.New(
	"uowFactory and eventPublisher are required",
)

// ErrActorMismatch is returned when the acting user is not the party the
// order binds for their role: its customer, its store, or its assigned
// delivery partner.
var ErrActorMismatch = errors.New("actor is not a party to this order")

// TransitionOrderCommandHandler applies a status transition requested by an
// actor. The aggregate decides whether the edge is legal for the actor's
// role; the handler checks the actor is the party the order binds for that
// role and owns the read-modify-write cycle and the outbox event.
//
// A request that targets the order's current status is a no-op: the handler
// returns the unchanged order without writing an event, so retried requests
// never re-fire notifications.
type TransitionOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	eventPublisher ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	eventPublisher ports.EventPublisher,
) (*TransitionOrderCommandHandler, error) {
	if uowFactory == nil || eventPublisher == nil {
		return nil, ErrTransitionOrderCommandHandlerParamsAreRequired
	}
	return &TransitionOrderCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}, nil
}

// Handle transitions the order and returns the updated aggregate.
func (h *TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := actorBoundToOrder(orderAggregate, cmd.ActorID(), cmd.ActorRole()); err != nil {
		return nil, err
	}

	oldStatus := orderAggregate.Status()
	if oldStatus == cmd.Target() {
		return orderAggregate, nil
	}

	now := time.Now().UTC()
	if err := orderAggregate.TransitionTo(cmd.Target(), cmd.ActorRole(), now); err != nil {
		return nil, err
	}

	event, err := order.NewEvent(kernel.NewUUID(), orderAggregate.ID(), oldStatus, orderAggregate.Status(), now)
	if err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Update(ctx, orderAggregate); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if err := uow.EventRepository().Add(ctx, event); err != nil {
		return nil, fmt.Errorf("add order event: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	dispatchEvent(ctx, h.eventPublisher, uow.EventRepository(), event, orderAggregate)
	return orderAggregate, nil
}

// actorBoundToOrder rejects callers acting on orders that are not theirs.
// System actors are internal entry points and carry no binding.
func actorBoundToOrder(o *order.Order, actorID kernel.UUID, role order.Role) error {
	switch role {
	case order.RoleCustomer:
		if !actorID.IsEqual(o.CustomerID()) {
			return ErrActorMismatch
		}
	case order.RoleStore:
		if !actorID.IsEqual(o.StoreID()) {
			return ErrActorMismatch
		}
	case order.RolePartner:
		partnerID := o.Partner()
		if partnerID == nil || !actorID.IsEqual(*partnerID) {
			return ErrActorMismatch
		}
	}
	return nil
}
