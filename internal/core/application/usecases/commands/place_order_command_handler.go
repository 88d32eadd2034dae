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

// ErrPlaceOrderCommandHandlerParamsAreRequired is returned when the handler
// is constructed with nil dependencies.
var ErrPlaceOrderCommandHandlerParamsAreRequired = errors.New(
	"uowFactory and eventPublisher are required",
)

// PlaceOrderCommandHandler processes checkout: it creates the order aggregate
// in pending status, persists it together with its placement event, and fans
// the event out after commit.
type PlaceOrderCommandHandler struct {
	uowFactory     OrderUoWFactory
	eventPublisher ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for placing orders.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	eventPublisher ports.EventPublisher,
) (*PlaceOrderCommandHandler, error) {
	if uowFactory == nil || eventPublisher == nil {
		return nil, ErrPlaceOrderCommandHandlerParamsAreRequired
	}
	return &PlaceOrderCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}, nil
}

// Handle creates the order and returns the persisted aggregate.
func (h *PlaceOrderCommandHandler) Handle(
	ctx context.Context, cmd PlaceOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.StoreID(),
		cmd.DeliveryAddress(),
		cmd.Items(),
		cmd.DeliveryFee(),
		cmd.Discount(),
		now,
	)
	if err != nil {
		return nil, err
	}

	// The placement event has no previous status.
	event, err := order.NewEvent(kernel.NewUUID(), newOrder.ID(), order.Unknown, newOrder.Status(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, fmt.Errorf("add order: %w", err)
	}
	if err := uow.EventRepository().Add(ctx, event); err != nil {
		return nil, fmt.Errorf("add order event: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	dispatchEvent(ctx, h.eventPublisher, uow.EventRepository(), event, newOrder)
	return newOrder, nil
}
