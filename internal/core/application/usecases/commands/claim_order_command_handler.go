package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// ErrClaimOrderCommandHandlerParamsAreRequired is returned when the handler
// is constructed with invalid dependencies.
var ErrClaimOrderCommandHandlerParamsAreRequired = errors.New(
	"uowFactory, eventPublisher and a valid post-claim status are required",
)

// ClaimOrderCommandHandler atomically assigns an unassigned order to exactly
// one delivery partner.
//
// The decision point is a single conditional write in the repository: the
// partner is bound only if the order is still ready_for_pickup with no
// partner at the moment the statement executes. Losing racers get
// ErrOrderUnavailable, never a partial assignment, and a losing claim writes
// nothing.
//
// The post-claim status is fixed at construction from deployment
// configuration: awaiting_pickup_verification when pickup verification is
// OTP-gated, in_transit for direct handoff.
type ClaimOrderCommandHandler struct {
	uowFactory      OrderUoWFactory
	eventPublisher  ports.EventPublisher
	postClaimStatus order.Status
}

// NewClaimOrderCommandHandler creates a handler for partner claims.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	eventPublisher ports.EventPublisher,
	postClaimStatus order.Status,
) (*ClaimOrderCommandHandler, error) {
	if uowFactory == nil || eventPublisher == nil {
		return nil, ErrClaimOrderCommandHandlerParamsAreRequired
	}
	if postClaimStatus != order.AwaitingPickupVerification && postClaimStatus != order.InTransit {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"postClaimStatus",
			fmt.Errorf("%s is not a valid post-claim status", postClaimStatus.String()),
		)
	}
	return &ClaimOrderCommandHandler{
		uowFactory:      uowFactory,
		eventPublisher:  eventPublisher,
		postClaimStatus: postClaimStatus,
	}, nil
}

// Handle claims the order for the partner and returns the updated aggregate.
// Returns order.ErrOrderUnavailable when another partner won the race or the
// order is not ready for pickup.
func (h *ClaimOrderCommandHandler) Handle(
	ctx context.Context, cmd ClaimOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	claimed, err := uow.OrderRepository().ClaimUnassigned(
		ctx, cmd.OrderID(), cmd.PartnerID(), h.postClaimStatus,
	)
	if err != nil {
		return nil, err
	}

	event, err := order.NewEvent(
		kernel.NewUUID(), claimed.ID(), order.ReadyForPickup, claimed.Status(), time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	if err := uow.EventRepository().Add(ctx, event); err != nil {
		return nil, fmt.Errorf("add order event: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	dispatchEvent(ctx, h.eventPublisher, uow.EventRepository(), event, claimed)
	return claimed, nil
}
