package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/pickupotp"
	"grocery/internal/core/ports"
)

var (
	// ErrVerifyPickupOtpCommandHandlerParamsAreRequired is returned when the
	// handler is constructed with nil dependencies.
	ErrVerifyPickupOtpCommandHandlerParamsAreRequired = errors.New(
		"uowFactory and eventPublisher are required",
	)

	// ErrPartnerMismatch is returned when a partner other than the one bound
	// to the order presents the pickup code.
	ErrPartnerMismatch = errors.New("pickup code presented by a partner not assigned to the order")
)

// VerifyPickupOtpCommandHandler checks a presented pickup code and, on a
// match, marks the OTP verified and moves the order to in_transit in one
// transaction. A crash can never leave one written without the other.
//
// A failed match is the only partial write in the flow: the attempt counter
// is bumped with a conditional increment and committed even though the order
// is untouched, so concurrent submissions cannot manufacture extra attempts.
type VerifyPickupOtpCommandHandler struct {
	uowFactory     OtpUoWFactory
	eventPublisher ports.EventPublisher
}

// NewVerifyPickupOtpCommandHandler creates a handler for OTP verification.
func NewVerifyPickupOtpCommandHandler(
	uowFactory OtpUoWFactory,
	eventPublisher ports.EventPublisher,
) (*VerifyPickupOtpCommandHandler, error) {
	if uowFactory == nil || eventPublisher == nil {
		return nil, ErrVerifyPickupOtpCommandHandlerParamsAreRequired
	}
	return &VerifyPickupOtpCommandHandler{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}, nil
}

// Handle verifies the submitted code and returns the updated order on
// success. Failure modes unwrap to the pickupotp sentinel errors.
func (h *VerifyPickupOtpCommandHandler) Handle(
	ctx context.Context, cmd VerifyPickupOtpCommand,
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
	if orderAggregate.Partner() == nil {
		return nil, ErrNoPartnerAssigned
	}
	if !orderAggregate.Partner().IsEqual(cmd.PartnerID()) {
		return nil, ErrPartnerMismatch
	}

	otp, err := uow.PickupOtpRepository().GetActiveByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return nil, fmt.Errorf("get pickup OTP: %w", err)
	}

	now := time.Now().UTC()
	if err := otp.Verify(cmd.Code(), cmd.PartnerID(), now); err != nil {
		var incorrect *pickupotp.IncorrectCodeError
		if !errors.As(err, &incorrect) {
			return nil, err
		}
		return nil, h.recordFailedAttempt(ctx, uow, otp.ID())
	}

	if err := orderAggregate.VerifyPickup(now); err != nil {
		return nil, err
	}

	event, err := order.NewEvent(
		kernel.NewUUID(), orderAggregate.ID(), order.AwaitingPickupVerification, orderAggregate.Status(), now,
	)
	if err != nil {
		return nil, err
	}

	if err := uow.PickupOtpRepository().Update(ctx, otp); err != nil {
		return nil, fmt.Errorf("update pickup OTP: %w", err)
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

// recordFailedAttempt commits a conditional increment of the attempt counter
// and reports how many attempts remain. The increment races against other
// submissions for the same code, so the count comes from the write itself,
// not from the aggregate loaded earlier.
func (h *VerifyPickupOtpCommandHandler) recordFailedAttempt(
	ctx context.Context, uow OtpUoW, otpID kernel.UUID,
) error {
	attempts, err := uow.PickupOtpRepository().IncrementAttempts(ctx, otpID)
	if err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return pickupotp.NewIncorrectCodeError(pickupotp.MaxAttempts - attempts)
}
