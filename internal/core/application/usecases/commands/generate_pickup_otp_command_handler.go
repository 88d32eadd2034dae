package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/pickupotp"
	"grocery/internal/pkg/errs"
)

var (
	// ErrGeneratePickupOtpCommandHandlerParamsAreRequired is returned when the
	// handler is constructed with nil dependencies.
	ErrGeneratePickupOtpCommandHandlerParamsAreRequired = errors.New(
		"uowFactory is required",
	)

	// ErrNoPartnerAssigned is returned when an OTP is requested for an order
	// that no delivery partner has claimed yet.
	ErrNoPartnerAssigned = errors.New("order has no delivery partner assigned")

	// ErrOrderNotAwaitingVerification is returned when an OTP is requested for
	// an order outside the awaiting_pickup_verification status.
	ErrOrderNotAwaitingVerification = errors.New("order is not awaiting pickup verification")
)

// GeneratePickupOtpCommandHandler issues the pickup passcode for an order.
//
// Generation is idempotent while a live code exists: repeated requests return
// the same unverified, unexpired OTP instead of minting a new one, so a
// store refreshing the screen never invalidates the code the partner is
// already carrying. Only an expired code is replaced; an attempts-exhausted
// code stays in force until it expires, so exhaustion cannot be reset by
// regenerating.
type GeneratePickupOtpCommandHandler struct {
	uowFactory OtpUoWFactory
}

// NewGeneratePickupOtpCommandHandler creates a handler for OTP generation.
func NewGeneratePickupOtpCommandHandler(uowFactory OtpUoWFactory) (*GeneratePickupOtpCommandHandler, error) {
	if uowFactory == nil {
		return nil, ErrGeneratePickupOtpCommandHandlerParamsAreRequired
	}
	return &GeneratePickupOtpCommandHandler{uowFactory: uowFactory}, nil
}

// Handle returns the live OTP for the order, minting one if needed.
func (h *GeneratePickupOtpCommandHandler) Handle(
	ctx context.Context, cmd GeneratePickupOtpCommand,
) (*pickupotp.PickupOtp, error) {
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
	if orderAggregate.Status() != order.AwaitingPickupVerification {
		return nil, ErrOrderNotAwaitingVerification
	}
	if orderAggregate.Partner() == nil {
		return nil, ErrNoPartnerAssigned
	}

	now := time.Now().UTC()
	existing, err := uow.PickupOtpRepository().GetActiveByOrderID(ctx, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("get pickup OTP: %w", err)
	}
	if existing != nil && existing.IsLive(now) {
		return existing, nil
	}

	otp, err := pickupotp.NewPickupOtp(
		kernel.NewUUID(),
		orderAggregate.ID(),
		orderAggregate.StoreID(),
		pickupotp.GenerateCode(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := uow.PickupOtpRepository().Add(ctx, otp); err != nil {
		return nil, fmt.Errorf("add pickup OTP: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return otp, nil
}
