package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/partner"
	"grocery/internal/pkg/errs"
)

// ErrSetPartnerAvailabilityCommandHandlerParamsAreRequired is returned when
// the handler is constructed with nil dependencies.
var ErrSetPartnerAvailabilityCommandHandlerParamsAreRequired = errors.New(
	"uowFactory is required",
)

// SetPartnerAvailabilityCommandHandler updates a partner's availability
// profile, creating it on the first toggle. Partner identities live in the
// identity provider, so there is no separate registration step to depend on.
type SetPartnerAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetPartnerAvailabilityCommandHandler(
	uowFactory PartnerUoWFactory,
) (*SetPartnerAvailabilityCommandHandler, error) {
	if uowFactory == nil {
		return nil, ErrSetPartnerAvailabilityCommandHandlerParamsAreRequired
	}
	return &SetPartnerAvailabilityCommandHandler{uowFactory: uowFactory}, nil
}

// Handle applies the availability toggle and returns the updated profile.
func (h *SetPartnerAvailabilityCommandHandler) Handle(
	ctx context.Context, cmd SetPartnerAvailabilityCommand,
) (*partner.DeliveryPartner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = uow.Rollback(ctx) }()

	now := time.Now().UTC()
	profile, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("get partner: %w", err)
		}
		profile, err = partner.NewDeliveryPartner(cmd.PartnerID(), now)
		if err != nil {
			return nil, err
		}
	}

	profile.SetAvailability(cmd.IsAvailable(), now)

	if err := uow.PartnerRepository().Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert partner: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return profile, nil
}
