package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

// ErrSetPartnerAvailabilityCommandIsNotConstructed is returned when the
// command was not created through its constructor.
var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand toggles a delivery partner's willingness to
// receive assignment offers. Only the partner issues this for themselves.
type SetPartnerAvailabilityCommand struct { //nolint:recvcheck //using for validation
	partnerID   kernel.UUID
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewSetPartnerAvailabilityCommand creates a command to set availability.
func NewSetPartnerAvailabilityCommand(partnerID kernel.UUID, isAvailable bool) (SetPartnerAvailabilityCommand, error) {
	cmd := SetPartnerAvailabilityCommand{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

// PartnerID returns the partner whose availability changes.
func (c SetPartnerAvailabilityCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// IsAvailable returns the requested availability flag.
func (c SetPartnerAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *SetPartnerAvailabilityCommand) setPartnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partnerID = id
	return nil
}
