package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

// ErrGeneratePickupOtpCommandIsNotConstructed is returned when the command
// was not created through its constructor.
var ErrGeneratePickupOtpCommandIsNotConstructed = errors.New(
	"GeneratePickupOtpCommand must be created via NewGeneratePickupOtpCommand constructor",
)

// GeneratePickupOtpCommand requests a pickup passcode for an order awaiting
// handoff verification.
type GeneratePickupOtpCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGeneratePickupOtpCommand creates a command to generate a pickup OTP.
func NewGeneratePickupOtpCommand(orderID kernel.UUID) (GeneratePickupOtpCommand, error) {
	cmd := GeneratePickupOtpCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setOrderID(orderID); err != nil {
		return GeneratePickupOtpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GeneratePickupOtpCommand) Validate() error {
	return c.guard.Validate(ErrGeneratePickupOtpCommandIsNotConstructed)
}

// OrderID returns the order the passcode is for.
func (c GeneratePickupOtpCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *GeneratePickupOtpCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
