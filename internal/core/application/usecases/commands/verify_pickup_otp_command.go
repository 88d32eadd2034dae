package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

// ErrVerifyPickupOtpCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrVerifyPickupOtpCommandIsNotConstructed = errors.New(
	"VerifyPickupOtpCommand must be created via NewVerifyPickupOtpCommand constructor",
)

// VerifyPickupOtpCommand is a delivery partner presenting a pickup passcode
// at the store counter.
type VerifyPickupOtpCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewVerifyPickupOtpCommand creates a command to verify a pickup OTP.
func NewVerifyPickupOtpCommand(orderID, partnerID kernel.UUID, code string) (VerifyPickupOtpCommand, error) {
	cmd := VerifyPickupOtpCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setCode(code),
	); err != nil {
		return VerifyPickupOtpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyPickupOtpCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPickupOtpCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c VerifyPickupOtpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the delivery partner presenting the code.
func (c VerifyPickupOtpCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Code returns the submitted passcode.
func (c VerifyPickupOtpCommand) Code() string {
	return c.code
}

func (c *VerifyPickupOtpCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *VerifyPickupOtpCommand) setPartnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partnerID = id
	return nil
}

func (c *VerifyPickupOtpCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
