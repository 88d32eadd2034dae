package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

// ErrTransitionOrderCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to a target status on behalf of an
// identified actor. The actor's identity and role always arrive as explicit
// parameters; nothing is read from ambient session state, so the same
// handler serves HTTP requests, background jobs, and tests alike.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	actorID   kernel.UUID
	actorRole order.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID kernel.UUID,
	actorRole order.Role,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// ActorID returns who is requesting the transition.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the actor's role in the workflow.
func (c TransitionOrderCommand) ActorRole() order.Role {
	return c.actorRole
}

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *TransitionOrderCommand) setActorRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.actorRole = role
	return nil
}
