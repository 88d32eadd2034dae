package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle and assignment failures.
// Callers classify with errors.Is and map these to user-visible behavior.
var (
	// ErrInvalidTransition indicates the requested status edge is not in the
	// allowed set for the actor/current-state pair.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderUnavailable indicates a claim attempt lost the race: the order
	// was already bound to another delivery partner (or left ready_for_pickup).
	// Callers must not retry blindly; they should refresh their view of
	// available orders.
	ErrOrderUnavailable = errors.New("order is no longer available")
)

// InvalidTransitionError carries the rejected edge and the actor that
// requested it. Rejections are no-ops: no partial state is ever written.
type InvalidTransitionError struct {
	From  Status
	To    Status
	Actor Role
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status, actor Role) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Actor: actor}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed for %s",
		ErrInvalidTransition, e.From, e.To, e.Actor)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
