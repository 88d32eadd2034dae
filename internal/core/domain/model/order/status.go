package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with actor-aware transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Processing ──> ReadyForPickup ──> AwaitingPickupVerification ──> InTransit ──> Delivered
//	    │            │               │                                              ^
//	    │            └───────────────┼──────────────────────────────────────────────┘
//	    │                            │            (direct-handoff claim skips verification)
//	    └────────────────────────────┴──> Cancelled (from any non-terminal state)
//
// Processing is optional: stores may move a pending order straight to
// ReadyForPickup. AwaitingPickupVerification only appears when pickup-OTP
// gating is enabled.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a customer places an order.
	Pending

	// Processing indicates the store has started preparing the order.
	// This step is optional depending on store workflow.
	Processing

	// ReadyForPickup indicates the order is packed and waiting for a
	// delivery partner to claim it.
	ReadyForPickup

	// AwaitingPickupVerification indicates a partner has claimed the order
	// and must verify the handoff at the store counter with a pickup OTP.
	AwaitingPickupVerification

	// InTransit indicates the partner has picked up the order and is
	// delivering it to the customer.
	InTransit

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was abandoned before delivery. Terminal.
	// Cancellation is a status, never a row deletion: order history is
	// append-only.
	Cancelled
)

// getStatusStrings returns the wire/database representation of every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                    "unknown",
		Pending:                    "pending",
		Processing:                 "processing",
		ReadyForPickup:             "ready_for_pickup",
		AwaitingPickupVerification: "awaiting_pickup_verification",
		InTransit:                  "in_transit",
		Delivered:                  "delivered",
		Cancelled:                  "cancelled",
	}
}

// getValidStatusStrings returns only valid statuses, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:                    "pending",
		Processing:                 "processing",
		ReadyForPickup:             "ready_for_pickup",
		AwaitingPickupVerification: "awaiting_pickup_verification",
		InTransit:                  "in_transit",
		Delivered:                  "delivered",
		Cancelled:                  "cancelled",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHavePartner validates the consistency between order status and
// partner assignment.
//
// Business Rules:
//   - Pending, Processing, and ReadyForPickup orders must not have a partner
//   - AwaitingPickupVerification, InTransit, and Delivered orders must have one
//   - Cancelled orders may or may not have a partner, depending on when the
//     cancellation happened
func (s Status) ValidateCanHavePartner(partner bool) error {
	if s == Cancelled {
		return nil
	}

	if partner && (s == Pending || s == Processing || s == ReadyForPickup) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a partner", s.String()),
		)
	}

	if !partner && (s == AwaitingPickupVerification || s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no partner", s.String()),
		)
	}

	return nil
}

// edge is a single allowed transition in the lifecycle graph.
type edge struct {
	from Status
	to   Status
}

// transitionEdges maps each legal edge to the roles allowed to trigger it.
// RoleSystem covers internal entry points (the assignment coordinator and
// the pickup-OTP manager) and is permitted on every edge.
//
// Cancellation edges are handled separately in CanTransition because
// Cancelled is reachable from every non-terminal state.
func transitionEdges() map[edge][]Role {
	return map[edge][]Role{
		{Pending, Processing}:                        {RoleStore},
		{Pending, ReadyForPickup}:                    {RoleStore},
		{Processing, ReadyForPickup}:                 {RoleStore},
		{ReadyForPickup, AwaitingPickupVerification}: {},
		{ReadyForPickup, InTransit}:                  {},
		{AwaitingPickupVerification, InTransit}:      {},
		{InTransit, Delivered}:                       {RolePartner},
	}
}

// CanTransition validates that moving from s to target is a legal edge for
// the given actor role. It does not mutate anything; Order.TransitionTo
// applies the change.
//
// Rules:
//   - RoleSystem may trigger any legal lifecycle edge
//   - RoleCustomer may only cancel, and only while the order is Pending
//   - Cancellation from any non-terminal state is allowed for RoleSystem
//   - Terminal states (Delivered, Cancelled) reject every transition
func (s Status) CanTransition(target Status, actor Role) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return NewInvalidTransitionError(s, target, actor)
	}

	if target == Cancelled {
		switch actor {
		case RoleSystem:
			return nil
		case RoleCustomer:
			if s == Pending {
				return nil
			}
		}
		return NewInvalidTransitionError(s, target, actor)
	}

	roles, ok := transitionEdges()[edge{from: s, to: target}]
	if !ok {
		return NewInvalidTransitionError(s, target, actor)
	}
	if actor == RoleSystem {
		return nil
	}
	for _, role := range roles {
		if role == actor {
			return nil
		}
	}
	return NewInvalidTransitionError(s, target, actor)
}
