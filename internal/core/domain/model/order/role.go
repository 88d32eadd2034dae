package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Role identifies the actor requesting a lifecycle transition. The core never
// authenticates anyone: an externally supplied (user id, role) pair is
// trusted per request, and the role restricts which edges are available.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the shopper who placed the order.
	RoleCustomer

	// RoleStore is the store manager fulfilling the order.
	RoleStore

	// RolePartner is the delivery partner carrying the order.
	RolePartner

	// RoleSystem is an internal entry point (assignment coordinator,
	// pickup-OTP manager) acting on behalf of the platform.
	RoleSystem
)

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RoleStore:    "store",
		RolePartner:  "partner",
		RoleSystem:   "system",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
