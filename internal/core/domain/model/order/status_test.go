package order_test

import (
	"fmt"
	"testing"

	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Processing))
		assert.Equal(t, 3, int(order.ReadyForPickup))
		assert.Equal(t, 4, int(order.AwaitingPickupVerification))
		assert.Equal(t, 5, int(order.InTransit))
		assert.Equal(t, 6, int(order.Delivered))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Processing,
			order.ReadyForPickup,
			order.AwaitingPickupVerification,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(99).Validate()
		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire representation", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "ready_for_pickup", order.ReadyForPickup.String())
		assert.Equal(t, "awaiting_pickup_verification", order.AwaitingPickupVerification.String())
		assert.Equal(t, "in_transit", order.InTransit.String())
		assert.Equal(t, "delivered", order.Delivered.String())
		assert.Equal(t, "cancelled", order.Cancelled.String())
		assert.Equal(t, "unknown", order.Unknown.String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip every valid status", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending,
			order.Processing,
			order.ReadyForPickup,
			order.AwaitingPickupVerification,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range statuses {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown input", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		require.Error(t, err)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
}

func TestStatus_CanTransition(t *testing.T) {
	t.Run("store moves orders toward pickup", func(t *testing.T) {
		require.NoError(t, order.Pending.CanTransition(order.Processing, order.RoleStore))
		require.NoError(t, order.Pending.CanTransition(order.ReadyForPickup, order.RoleStore))
		require.NoError(t, order.Processing.CanTransition(order.ReadyForPickup, order.RoleStore))
	})

	t.Run("store cannot advance past pickup", func(t *testing.T) {
		err := order.ReadyForPickup.CanTransition(order.InTransit, order.RoleStore)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("customer may cancel only from pending", func(t *testing.T) {
		require.NoError(t, order.Pending.CanTransition(order.Cancelled, order.RoleCustomer))

		for _, from := range []order.Status{order.Processing, order.ReadyForPickup, order.InTransit} {
			err := from.CanTransition(order.Cancelled, order.RoleCustomer)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "from %s", from)
		}
	})

	t.Run("customer cannot trigger any other edge", func(t *testing.T) {
		err := order.Pending.CanTransition(order.ReadyForPickup, order.RoleCustomer)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("partner completes delivery", func(t *testing.T) {
		require.NoError(t, order.InTransit.CanTransition(order.Delivered, order.RolePartner))
	})

	t.Run("partner cannot claim through the transition entry point", func(t *testing.T) {
		err := order.ReadyForPickup.CanTransition(order.InTransit, order.RolePartner)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("system may cancel from any non-terminal state", func(t *testing.T) {
		nonTerminal := []order.Status{
			order.Pending,
			order.Processing,
			order.ReadyForPickup,
			order.AwaitingPickupVerification,
			order.InTransit,
		}

		for _, from := range nonTerminal {
			require.NoError(t, from.CanTransition(order.Cancelled, order.RoleSystem), "from %s", from)
		}
	})

	t.Run("system may trigger every lifecycle edge", func(t *testing.T) {
		require.NoError(t, order.ReadyForPickup.CanTransition(order.AwaitingPickupVerification, order.RoleSystem))
		require.NoError(t, order.ReadyForPickup.CanTransition(order.InTransit, order.RoleSystem))
		require.NoError(t, order.AwaitingPickupVerification.CanTransition(order.InTransit, order.RoleSystem))
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range []order.Status{order.Pending, order.InTransit, order.Cancelled} {
				if from == to {
					continue
				}
				err := from.CanTransition(to, order.RoleSystem)
				require.ErrorIs(t, err, order.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		err := order.Pending.CanTransition(order.Delivered, order.RoleSystem)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("invalid target or actor is rejected", func(t *testing.T) {
		require.Error(t, order.Pending.CanTransition(order.Unknown, order.RoleSystem))
		require.Error(t, order.Pending.CanTransition(order.Processing, order.RoleUnknown))
	})
}

func TestStatus_ValidateCanHavePartner(t *testing.T) {
	t.Run("pre-claim statuses must be unassigned", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Processing, order.ReadyForPickup} {
			require.NoError(t, s.ValidateCanHavePartner(false), "%s", s)
			require.Error(t, s.ValidateCanHavePartner(true), "%s", s)
		}
	})

	t.Run("post-claim statuses require a partner", func(t *testing.T) {
		for _, s := range []order.Status{order.AwaitingPickupVerification, order.InTransit, order.Delivered} {
			require.NoError(t, s.ValidateCanHavePartner(true), "%s", s)
			require.Error(t, s.ValidateCanHavePartner(false), "%s", s)
		}
	})

	t.Run("cancelled orders may have either", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHavePartner(true))
		require.NoError(t, order.Cancelled.ValidateCanHavePartner(false))
	})
}

func TestRole(t *testing.T) {
	t.Run("should round trip valid roles", func(t *testing.T) {
		for _, role := range []order.Role{order.RoleCustomer, order.RoleStore, order.RolePartner, order.RoleSystem} {
			parsed, err := order.RoleFromString(role.String())
			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := order.RoleFromString("admin")
		require.Error(t, err)

		require.Error(t, order.RoleUnknown.Validate())
	})
}
