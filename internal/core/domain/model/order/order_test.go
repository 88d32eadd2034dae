package order_test

import (
	"testing"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	milk, err := order.NewItem(kernel.NewUUID(), "Milk 1L", money(t, 6500), 2)
	require.NoError(t, err)
	bread, err := order.NewItem(kernel.NewUUID(), "Bread", money(t, 4000), 1)
	require.NoError(t, err)
	return []order.Item{milk, bread}
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"12 Green Street, Pune",
		testItems(t),
		money(t, 2000),
		money(t, 1000),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("should create valid snapshot", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Milk 1L", money(t, 6500), 2)

		require.NoError(t, err)
		assert.Equal(t, "Milk 1L", item.ProductName())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, int64(13000), item.Subtotal().Amount())
	})

	t.Run("should reject empty product name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "", money(t, 100), 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Milk 1L", money(t, 100), 0)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should start pending with derived totals", func(t *testing.T) {
		o := testOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Partner())
		assert.False(t, o.PickupVerified())
		assert.Equal(t, "pending", o.PaymentStatus())

		// subtotal = 2*6500 + 4000
		assert.Equal(t, int64(17000), o.Subtotal().Amount())
		// total = subtotal + fee - discount
		assert.Equal(t, int64(18000), o.Total().Amount())
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"12 Green Street, Pune", nil,
			money(t, 2000), money(t, 0), time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject discount larger than the bill", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"12 Green Street, Pune", testItems(t),
			money(t, 0), money(t, 99999999), time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("should reject empty delivery address", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", testItems(t),
			money(t, 2000), money(t, 0), time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject drifted totals", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
			testItems(t), order.Pending,
			money(t, 17000), money(t, 2000), money(t, 1000),
			money(t, 99), // should be 18000
			"12 Green Street, Pune", "pending", false,
			time.Now(), time.Now(),
		)

		require.ErrorIs(t, err, order.ErrTotalMismatch)
	})

	t.Run("should reject partner on pre-claim status", func(t *testing.T) {
		partnerID := kernel.NewUUID()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &partnerID,
			testItems(t), order.ReadyForPickup,
			money(t, 17000), money(t, 2000), money(t, 1000), money(t, 18000),
			"12 Green Street, Pune", "pending", false,
			time.Now(), time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("should restore a claimed order", func(t *testing.T) {
		partnerID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &partnerID,
			testItems(t), order.InTransit,
			money(t, 17000), money(t, 2000), money(t, 1000), money(t, 18000),
			"12 Green Street, Pune", "pending", true,
			time.Now(), time.Now(),
		)

		require.NoError(t, err)
		require.NotNil(t, o.Partner())
		assert.True(t, o.Partner().IsEqual(partnerID))
		assert.True(t, o.PickupVerified())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("store readies a pending order", func(t *testing.T) {
		o := testOrder(t)
		now := time.Now()

		err := o.TransitionTo(order.ReadyForPickup, order.RoleStore, now)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("same-status transition is an idempotent no-op", func(t *testing.T) {
		o := testOrder(t)
		before := o.UpdatedAt()

		err := o.TransitionTo(order.Pending, order.RoleStore, time.Now().Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("rejection leaves the order untouched", func(t *testing.T) {
		o := testOrder(t)
		before := o.UpdatedAt()

		err := o.TransitionTo(order.Delivered, order.RoleCustomer, time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("customer cancels a pending order", func(t *testing.T) {
		o := testOrder(t)

		err := o.TransitionTo(order.Cancelled, order.RoleCustomer, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_Claim(t *testing.T) {
	readyOrder := func(t *testing.T) *order.Order {
		o := testOrder(t)
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, order.RoleStore, time.Now()))
		return o
	}

	t.Run("claim binds partner and moves to verification", func(t *testing.T) {
		o := readyOrder(t)
		partnerID := kernel.NewUUID()

		err := o.Claim(partnerID, order.AwaitingPickupVerification, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.AwaitingPickupVerification, o.Status())
		require.NotNil(t, o.Partner())
		assert.True(t, o.Partner().IsEqual(partnerID))
	})

	t.Run("direct-handoff claim moves straight to in_transit", func(t *testing.T) {
		o := readyOrder(t)

		err := o.Claim(kernel.NewUUID(), order.InTransit, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("second claim loses and keeps the first binding", func(t *testing.T) {
		o := readyOrder(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, o.Claim(first, order.AwaitingPickupVerification, time.Now()))
		err := o.Claim(second, order.AwaitingPickupVerification, time.Now())

		require.ErrorIs(t, err, order.ErrOrderUnavailable)
		assert.True(t, o.Partner().IsEqual(first))
	})

	t.Run("claim on a pending order is unavailable", func(t *testing.T) {
		o := testOrder(t)

		err := o.Claim(kernel.NewUUID(), order.AwaitingPickupVerification, time.Now())

		require.ErrorIs(t, err, order.ErrOrderUnavailable)
	})

	t.Run("claim rejects invalid post-claim status", func(t *testing.T) {
		o := readyOrder(t)

		err := o.Claim(kernel.NewUUID(), order.Delivered, time.Now())

		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrOrderUnavailable)
	})
}

func TestOrder_VerifyPickup(t *testing.T) {
	t.Run("verification moves the order to in_transit", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, order.RoleStore, time.Now()))
		require.NoError(t, o.Claim(kernel.NewUUID(), order.AwaitingPickupVerification, time.Now()))

		err := o.VerifyPickup(time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		assert.True(t, o.PickupVerified())
	})

	t.Run("verification requires awaiting_pickup_verification", func(t *testing.T) {
		o := testOrder(t)

		err := o.VerifyPickup(time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.False(t, o.PickupVerified())
	})
}
