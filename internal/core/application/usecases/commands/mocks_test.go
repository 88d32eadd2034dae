package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/partner"
	"grocery/internal/core/domain/model/pickupotp"
	"grocery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) ClaimUnassigned(
	ctx context.Context, orderID, partnerID kernel.UUID, next order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, orderID, partnerID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPickupOtpRepository struct{ mock.Mock }

func (m *MockPickupOtpRepository) Add(ctx context.Context, otp *pickupotp.PickupOtp) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockPickupOtpRepository) Update(ctx context.Context, otp *pickupotp.PickupOtp) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockPickupOtpRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*pickupotp.PickupOtp, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickupotp.PickupOtp), args.Error(1)
}

func (m *MockPickupOtpRepository) IncrementAttempts(ctx context.Context, otpID kernel.UUID) (int, error) {
	args := m.Called(ctx, otpID)
	return args.Int(0), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Upsert(ctx context.Context, p *partner.DeliveryPartner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.DeliveryPartner), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, event *order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) GetUnpublished(_ context.Context, _ int) ([]*order.Event, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockEventRepository) MarkPublished(ctx context.Context, eventID kernel.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event *order.Event, snapshot *order.Order) {
	m.Called(ctx, event, snapshot)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOtpUoW struct{ mock.Mock }

func (m *MockOtpUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOtpUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOtpUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOtpUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOtpUoW) PickupOtpRepository() ports.PickupOtpRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupOtpRepository)
}

func (m *MockOtpUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockOtpUoWFactory struct{ mock.Mock }

func (m *MockOtpUoWFactory) Create() commands.OtpUoW {
	args := m.Called()
	return args.Get(0).(commands.OtpUoW)
}

type MockPartnerUoW struct{ mock.Mock }

func (m *MockPartnerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartnerUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockPartnerUoWFactory struct{ mock.Mock }

func (m *MockPartnerUoWFactory) Create() commands.PartnerUoW {
	args := m.Called()
	return args.Get(0).(commands.PartnerUoW)
}

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
	bread, err := order.NewItem(kernel.NewUUID(), "Sourdough Bread", money(t, 4000), 1)
	require.NoError(t, err)
	return []order.Item{milk, bread}
}

// pendingOrder builds a freshly placed order.
func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Green Street", testItems(t), money(t, 2000), money(t, 1000),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

// orderInStatus walks a pending order through legal edges to the target status.
func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	now := time.Now().UTC()
	path := map[order.Status][]order.Status{
		order.Processing:                 {order.Processing},
		order.ReadyForPickup:             {order.Processing, order.ReadyForPickup},
		order.AwaitingPickupVerification: {order.Processing, order.ReadyForPickup},
	}[status]
	for _, step := range path {
		require.NoError(t, o.TransitionTo(step, order.RoleStore, now))
	}
	if status == order.AwaitingPickupVerification {
		require.NoError(t, o.Claim(kernel.NewUUID(), order.AwaitingPickupVerification, now))
	}
	return o
}
