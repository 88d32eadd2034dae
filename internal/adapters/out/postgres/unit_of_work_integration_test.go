package postgres_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres"
	"grocery/internal/adapters/out/postgres/eventrepo"
	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/adapters/out/postgres/otprepo"
	"grocery/internal/adapters/out/postgres/partnerrepo"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/partner"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that writes spanning the order,
// partner, and outbox repositories commit and roll back as one unit.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&otprepo.PickupOtpDTO{},
		&partnerrepo.DeliveryPartnerDTO{},
		&eventrepo.OrderEventDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, pickup_otps, delivery_partners, order_events CASCADE").Error,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	unitPrice, err := kernel.NewMoney(6500)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "Milk 1L", unitPrice, 1)
	suite.Require().NoError(err)

	fee, err := kernel.NewMoney(2000)
	suite.Require().NoError(err)
	discount, err := kernel.NewMoney(0)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Green Street", []order.Item{item}, fee, discount,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndOutboxTogether() {
	ctx := context.Background()
	o := suite.newOrder()
	event, err := order.NewEvent(
		kernel.NewUUID(), o.ID(), order.Unknown, o.Status(), time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.EventRepository().Add(ctx, event))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))

	unpublished, err := uow.EventRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(unpublished, 1)
	suite.True(unpublished[0].ID().IsEqual(event.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	o := suite.newOrder()
	event, err := order.NewEvent(
		kernel.NewUUID(), o.ID(), order.Unknown, o.Status(), time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.EventRepository().Add(ctx, event))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	unpublished, err := uow.EventRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(unpublished)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMarkPublished_RemovesEventFromBacklog() {
	ctx := context.Background()
	o := suite.newOrder()
	event, err := order.NewEvent(
		kernel.NewUUID(), o.ID(), order.Unknown, o.Status(), time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.EventRepository().Add(ctx, event))
	suite.Require().NoError(uow.Commit(ctx))

	// Post-commit the repository runs against the pool, mirroring how
	// handlers mark events published after their transaction closes.
	suite.Require().NoError(uow.EventRepository().MarkPublished(ctx, event.ID()))

	unpublished, err := uow.EventRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(unpublished)

	// Marking again is a harmless no-op.
	suite.Require().NoError(uow.EventRepository().MarkPublished(ctx, event.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPartnerRepository_UpsertCreatesAndUpdates() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	profile, err := partner.NewDeliveryPartner(kernel.NewUUID(), now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PartnerRepository().Upsert(ctx, profile))
	suite.Require().NoError(uow.Commit(ctx))

	profile.SetAvailability(false, now.Add(time.Minute))
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PartnerRepository().Upsert(ctx, profile))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := uow.PartnerRepository().Get(ctx, profile.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsAvailable())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
