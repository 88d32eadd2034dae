package queries_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orderRepo *orderrepo.GormOrderRepository

	getOrderHandler       queries.GetOrderQueryHandler
	getUnassignedHandler  queries.GetUnassignedOrdersQueryHandler
	getStoreOrdersHandler queries.GetStoreOrdersQueryHandler
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.orderRepo = orderrepo.NewGormOrderRepository(db)
	suite.getOrderHandler = queries.NewGetOrderQueryHandler(db)
	suite.getUnassignedHandler = queries.NewGetUnassignedOrdersQueryHandler(db)
	suite.getStoreOrdersHandler = queries.NewGetStoreOrdersQueryHandler(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) newOrder(storeID kernel.UUID, createdAt time.Time) *order.Order {
	unitPrice, err := kernel.NewMoney(6500)
	suite.Require().NoError(err)
	milk, err := order.NewItem(kernel.NewUUID(), "Milk 1L", unitPrice, 2)
	suite.Require().NoError(err)

	breadPrice, err := kernel.NewMoney(4000)
	suite.Require().NoError(err)
	bread, err := order.NewItem(kernel.NewUUID(), "Sourdough Bread", breadPrice, 1)
	suite.Require().NoError(err)

	fee, err := kernel.NewMoney(2000)
	suite.Require().NoError(err)
	discount, err := kernel.NewMoney(1000)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), storeID,
		"12 Green Street", []order.Item{milk, bread}, fee, discount,
		createdAt,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *QueryHandlersTestSuite) makeReady(o *order.Order, at time.Time) {
	suite.Require().NoError(o.TransitionTo(order.Processing, order.RoleStore, at))
	suite.Require().NoError(o.TransitionTo(order.ReadyForPickup, order.RoleStore, at))
}

func (suite *QueryHandlersTestSuite) TestGetOrder_ReturnsFullSnapshot() {
	ctx := context.Background()
	storeID := kernel.NewUUID()
	o := suite.newOrder(storeID, time.Now().UTC())
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	snapshot, err := suite.getOrderHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(snapshot.ID.IsEqual(o.ID()))
	suite.True(snapshot.StoreID.IsEqual(storeID))
	suite.Equal(order.Pending, snapshot.Status)
	suite.Nil(snapshot.PartnerID)
	suite.Equal(int64(17000), snapshot.Subtotal.Amount())
	suite.Equal(int64(18000), snapshot.Total.Amount())
	suite.Equal("pending", snapshot.PaymentStatus)
	suite.Len(snapshot.Items, 2)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_UnknownID_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.getOrderHandler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetUnassignedOrders_ReturnsOnlyClaimableOrders() {
	ctx := context.Background()
	now := time.Now().UTC()

	pending := suite.newOrder(kernel.NewUUID(), now)
	suite.Require().NoError(suite.orderRepo.Add(ctx, pending))

	ready := suite.newOrder(kernel.NewUUID(), now)
	suite.makeReady(ready, now)
	suite.Require().NoError(suite.orderRepo.Add(ctx, ready))

	claimed := suite.newOrder(kernel.NewUUID(), now)
	suite.makeReady(claimed, now)
	suite.Require().NoError(claimed.Claim(kernel.NewUUID(), order.InTransit, now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, claimed))

	result, err := suite.getUnassignedHandler.Handle(ctx, queries.NewGetUnassignedOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(ready.ID()))
	suite.Equal(2, result[0].ItemCount)
	suite.Equal(int64(18000), result[0].Total.Amount())
}

func (suite *QueryHandlersTestSuite) TestGetUnassignedOrders_OldestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	newer := suite.newOrder(kernel.NewUUID(), base.Add(30*time.Minute))
	suite.makeReady(newer, base.Add(30*time.Minute))
	suite.Require().NoError(suite.orderRepo.Add(ctx, newer))

	older := suite.newOrder(kernel.NewUUID(), base)
	suite.makeReady(older, base)
	suite.Require().NoError(suite.orderRepo.Add(ctx, older))

	result, err := suite.getUnassignedHandler.Handle(ctx, queries.NewGetUnassignedOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(older.ID()))
	suite.True(result[1].ID.IsEqual(newer.ID()))
}

func (suite *QueryHandlersTestSuite) TestGetStoreOrders_ExcludesTerminalAndOtherStores() {
	ctx := context.Background()
	now := time.Now().UTC()
	storeID := kernel.NewUUID()

	inFlight := suite.newOrder(storeID, now)
	suite.Require().NoError(suite.orderRepo.Add(ctx, inFlight))

	delivered := suite.newOrder(storeID, now)
	suite.makeReady(delivered, now)
	suite.Require().NoError(delivered.Claim(kernel.NewUUID(), order.InTransit, now))
	suite.Require().NoError(delivered.TransitionTo(order.Delivered, order.RolePartner, now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, delivered))

	otherStore := suite.newOrder(kernel.NewUUID(), now)
	suite.Require().NoError(suite.orderRepo.Add(ctx, otherStore))

	query, err := queries.NewGetStoreOrdersQuery(storeID)
	suite.Require().NoError(err)

	result, err := suite.getStoreOrdersHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(inFlight.ID()))
	suite.Equal(order.Pending, result[0].Status)
}

func (suite *QueryHandlersTestSuite) TestGetStoreOrders_NewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	storeID := kernel.NewUUID()

	older := suite.newOrder(storeID, base)
	suite.Require().NoError(suite.orderRepo.Add(ctx, older))

	newer := suite.newOrder(storeID, base.Add(30*time.Minute))
	suite.Require().NoError(suite.orderRepo.Add(ctx, newer))

	query, err := queries.NewGetStoreOrdersQuery(storeID)
	suite.Require().NoError(err)

	result, err := suite.getStoreOrdersHandler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
