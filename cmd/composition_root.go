package cmd

import (
	"log/slog"

	"grocery/internal/adapters/out/notify"
	"grocery/internal/adapters/out/postgres"
	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. One broker instance
// is shared by every handler and the relay job, so all notification topics
// live in a single fan-out.
type CompositionRoot struct {
	gormDB          *gorm.DB
	uowFactory      postgres.GormUnitOfWorkFactory
	broker          *notify.Broker
	logger          *slog.Logger
	postClaimStatus order.Status
}

// NewCompositionRoot creates the application wiring for the given config.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	postClaimStatus := order.InTransit
	if config.PickupOtpRequired {
		postClaimStatus = order.AwaitingPickupVerification
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		broker:          notify.NewBroker(logger),
		logger:          logger,
		postClaimStatus: postClaimStatus,
	}
}

// Broker exposes the notification fan-out so delivery channels (websockets,
// push gateways) can subscribe to order topics.
func (c *CompositionRoot) Broker() *notify.Broker {
	return c.broker
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() (*commands.PlaceOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.broker)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() (*commands.TransitionOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.broker)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() (*commands.ClaimOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.broker, c.postClaimStatus)
}

func (c *CompositionRoot) CreateGeneratePickupOtpCommandHandler() (*commands.GeneratePickupOtpCommandHandler, error) {
	var f commands.OtpUoWFactory = FuncOtpUoWFactory(func() commands.OtpUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGeneratePickupOtpCommandHandler(f)
}

func (c *CompositionRoot) CreateVerifyPickupOtpCommandHandler() (*commands.VerifyPickupOtpCommandHandler, error) {
	var f commands.OtpUoWFactory = FuncOtpUoWFactory(func() commands.OtpUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyPickupOtpCommandHandler(f, c.broker)
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() (*commands.SetPartnerAvailabilityCommandHandler, error) {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetPartnerAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStoreOrdersQueryHandler() queries.GetStoreOrdersQueryHandler {
	return queries.NewGetStoreOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the outbox relay over pool-backed repositories.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	uow := c.uowFactory.Create()
	relayJob := jobs.NewOutboxRelayJob(
		uow.EventRepository(),
		uow.OrderRepository(),
		c.broker,
		c.logger,
	)
	return jobs.NewJobManager(relayJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOtpUoWFactory func() commands.OtpUoW

func (f FuncOtpUoWFactory) Create() commands.OtpUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}
