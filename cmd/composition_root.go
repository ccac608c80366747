package cmd

import (
	"log/slog"

	"relaypost/internal/adapters/out/codes"
	"relaypost/internal/adapters/out/postgres"
	"relaypost/internal/adapters/out/postgres/accesspointrepo"
	"relaypost/internal/adapters/out/postgres/productrepo"
	"relaypost/internal/adapters/out/postgres/stationrepo"
	redisadapter "relaypost/internal/adapters/out/redis"
	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/application/usecases/queries"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *redisadapter.Notifier
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *goredis.Client, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   redisadapter.NewNotifier(redisClient, logger),
	}
}

func (c *CompositionRoot) CreateInitiateDeliveryCommandHandler() commands.InitiateDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitiateDeliveryCommandHandler(
		f,
		stationrepo.NewGormStationRepository(c.gormDB),
		accesspointrepo.NewGormAccessPointRepository(c.gormDB),
		productrepo.NewGormProductRepository(c.gormDB),
		codes.NewGenerator(codes.DefaultCodeLength),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateClaimPackageCommandHandler() commands.ClaimPackageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimPackageCommandHandler(f, c.notifier, c.config.CourierCapacity)
}

func (c *CompositionRoot) CreateDropoffPackageCommandHandler() commands.DropoffPackageCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDropoffPackageCommandHandler(
		f,
		stationrepo.NewGormStationRepository(c.gormDB),
		accesspointrepo.NewGormAccessPointRepository(c.gormDB),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateRecipientPickupCommandHandler() commands.RecipientPickupCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecipientPickupCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetDeliveryByIDQueryHandler() queries.GetDeliveryByIDQueryHandler {
	return queries.NewGetDeliveryByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipperDeliveriesQueryHandler() queries.GetShipperDeliveriesQueryHandler {
	return queries.NewGetShipperDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierActiveDeliveriesQueryHandler() queries.GetCourierActiveDeliveriesQueryHandler {
	return queries.NewGetCourierActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
