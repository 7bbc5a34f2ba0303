package cmd

import (
	"log/slog"

	httpin "coldchain/internal/adapters/in/http"
	"coldchain/internal/adapters/out/photostore"
	"coldchain/internal/adapters/out/postgres"
	"coldchain/internal/core/application/usecases/commands"
	"coldchain/internal/core/application/usecases/queries"
	"coldchain/internal/core/ports"
	"coldchain/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateArriveAtStopCommandHandler() commands.ArriveAtStopCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArriveAtStopCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateCloseFinishedRoutesCommandHandler() commands.CloseFinishedRoutesCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseFinishedRoutesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteProgressQueryHandler() queries.GetRouteProgressQueryHandler {
	return queries.NewGetRouteProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePhotoStore() (ports.PhotoStorage, error) {
	return photostore.NewLocalPhotoStore(c.config.MediaDir, c.config.MediaBaseURL)
}

func (c *CompositionRoot) CreateDriverAuth() ports.DriverAuth {
	return httpin.NewHeaderDriverAuth()
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	photoStore, err := c.CreatePhotoStore()
	if err != nil {
		return nil, err
	}

	return httpin.NewServer(
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateStartDeliveryCommandHandler(),
		c.CreateArriveAtStopCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateGetActiveDeliveriesQueryHandler(),
		c.CreateGetRouteProgressQueryHandler(),
		photoStore,
		c.CreateDriverAuth(),
	), nil
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCloseFinishedRoutesCommandHandler(), logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}
