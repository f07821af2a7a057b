package cmd

import (
	"goby/internal/adapters/out/postgres"
	"goby/internal/adapters/out/postgres/deliveryrepo"
	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/application/usecases/queries"
	"goby/internal/core/ports"
	"goby/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	recorder   *jobs.BufferedLocationRecorder
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		recorder:   jobs.NewBufferedLocationRecorder(),
	}
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTakeOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateArriveAtRestaurantCommandHandler() commands.ArriveAtRestaurantCommandHandler {
	var f commands.OrderDeliveryUoWFactory = FuncOrderDeliveryUoWFactory(func() commands.OrderDeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArriveAtRestaurantCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.OrderDeliveryUoWFactory = FuncOrderDeliveryUoWFactory(func() commands.OrderDeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateBuyCreditsCommandHandler() commands.BuyCreditsCommandHandler {
	var f commands.CreditsUoWFactory = FuncCreditsUoWFactory(func() commands.CreditsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBuyCreditsCommandHandler(f)
}

func (c *CompositionRoot) CreateAdjustCreditsCommandHandler() commands.AdjustCreditsCommandHandler {
	var f commands.CreditsUoWFactory = FuncCreditsUoWFactory(func() commands.CreditsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdjustCreditsCommandHandler(f)
}

func (c *CompositionRoot) CreateEnsureBalanceCommandHandler() commands.EnsureBalanceCommandHandler {
	var f commands.CreditsUoWFactory = FuncCreditsUoWFactory(func() commands.CreditsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEnsureBalanceCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryLocationQueryHandler() queries.GetDeliveryLocationQueryHandler {
	return queries.NewGetDeliveryLocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCreditsBalanceQueryHandler() queries.GetCreditsBalanceQueryHandler {
	return queries.NewGetCreditsBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) LocationRecorder() *jobs.BufferedLocationRecorder {
	return c.recorder
}

func (c *CompositionRoot) CreateLocationHistoryWriter() ports.LocationHistoryWriter {
	return deliveryrepo.NewGormLocationHistoryWriter(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderDeliveryUoWFactory func() commands.OrderDeliveryUoW

func (f FuncOrderDeliveryUoWFactory) Create() commands.OrderDeliveryUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCreditsUoWFactory func() commands.CreditsUoW

func (f FuncCreditsUoWFactory) Create() commands.CreditsUoW {
	return f()
}
