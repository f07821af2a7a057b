package postgres_test

import (
	"context"
	"sync"
	"testing"

	postgresadapter "goby/internal/adapters/out/postgres"
	"goby/internal/adapters/out/postgres/creditsrepo"
	"goby/internal/adapters/out/postgres/deliveryrepo"
	"goby/internal/adapters/out/postgres/orderrepo"
	"goby/internal/core/application/usecases/commands"
	"goby/internal/core/domain/model/credits"
	"goby/internal/core/domain/model/delivery"
	"goby/internal/core/domain/model/kernel"
	"goby/internal/core/domain/model/order"
	"goby/internal/core/ports"
	"goby/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.LocationHistoryDTO{},
		&creditsrepo.CreditsDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, deliveries, location_history, credits").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.DeliveryRepository(), "First instance should provide delivery repository")
	suite.NotNil(uow1.CreditsRepository(), "First instance should provide credits repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder("120.00")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
	suite.True(testOrder.TotalPrice().Equal(retrievedOrder.TotalPrice()))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_TakeOrderWorkflow runs the complete take workflow across all
// three repositories within one transaction: debit, status flip, delivery row.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TakeOrderWorkflow() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	testOrder := createTestOrder("120.00")
	balance := createTestBalance(courierID, "150.00")

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.CreditsRepository().Add(ctx, balance))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	lockedOrder, err := uow.OrderRepository().GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)

	lockedBalance, err := uow.CreditsRepository().GetByOwnerForUpdate(ctx, courierID)
	suite.Require().NoError(err)

	suite.Require().NoError(lockedBalance.Debit(lockedOrder.TotalPrice()))
	suite.Require().NoError(lockedOrder.Take())

	newDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(), delivery.GenerateTrackingCode(),
		courierID, lockedOrder.ClientID(), lockedOrder.ID(), nil)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Update(ctx, lockedOrder))
	suite.Require().NoError(uow.CreditsRepository().Update(ctx, lockedBalance))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, newDelivery))
	suite.Require().NoError(uow.Commit(ctx))

	// Verify final state using a new unit of work
	verifyUow := suite.factory.Create()

	persistedOrder, err := verifyUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Taken, persistedOrder.Status())

	persistedBalance, err := verifyUow.CreditsRepository().GetByOwner(ctx, courierID)
	suite.Require().NoError(err)
	suite.True(persistedBalance.Amount().Equal(decimal.RequireFromString("30.00")))

	persistedDelivery, err := verifyUow.DeliveryRepository().Get(ctx, newDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(newDelivery.TrackingCode(), persistedDelivery.TrackingCode())
	suite.True(persistedDelivery.BelongsTo(courierID))
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	courierID := kernel.NewUUID()
	testOrder := createTestOrder("80.00")
	balance := createTestBalance(courierID, "100.00")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.CreditsRepository().Add(ctx, balance))

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.CreditsRepository().GetByOwner(ctx, courierID)
	suite.Require().Error(err, "Balance should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder("10.00")
	order2 := createTestOrder("20.00")

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ConcurrentTake verifies that two couriers racing for the
// same order produce exactly one winner and exactly one delivery row.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentTake() {
	ctx := context.Background()

	testOrder := createTestOrder("150.00")
	courier1 := kernel.NewUUID()
	courier2 := kernel.NewUUID()

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.CreditsRepository().Add(ctx, createTestBalance(courier1, "200.00")))
	suite.Require().NoError(setupUow.CreditsRepository().Add(ctx, createTestBalance(courier2, "200.00")))

	handler := commands.NewTakeOrderCommandHandler(uowFactoryAdapter{factory: suite.factory})
	point, err := kernel.NewGeoPoint(55.75, 37.62)
	suite.Require().NoError(err)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, courierID := range []kernel.UUID{courier1, courier2} {
		wg.Add(1)
		go func(slot int, id kernel.UUID) {
			defer wg.Done()
			cmd, cmdErr := commands.NewTakeOrderCommand(testOrder.ID(), id, point)
			if cmdErr != nil {
				results[slot] = cmdErr
				return
			}
			_, results[slot] = handler.Handle(ctx, cmd)
		}(i, courierID)
	}
	wg.Wait()

	winners := 0
	for _, resultErr := range results {
		if resultErr == nil {
			winners++
		} else {
			suite.ErrorIs(resultErr, errs.ErrStateIsInvalid, "Loser should observe the taken status")
		}
	}
	suite.Equal(1, winners, "Exactly one take should succeed")

	var deliveryCount int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryDTO{}).Count(&deliveryCount).Error)
	suite.Equal(int64(1), deliveryCount, "Exactly one delivery row should exist")

	persistedOrder, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Taken, persistedOrder.Status())

	// One balance debited, one untouched
	balance1, err := suite.factory.Create().CreditsRepository().GetByOwner(ctx, courier1)
	suite.Require().NoError(err)
	balance2, err := suite.factory.Create().CreditsRepository().GetByOwner(ctx, courier2)
	suite.Require().NoError(err)

	total := balance1.Amount().Add(balance2.Amount())
	suite.True(total.Equal(decimal.RequireFromString("250.00")),
		"Exactly one balance should be debited by the order total")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder("42.00")

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// uowFactoryAdapter bridges the ports factory to the command handler contract.
type uowFactoryAdapter struct {
	factory ports.UnitOfWorkFactory
}

func (a uowFactoryAdapter) Create() commands.UoW {
	return a.factory.Create()
}

// createTestOrder creates a valid single-line order for testing purposes.
func createTestOrder(price string) *order.Order {
	item, _ := order.NewItem(kernel.NewUUID(), decimal.RequireFromString(price), 1)
	testOrder, _ := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Item{item})
	return testOrder
}

// createTestBalance creates a valid balance for testing purposes.
func createTestBalance(ownerID kernel.UUID, amount string) *credits.Balance {
	balance, _ := credits.NewBalance(kernel.NewUUID(), ownerID, decimal.RequireFromString(amount))
	return balance
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
