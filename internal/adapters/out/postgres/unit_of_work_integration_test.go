package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "coldchain/internal/adapters/out/postgres"
	"coldchain/internal/adapters/out/postgres/deliveryrepo"
	"coldchain/internal/adapters/out/postgres/fleetrepo"
	"coldchain/internal/adapters/out/postgres/orderrepo"
	"coldchain/internal/adapters/out/postgres/routerepo"
	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/fleet"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/core/domain/model/order"
	"coldchain/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.ItemDTO{},
		&deliveryrepo.ChecklistDTO{},
		&deliveryrepo.PhotoDTO{},
		&routerepo.RouteDTO{},
		&routerepo.StopDTO{},
		&fleetrepo.DriverDTO{},
		&fleetrepo.VehicleDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, deliveries, delivery_items, delivery_checklists, " +
			"checklist_photos, routes, route_stops, drivers, vehicles").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.RouteRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.VehicleRepository())
}

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

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_FulfillmentWorkflow drives the standalone completion flow
// through one transaction: the delivery settles, the order cascades, and the
// driver and vehicle are released.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_FulfillmentWorkflow() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	testOrder := createTestOrder(suite.T())
	testDriver := createTestDriver(suite.T())
	testVehicle := createTestVehicle(suite.T())
	testDelivery := createTestDelivery(suite.T(), testOrder.ID())

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)
	err = uow.VehicleRepository().Add(ctx, testVehicle)
	suite.Require().NoError(err)

	err = testDelivery.Assign(testDriver.ID(), testVehicle.ID())
	suite.Require().NoError(err)
	err = testDriver.TakeWork()
	suite.Require().NoError(err)
	err = testVehicle.TakeOut()
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Add(ctx, testDelivery)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Update(ctx, testDriver)
	suite.Require().NoError(err)
	err = uow.VehicleRepository().Update(ctx, testVehicle)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Settle the delivery in a second transaction.
	uow = suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	loaded, err := uow.DeliveryRepository().GetForUpdate(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	err = loaded.Start()
	suite.Require().NoError(err)
	err = loaded.CompleteWith(delivery.OutcomeDelivered, now)
	suite.Require().NoError(err)
	err = uow.DeliveryRepository().Update(ctx, loaded)
	suite.Require().NoError(err)

	loadedOrder, err := uow.OrderRepository().GetForUpdate(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = loadedOrder.ChangeStatus(order.Completed)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, loadedOrder)
	suite.Require().NoError(err)

	loadedDriver, err := uow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	loadedDriver.Release()
	err = uow.DriverRepository().Update(ctx, loadedDriver)
	suite.Require().NoError(err)

	loadedVehicle, err := uow.VehicleRepository().Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	loadedVehicle.Release()
	err = uow.VehicleRepository().Update(ctx, loadedVehicle)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify final state using a new unit of work.
	newUow := suite.factory.Create()

	finalDelivery, err := newUow.DeliveryRepository().Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Delivered, finalDelivery.Status())
	suite.Require().NotNil(finalDelivery.DeliveryTime())
	suite.WithinDuration(now, *finalDelivery.DeliveryTime(), time.Second)

	finalOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, finalOrder.Status())

	finalDriver, err := newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(fleet.DriverActive, finalDriver.Status())

	finalVehicle, err := newUow.VehicleRepository().Get(ctx, testVehicle.ID())
	suite.Require().NoError(err)
	suite.Equal(fleet.VehicleAvailable, finalVehicle.Status())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testDriver := createTestDriver(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, testDriver)
	suite.Require().NoError(err)

	// Both are visible inside the transaction.
	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = uow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
	_, err = newUow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().Error(err, "Driver should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder(suite.T())
	order2 := createTestOrder(suite.T())

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)
	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)
	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")
	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.OrderNumber(), retrieved.OrderNumber())
}

func createTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "SO-"+kernel.NewUUID().String()[:8], "Polar Foods", 420.50)
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func createTestDelivery(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func createTestDriver(t *testing.T) *fleet.Driver {
	t.Helper()
	d, err := fleet.NewDriver(kernel.NewUUID(), "Kirsi Salmi")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func createTestVehicle(t *testing.T) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.NewVehicle(kernel.NewUUID(), "RF-"+kernel.NewUUID().String()[:6])
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
