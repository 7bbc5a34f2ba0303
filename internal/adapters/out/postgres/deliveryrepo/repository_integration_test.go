package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"coldchain/internal/adapters/out/postgres/deliveryrepo"
	"coldchain/internal/core/domain/model/delivery"
	"coldchain/internal/core/domain/model/kernel"
	"coldchain/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DeliveryRepositoryIntegrationTestSuite exercises the delivery repository
// against a real PostgreSQL database, including the child tables for items,
// checklists, and photos.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *noopTracker
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.tracker = &noopTracker{}

	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.ItemDTO{},
		&deliveryrepo.ChecklistDTO{},
		&deliveryrepo.PhotoDTO{},
	)
	suite.Require().NoError(err)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE deliveries, delivery_items, delivery_checklists, checklist_photos").Error
	suite.Require().NoError(err)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) repo() *deliveryrepo.GormDeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

// TestAddAndGet_BareDelivery verifies a freshly scheduled delivery round-trips
// without items or checklist.
func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet_BareDelivery() {
	ctx := context.Background()
	repo := suite.repo()

	d := suite.newPendingDelivery()
	err := repo.Add(ctx, d)
	suite.Require().NoError(err)

	loaded, err := repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(d.ID(), loaded.ID())
	suite.Equal(d.OrderID(), loaded.OrderID())
	suite.Equal(delivery.Pending, loaded.Status())
	suite.Nil(loaded.DriverID())
	suite.Nil(loaded.VehicleID())
	suite.IsType(delivery.Standalone{}, loaded.Binding())
	suite.Nil(loaded.DeliveryTime())
	suite.Empty(loaded.Items())
	suite.Nil(loaded.Checklist())
}

// TestUpdate_SettledDelivery verifies the full aggregate round-trips after a
// completed checklist submission: items, checklist, photos, assignment, stop
// binding, and terminal status.
func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_SettledDelivery() {
	ctx := context.Background()
	repo := suite.repo()
	now := time.Now().UTC().Truncate(time.Microsecond)

	d := suite.newPendingDelivery()
	driverID := kernel.NewUUID()
	vehicleID := kernel.NewUUID()
	stopID := kernel.NewUUID()

	err := d.Assign(driverID, vehicleID)
	suite.Require().NoError(err)
	err = d.BindToStop(stopID)
	suite.Require().NoError(err)
	err = repo.Add(ctx, d)
	suite.Require().NoError(err)

	items := []*delivery.Item{
		suite.newItem(10, 10, 0, delivery.ReasonNone, ""),
		suite.newItem(6, 4, 2, delivery.Melted, ""),
	}
	checklist, err := delivery.NewChecklist(
		kernel.NewUUID(), d.ID(),
		"https://photos.example.com/sig.png", "V. Tanner", now,
		true, "", "left at loading dock",
		[]delivery.Photo{
			{URL: "https://photos.example.com/p1.jpg", PhotoType: "DAMAGE", Caption: "crushed corner"},
			{URL: "https://photos.example.com/p2.jpg", PhotoType: "DELIVERY", Caption: ""},
		})
	suite.Require().NoError(err)

	err = d.Start()
	suite.Require().NoError(err)
	err = d.RecordItems(items)
	suite.Require().NoError(err)
	err = d.AttachChecklist(checklist)
	suite.Require().NoError(err)
	err = d.CompleteWith(delivery.OutcomePartiallyDelivered, now)
	suite.Require().NoError(err)

	err = repo.Update(ctx, d)
	suite.Require().NoError(err)

	loaded, err := repo.Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.PartiallyDelivered, loaded.Status())
	suite.Require().NotNil(loaded.DriverID())
	suite.True(loaded.DriverID().IsEqual(driverID))
	suite.Require().NotNil(loaded.VehicleID())
	suite.True(loaded.VehicleID().IsEqual(vehicleID))
	suite.Require().NotNil(loaded.DeliveryTime())
	suite.WithinDuration(now, *loaded.DeliveryTime(), time.Second)

	bound, ok := loaded.Binding().(delivery.RouteBound)
	suite.Require().True(ok, "binding should survive the round trip")
	suite.True(bound.StopID().IsEqual(stopID))

	suite.Require().Len(loaded.Items(), 2)
	totalRejected := 0
	for _, item := range loaded.Items() {
		totalRejected += item.RejectedQuantity()
	}
	suite.Equal(2, totalRejected)

	suite.Require().NotNil(loaded.Checklist())
	suite.Equal("V. Tanner", loaded.Checklist().SignedBy())
	suite.True(loaded.Checklist().ItemsVerified())
	suite.False(loaded.Checklist().HasIssue())
	suite.Len(loaded.Checklist().Photos(), 2)
}

// TestUpdate_ChecklistUpsert verifies that saving the same settled delivery
// twice does not duplicate item, checklist, or photo rows.
func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_ChecklistUpsert() {
	ctx := context.Background()
	repo := suite.repo()
	now := time.Now().UTC().Truncate(time.Microsecond)

	d := suite.newPendingDelivery()
	err := repo.Add(ctx, d)
	suite.Require().NoError(err)

	checklist, err := delivery.NewChecklist(
		kernel.NewUUID(), d.ID(),
		"https://photos.example.com/sig.png", "V. Tanner", now,
		true, "", "",
		[]delivery.Photo{{URL: "https://photos.example.com/p1.jpg", PhotoType: "DELIVERY"}})
	suite.Require().NoError(err)

	err = d.RecordItems([]*delivery.Item{suite.newItem(5, 5, 0, delivery.ReasonNone, "")})
	suite.Require().NoError(err)
	err = d.AttachChecklist(checklist)
	suite.Require().NoError(err)
	err = d.CompleteWith(delivery.OutcomeDelivered, now)
	suite.Require().NoError(err)

	err = repo.Update(ctx, d)
	suite.Require().NoError(err)
	err = repo.Update(ctx, d)
	suite.Require().NoError(err)

	var itemCount, checklistCount, photoCount int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Require().NoError(suite.db.Model(&deliveryrepo.ChecklistDTO{}).Count(&checklistCount).Error)
	suite.Require().NoError(suite.db.Model(&deliveryrepo.PhotoDTO{}).Count(&photoCount).Error)
	suite.Equal(int64(1), itemCount)
	suite.Equal(int64(1), checklistCount)
	suite.Equal(int64(1), photoCount)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	repo := suite.repo()

	_, err := repo.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_MissingRow() {
	ctx := context.Background()
	repo := suite.repo()

	d := suite.newPendingDelivery()
	err := repo.Update(ctx, d)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) newPendingDelivery() *delivery.Delivery {
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC().Truncate(24*time.Hour))
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) newItem(
	ordered, delivered, rejected int,
	reason delivery.RejectionReason,
	notes string,
) *delivery.Item {
	item, err := delivery.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Frozen berries 1kg",
		ordered, delivered, rejected, reason, notes, "box")
	suite.Require().NoError(err)
	return item
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
