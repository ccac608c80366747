package deliveryrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"relaypost/internal/adapters/out/postgres/deliveryrepo"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository using PostgreSQL containers to verify persistence of the
// aggregate, its legs, and the conditional claim update.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.LegDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_legs CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_ValidDelivery_Success() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()

	suite.tracker.On("TrackAggregate", testDelivery.ID(), testDelivery).Once()

	err := suite.repository.Add(ctx, testDelivery)
	suite.Require().NoError(err)

	suite.assertDeliveryCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_RoundTrip_RestoresAggregate() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()
	suite.trackAnything()

	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	restored, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(testDelivery.ID()))
	suite.True(restored.ShipperID().IsEqual(testDelivery.ShipperID()))
	suite.Equal(delivery.AwaitingPickup, restored.Status())
	suite.True(restored.TotalCost().IsEqual(testDelivery.TotalCost()))
	suite.True(restored.ReservedAmount().IsEqual(testDelivery.TotalCost()))
	suite.True(restored.PaidAmount().IsZero())
	suite.Equal(testDelivery.EstimatedDistance(), restored.EstimatedDistance())
	suite.Require().Len(restored.PlannedPath(), len(testDelivery.PlannedPath()))
	for i, ap := range testDelivery.PlannedPath() {
		suite.True(restored.PlannedPath()[i].IsEqual(ap))
	}
	suite.Empty(restored.Legs())
	suite.WithinDuration(testDelivery.CreatedAt(), restored.CreatedAt(), time.Second)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NotFound_ReturnsTypedError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateClaim_AwaitingPickup_Succeeds() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()
	suite.trackAnything()
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	courierID := kernel.NewUUID()
	suite.Require().NoError(testDelivery.Claim(courierID, time.Now().UTC()))

	err := suite.repository.UpdateClaim(ctx, testDelivery)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.InTransit, restored.Status())
	suite.Require().NotNil(restored.CourierID())
	suite.True(restored.CourierID().IsEqual(courierID))
	suite.Require().Len(restored.Legs(), 1)
	suite.True(restored.Legs()[0].IsOpen())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdateClaim_LostRace_ReturnsStatusConflict() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()
	suite.trackAnything()
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	// Two couriers load the same stored row
	first, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Claim(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateClaim(ctx, first))

	suite.Require().NoError(second.Claim(kernel.NewUUID(), time.Now().UTC()))
	err = suite.repository.UpdateClaim(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, delivery.ErrStatusConflict)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsDropoff() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()
	suite.trackAnything()
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	courierID := kernel.NewUUID()
	destination := testDelivery.DestinationAP()
	suite.Require().NoError(testDelivery.Claim(courierID, time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateClaim(ctx, testDelivery))

	earnings, err := kernel.PointsFromString("3.30")
	suite.Require().NoError(err)
	atDestination, err := testDelivery.CompleteLeg(
		courierID, destination, time.Now().UTC(), 2, earnings, 1.0)
	suite.Require().NoError(err)
	suite.True(atDestination)

	suite.Require().NoError(suite.repository.Update(ctx, testDelivery))

	restored, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.ReadyForRecipient, restored.Status())
	suite.Nil(restored.CourierID())
	suite.True(restored.PaidAmount().IsEqual(earnings))
	suite.Equal(2, restored.ActualDistance())
	suite.InDelta(1.0, restored.Progress(), 1e-9)
	suite.Require().Len(restored.Legs(), 1)
	suite.False(restored.Legs()[0].IsOpen())
	suite.True(restored.Legs()[0].Earnings().IsEqual(earnings))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesLegCompletion() {
	ctx := context.Background()
	testDelivery := suite.createTestDelivery()
	suite.trackAnything()
	suite.Require().NoError(suite.repository.Add(ctx, testDelivery))

	courierID := kernel.NewUUID()
	destination := testDelivery.DestinationAP()
	suite.Require().NoError(testDelivery.Claim(courierID, time.Now().UTC()))
	suite.Require().NoError(suite.repository.UpdateClaim(ctx, testDelivery))

	earnings, err := kernel.PointsFromString("3.30")
	suite.Require().NoError(err)

	// Two transactions race to complete the same open leg. The row lock
	// taken by GetForUpdate serializes them: the loser waits, then reads
	// the closed leg and backs off instead of paying the leg again.
	completions := make(chan bool, 2)
	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txErr := suite.db.Transaction(func(tx *gorm.DB) error {
				repo := deliveryrepo.NewGormDeliveryRepository(tx, suite.tracker)

				aggregate, getErr := repo.GetForUpdate(ctx, testDelivery.ID())
				if getErr != nil {
					return getErr
				}
				if aggregate.OpenLeg() == nil {
					completions <- false
					return nil
				}

				if _, legErr := aggregate.CompleteLeg(
					courierID, destination, time.Now().UTC(), 2, earnings, 1.0); legErr != nil {
					return legErr
				}
				if updErr := repo.Update(ctx, aggregate); updErr != nil {
					return updErr
				}

				completions <- true
				return nil
			})
			suite.NoError(txErr)
		}()
	}
	wg.Wait()
	close(completions)

	completed := 0
	for won := range completions {
		if won {
			completed++
		}
	}
	suite.Equal(1, completed)

	restored, err := suite.repository.Get(ctx, testDelivery.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.ReadyForRecipient, restored.Status())
	suite.True(restored.PaidAmount().IsEqual(earnings))
	suite.Require().Len(restored.Legs(), 1)
	suite.True(restored.Legs()[0].Earnings().IsEqual(earnings))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestCountActiveByCourier() {
	ctx := context.Background()
	suite.trackAnything()
	courierID := kernel.NewUUID()

	// Two carried by this courier, one still unclaimed
	for range 2 {
		d := suite.createTestDelivery()
		suite.Require().NoError(d.Claim(courierID, time.Now().UTC()))
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestDelivery()))

	count, err := suite.repository.CountActiveByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountActiveByCourier(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Equal(0, count)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) createTestDelivery() *delivery.Delivery {
	path := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	totalCost, err := kernel.PointsFromString("3.30")
	suite.Require().NoError(err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		nil,
		kernel.NewUUID(),
		path,
		2,
		totalCost,
		"SECRET42",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) assertDeliveryCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&deliveryrepo.DeliveryDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) trackAnything() {
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
