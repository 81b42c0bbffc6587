package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"yard/internal/adapters/out/postgres/orderrepo"
	"yard/internal/adapters/out/postgres/pgtest"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"
	"yard/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	owner, err := kernel.NewOrganizationOwner(kernel.NewUUID())
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), owner, kernel.NewUUID(), kernel.Kilograms(12500), "4500012345", createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder(time.Now().UTC().Truncate(time.Microsecond))

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.True(got.Owner().IsEqual(o.Owner()))
	suite.True(got.Quan().IsEqual(o.Quan()))
	suite.True(got.QuanLeft().IsEqual(kernel.Kilograms(12500)))
	suite.Equal("4500012345", got.Zakaz())
	suite.Equal(order.Created, got.Status())
	suite.True(got.CreatedAt().Equal(o.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Duplicate_ReturnsConflict() {
	ctx := context.Background()
	o := suite.newOrder(time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	err := suite.repository.Add(ctx, o)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsPaymentAndLedger() {
	ctx := context.Background()
	o := suite.newOrder(time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.RecordPayment("kaspi-77"))
	suite.Require().NoError(o.Reconcile(kernel.Kilograms(8000), kernel.Kilograms(0)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, got.Status())
	suite.Equal("kaspi-77", got.TransactionID())
	suite.True(got.QuanBooked().IsEqual(kernel.Kilograms(8000)))

	// Back to zero must be written too.
	suite.Require().NoError(o.Reconcile(kernel.Kilograms(0), kernel.Kilograms(0)))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	got, err = suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.QuanBooked().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(time.Now()))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOverdueUnpaid() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdue := suite.newOrder(now.Add(-48 * time.Hour))
	fresh := suite.newOrder(now.Add(-time.Hour))
	paid := suite.newOrder(now.Add(-72 * time.Hour))
	suite.Require().NoError(paid.RecordPayment("kaspi-1"))
	for _, o := range []*order.Order{overdue, fresh, paid} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.GetOverdueUnpaid(ctx, now.Add(-24*time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(overdue.ID(), got[0].ID())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
