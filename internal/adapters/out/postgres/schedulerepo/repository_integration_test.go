package schedulerepo_test

import (
	"context"
	"testing"
	"time"

	"yard/internal/adapters/out/postgres/orderrepo"
	"yard/internal/adapters/out/postgres/pgtest"
	"yard/internal/adapters/out/postgres/schedulerepo"
	"yard/internal/adapters/out/postgres/workshoprepo"
	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/model/workshop"
	"yard/internal/core/ports"
	"yard/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type ScheduleRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg        *pgtest.Database
	db        *gorm.DB
	schedules *schedulerepo.GormScheduleRepository
	histories *schedulerepo.GormHistoryRepository
	weights   *schedulerepo.GormWeightRepository

	order    *order.Order
	template workshop.Template
	day      time.Time
}

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *ScheduleRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate())

	suite.schedules = schedulerepo.NewGormScheduleRepository(suite.db, noopTracker{})
	suite.histories = schedulerepo.NewGormHistoryRepository(suite.db)
	suite.weights = schedulerepo.NewGormWeightRepository(suite.db)

	suite.day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	workshopID := kernel.NewUUID()

	owner, err := kernel.NewOrganizationOwner(kernel.NewUUID())
	suite.Require().NoError(err)
	suite.order, err = order.NewOrder(kernel.NewUUID(), owner, workshopID, kernel.Kilograms(20000), "", suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, noopTracker{}).Add(ctx, suite.order))

	suite.template, err = workshop.NewTemplate(kernel.NewUUID(), workshopID,
		suite.day, suite.day.AddDate(0, 1, 0), 8*60, 12*60, 30, 10, 2, true)
	suite.Require().NoError(err)
	dto := workshoprepo.FromDomain(suite.template)
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) newSchedule(start time.Time) *schedule.Schedule {
	userID := kernel.NewUUID()
	driver, err := schedule.NewDriver(userID, "Serik", "880101300123")
	suite.Require().NoError(err)
	trailerID := kernel.NewUUID()

	s, err := schedule.NewSchedule(schedule.Booking{
		ID:            kernel.NewUUID(),
		OrderID:       suite.order.ID(),
		Owner:         suite.order.Owner(),
		Driver:        driver,
		VehicleID:     kernel.NewUUID(),
		TrailerID:     &trailerID,
		TemplateID:    suite.template.ID(),
		WorkshopID:    suite.template.WorkshopID(),
		StartAt:       start,
		EndAt:         start.Add(30 * time.Minute),
		LoadingVolume: kernel.Kilograms(8000),
		BookedBy:      actor.Snapshot{ID: userID, Name: "Serik", Role: actor.RoleClient},
		CreatedAt:     suite.day,
	}, operation.Entry)
	suite.Require().NoError(err)
	return s
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	s := suite.newSchedule(suite.day.Add(8 * time.Hour))

	suite.Require().NoError(suite.schedules.Add(ctx, s))

	got, err := suite.schedules.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(s.ID(), got.ID())
	suite.True(got.Owner().IsEqual(s.Owner()))
	suite.Equal(s.Driver().Name, got.Driver().Name)
	suite.Equal(s.Driver().IdentityNumber, got.Driver().IdentityNumber)
	suite.Require().NotNil(got.TrailerID())
	suite.Equal(*s.TrailerID(), *got.TrailerID())
	suite.True(got.StartAt().Equal(s.StartAt()))
	suite.True(got.LoadingVolume().IsEqual(kernel.Kilograms(8000)))
	suite.Nil(got.VehicleTare())
	suite.Equal(operation.Entry, got.CurrentOperation())
	suite.True(got.IsActive())
	suite.Nil(got.CanceledBy())
	suite.Equal(actor.RoleClient, got.BookedBy().Role)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellation() {
	ctx := context.Background()
	s := suite.newSchedule(suite.day.Add(8 * time.Hour))
	suite.Require().NoError(suite.schedules.Add(ctx, s))

	guard := actor.Snapshot{ID: kernel.NewUUID(), Name: "Guard", Role: actor.RoleSecurity}
	suite.Require().NoError(s.Cancel(suite.day.Add(8*time.Hour+5*time.Minute), "no documents", guard))
	suite.Require().NoError(suite.schedules.Update(ctx, s))

	got, err := suite.schedules.GetForUpdate(ctx, s.ID())
	suite.Require().NoError(err)
	suite.False(got.IsActive())
	suite.True(got.IsCanceled())
	suite.Equal("no documents", got.CancelReason())
	suite.Require().NotNil(got.CanceledBy())
	suite.Equal(guard.ID, got.CanceledBy().ID)
	suite.Equal(actor.RoleSecurity, got.CanceledBy().Role)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.schedules.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestFind_FiltersBySpec() {
	ctx := context.Background()
	early := suite.newSchedule(suite.day.Add(8 * time.Hour))
	late := suite.newSchedule(suite.day.Add(9 * time.Hour))
	nextDay := suite.newSchedule(suite.day.Add(32 * time.Hour))
	canceled := suite.newSchedule(suite.day.Add(10 * time.Hour))
	suite.Require().NoError(canceled.Cancel(suite.day, "changed plans", canceled.BookedBy()))

	for _, s := range []*schedule.Schedule{late, nextDay, early, canceled} {
		suite.Require().NoError(suite.schedules.Add(ctx, s))
	}

	got, err := suite.schedules.Find(ctx, ports.Schedules().
		OfWorkshop(suite.template.WorkshopID()).
		StartingBetween(suite.day, suite.day.AddDate(0, 0, 1)).
		Active())
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(early.ID(), got[0].ID())
	suite.Equal(late.ID(), got[1].ID())

	all, err := suite.schedules.Find(ctx, ports.Schedules().OfOrder(suite.order.ID()))
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestHistory_PendingLifecycle() {
	ctx := context.Background()
	s := suite.newSchedule(suite.day.Add(8 * time.Hour))
	suite.Require().NoError(suite.schedules.Add(ctx, s))

	guard := actor.Snapshot{ID: kernel.NewUUID(), Name: "Guard", Role: actor.RoleSecurity}
	h, err := schedule.NewHistory(kernel.NewUUID(), s.ID(), operation.Entry, guard, suite.day.Add(8*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.histories.Add(ctx, h))

	pending, err := suite.histories.HasPending(ctx, s.ID(), operation.Entry)
	suite.Require().NoError(err)
	suite.True(pending)

	dup, err := schedule.NewHistory(kernel.NewUUID(), s.ID(), operation.Entry, guard, suite.day.Add(8*time.Hour))
	suite.Require().NoError(err)
	suite.ErrorIs(suite.histories.Add(ctx, dup), errs.ErrConflict)

	got, err := suite.histories.GetForUpdate(ctx, h.ID())
	suite.Require().NoError(err)
	suite.True(got.IsPending())
	suite.Require().NoError(got.Pass(suite.day.Add(8*time.Hour + 2*time.Minute)))
	suite.Require().NoError(suite.histories.Update(ctx, got))

	pending, err = suite.histories.HasPending(ctx, s.ID(), operation.Entry)
	suite.Require().NoError(err)
	suite.False(pending)

	passed, err := suite.histories.GetForUpdate(ctx, h.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(passed.IsPassed())
	suite.True(*passed.IsPassed())
	suite.NotNil(passed.EndAt())
}

func (suite *ScheduleRepositoryIntegrationTestSuite) TestWeights_Insert() {
	ctx := context.Background()
	s := suite.newSchedule(suite.day.Add(8 * time.Hour))
	suite.Require().NoError(suite.schedules.Add(ctx, s))

	weigher := actor.Snapshot{ID: kernel.NewUUID(), Name: "Weigher", Role: actor.RoleWeigher}
	h, err := schedule.NewHistory(kernel.NewUUID(), s.ID(), operation.FinalWeighing, weigher, suite.day)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.histories.Add(ctx, h))

	suite.Require().NoError(suite.weights.AddInitial(ctx,
		schedule.NewInitialWeight(s.ID(), h.ID(), kernel.Kilograms(14000), suite.day)))
	suite.Require().NoError(suite.weights.AddAct(ctx,
		schedule.NewActWeight(s.ID(), h.ID(), kernel.Kilograms(14000), kernel.Kilograms(21500), kernel.Kilograms(7500), suite.day)))

	var netto string
	suite.Require().NoError(suite.db.Raw("SELECT netto_kg::text FROM act_weights WHERE schedule_id = ?", s.ID().Bytes()).Scan(&netto).Error)
	suite.Equal("7500.000", netto)
}

func TestScheduleRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ScheduleRepositoryIntegrationTestSuite))
}
