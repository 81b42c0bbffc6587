package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"yard/internal/adapters/in/http"
	"yard/internal/adapters/out/postgres"
	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/services"
	"yard/internal/core/ports"
	"yard/internal/jobs"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	sqlxDB     *sqlx.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	settings   Settings
	graph      operation.Graph
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(settings Settings, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		sqlxDB:     sqlx.NewDb(sqlDB, "postgres"),
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		settings:   settings,
		graph:      operation.Default(),
		clock:      ports.SystemClock(settings.Location),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	return commands.NewCloseOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFailOverdueOrdersCommandHandler() commands.FailOverdueOrdersCommandHandler {
	return commands.NewFailOverdueOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateBookScheduleCommandHandler() commands.BookScheduleCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookScheduleCommandHandler(
		f,
		services.NewBookingPolicy(c.settings.MinimalLoad),
		services.NewSlotGenerator(c.settings.Location),
		c.graph,
		c.clock,
	)
}

func (c *CompositionRoot) checkpointUoWFactory() commands.CheckpointUoWFactory {
	return FuncCheckpointUoWFactory(func() commands.CheckpointUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateTakeCheckpointCommandHandler() commands.TakeCheckpointCommandHandler {
	return commands.NewTakeCheckpointCommandHandler(
		c.checkpointUoWFactory(), services.NewCheckpointMachine(c.graph), c.clock)
}

func (c *CompositionRoot) CreateDecideCheckpointCommandHandler() commands.DecideCheckpointCommandHandler {
	return commands.NewDecideCheckpointCommandHandler(
		c.checkpointUoWFactory(), services.NewCheckpointMachine(c.graph), c.clock)
}

func (c *CompositionRoot) CreateGetAvailableSlotsQueryHandler() queries.GetAvailableSlotsQueryHandler {
	return queries.NewGetAvailableSlotsQueryHandler(c.gormDB, services.NewSlotGenerator(c.settings.Location), c.clock)
}

func (c *CompositionRoot) CreateGetScheduleQueryHandler() queries.GetScheduleQueryHandler {
	return queries.NewGetScheduleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetScheduleHistoryQueryHandler() queries.GetScheduleHistoryQueryHandler {
	return queries.NewGetScheduleHistoryQueryHandler(c.sqlxDB)
}

func (c *CompositionRoot) CreateGetOrderLedgerQueryHandler() queries.GetOrderLedgerQueryHandler {
	return queries.NewGetOrderLedgerQueryHandler(c.sqlxDB)
}

// NewHTTPServer wires every use case into the REST surface.
func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*http.Server, error) {
	book := c.CreateBookScheduleCommandHandler()
	take := c.CreateTakeCheckpointCommandHandler()
	decide := c.CreateDecideCheckpointCommandHandler()
	create := c.CreateCreateOrderCommandHandler()
	payment := c.CreateRecordPaymentCommandHandler()
	closer := c.CreateCloseOrderCommandHandler()

	return http.NewServer(ctx, http.Handlers{
		Slots:            c.CreateGetAvailableSlotsQueryHandler(),
		Schedule:         c.CreateGetScheduleQueryHandler(),
		ScheduleHistory:  c.CreateGetScheduleHistoryQueryHandler(),
		OrderLedger:      c.CreateGetOrderLedgerQueryHandler(),
		BookSchedule:     &book,
		TakeCheckpoint:   &take,
		DecideCheckpoint: &decide,
		CreateOrder:      &create,
		RecordPayment:    &payment,
		CloseOrder:       &closer,
	}, c.graph, c.settings.Location, c.logger)
}

func (c *CompositionRoot) NewOverdueOrderJob() *jobs.OverdueOrderJob {
	return jobs.NewOverdueOrderJob(
		c.CreateFailOverdueOrdersCommandHandler(),
		c.settings.PaymentTTL,
		c.settings.OverdueSweepSpec,
		c.logger,
	)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.NewOverdueOrderJob())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncCheckpointUoWFactory func() commands.CheckpointUoW

func (f FuncCheckpointUoWFactory) Create() commands.CheckpointUoW {
	return f()
}
