// Package postgres provides the GORM-based Unit of Work of the yard. A unit of work owns one
// READ COMMITTED transaction; every repository it hands out after Begin runs inside it.
//
// Handlers lock rows explicitly (SELECT ... FOR UPDATE) in a fixed order: order, templates,
// schedule, history. Two bookings of the same workshop therefore serialize on its template rows.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	// ...
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"database/sql"

	"yard/internal/adapters/out/postgres/fleetrepo"
	"yard/internal/adapters/out/postgres/orderrepo"
	"yard/internal/adapters/out/postgres/organizationrepo"
	"yard/internal/adapters/out/postgres/schedulerepo"
	"yard/internal/adapters/out/postgres/workshoprepo"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work; instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. A second Begin on an open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit finalizes the transaction. Without an open transaction it returns
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Handlers defer it unconditionally, so after a Commit it
// returns gorm.ErrInvalidTransaction and the error is ignored.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn is the transaction when one is open and the pool otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ScheduleRepository() ports.ScheduleRepository {
	return schedulerepo.NewGormScheduleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return schedulerepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) WeightRepository() ports.WeightRepository {
	return schedulerepo.NewGormWeightRepository(uow.conn())
}

func (uow *GormUnitOfWork) TemplateRepository() ports.TemplateRepository {
	return workshoprepo.NewGormTemplateRepository(uow.conn())
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return fleetrepo.NewGormVehicleRepository(uow.conn())
}

func (uow *GormUnitOfWork) EmployeeRepository() ports.EmployeeRepository {
	return organizationrepo.NewGormEmployeeRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many aggregates were written since Begin.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
