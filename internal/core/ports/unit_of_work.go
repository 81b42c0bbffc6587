package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Client code must explicitly manage
// the transaction lifecycle; repositories obtained after Begin share its transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ScheduleRepository() ScheduleRepository
	HistoryRepository() HistoryRepository
	WeightRepository() WeightRepository
	TemplateRepository() TemplateRepository
	VehicleRepository() VehicleRepository
	EmployeeRepository() EmployeeRepository
}
