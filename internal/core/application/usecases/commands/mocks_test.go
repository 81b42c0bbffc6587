package commands_test

import (
	"context"
	"time"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/domain/model/fleet"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/organization"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/model/workshop"
	"yard/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOverdueUnpaid(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, createdBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Add(ctx context.Context, s *schedule.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Find(ctx context.Context, spec ports.ScheduleSpec) ([]*schedule.Schedule, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.Schedule), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, h *schedule.History) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) Update(ctx context.Context, h *schedule.History) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.History, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.History), args.Error(1)
}

func (m *MockHistoryRepository) HasPending(ctx context.Context, scheduleID kernel.UUID, code operation.Code) (bool, error) {
	args := m.Called(ctx, scheduleID, code)
	return args.Bool(0), args.Error(1)
}

type MockWeightRepository struct{ mock.Mock }

func (m *MockWeightRepository) AddInitial(ctx context.Context, w schedule.InitialWeight) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWeightRepository) AddAct(ctx context.Context, w schedule.ActWeight) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

type MockTemplateRepository struct{ mock.Mock }

func (m *MockTemplateRepository) LockWorkshop(ctx context.Context, workshopID kernel.UUID) ([]workshop.Template, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workshop.Template), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Find(ctx context.Context, organizationID, userID kernel.UUID) (*organization.Employee, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Employee), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ScheduleRepository() ports.ScheduleRepository {
	args := m.Called()
	return args.Get(0).(ports.ScheduleRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockUoW) WeightRepository() ports.WeightRepository {
	args := m.Called()
	return args.Get(0).(ports.WeightRepository)
}

func (m *MockUoW) TemplateRepository() ports.TemplateRepository {
	args := m.Called()
	return args.Get(0).(ports.TemplateRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository {
	args := m.Called()
	return args.Get(0).(ports.EmployeeRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockCheckpointUoWFactory struct{ mock.Mock }

func (m *MockCheckpointUoWFactory) Create() commands.CheckpointUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckpointUoW)
}

func fixedClock(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}
