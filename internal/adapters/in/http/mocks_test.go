package http_test

import (
	"context"

	"yard/internal/core/application/usecases/commands"
	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/mock"
)

type MockSlotsQueryHandler struct{ mock.Mock }

func (m *MockSlotsQueryHandler) Handle(
	ctx context.Context,
	query queries.GetAvailableSlotsQuery,
) ([]queries.GetAvailableSlotsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAvailableSlotsQueryResponse), args.Error(1)
}

type MockScheduleQueryHandler struct{ mock.Mock }

func (m *MockScheduleQueryHandler) Handle(
	ctx context.Context,
	query queries.GetScheduleQuery,
) (*queries.GetScheduleQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetScheduleQueryResponse), args.Error(1)
}

type MockScheduleHistoryQueryHandler struct{ mock.Mock }

func (m *MockScheduleHistoryQueryHandler) Handle(
	ctx context.Context,
	query queries.GetScheduleHistoryQuery,
) ([]queries.GetScheduleHistoryQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetScheduleHistoryQueryResponse), args.Error(1)
}

type MockOrderLedgerQueryHandler struct{ mock.Mock }

func (m *MockOrderLedgerQueryHandler) Handle(
	ctx context.Context,
	query queries.GetOrderLedgerQuery,
) (*queries.GetOrderLedgerQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetOrderLedgerQueryResponse), args.Error(1)
}

type MockBookScheduleHandler struct{ mock.Mock }

func (m *MockBookScheduleHandler) HandleIndividual(
	ctx context.Context,
	cmd commands.BookIndividualScheduleCommand,
) (*schedule.Schedule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

func (m *MockBookScheduleHandler) HandleLegal(
	ctx context.Context,
	cmd commands.BookLegalScheduleCommand,
) (*schedule.Schedule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

type MockTakeCheckpointHandler struct{ mock.Mock }

func (m *MockTakeCheckpointHandler) Handle(ctx context.Context, cmd commands.TakeCheckpointCommand) (*schedule.History, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.History), args.Error(1)
}

type MockDecideCheckpointHandler struct{ mock.Mock }

func (m *MockDecideCheckpointHandler) Handle(ctx context.Context, cmd commands.DecideCheckpointCommand) (*schedule.Schedule, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockRecordPaymentHandler struct{ mock.Mock }

func (m *MockRecordPaymentHandler) Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCloseOrderHandler struct{ mock.Mock }

func (m *MockCloseOrderHandler) Handle(ctx context.Context, cmd commands.CloseOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
