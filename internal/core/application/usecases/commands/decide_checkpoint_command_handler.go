package commands

import (
	"context"

	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/services"
	"yard/internal/core/ports"
)

// DecideCheckpointCommandHandler closes a pending checkpoint and applies its consequences in
// one transaction: weights, the move along the graph, cancellation or execution, and the
// order ledger when booked or released volume changes.
//
// Locks are taken history, then schedule, then order.
type DecideCheckpointCommandHandler struct {
	uowFactory CheckpointUoWFactory
	machine    services.CheckpointMachine
	ledger     services.OrderLedger
	clock      ports.Clock
}

func NewDecideCheckpointCommandHandler(
	uowFactory CheckpointUoWFactory,
	machine services.CheckpointMachine,
	clock ports.Clock,
) DecideCheckpointCommandHandler {
	return DecideCheckpointCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		ledger:     services.NewOrderLedger(),
		clock:      clock,
	}
}

func (h *DecideCheckpointCommandHandler) Handle(ctx context.Context, cmd DecideCheckpointCommand) (*schedule.Schedule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.machine.Authorize(cmd.Actor(), cmd.Operation()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	historyRepo := uow.HistoryRepository()
	scheduleRepo := uow.ScheduleRepository()
	weightRepo := uow.WeightRepository()
	orderRepo := uow.OrderRepository()

	row, err := historyRepo.GetForUpdate(ctx, cmd.HistoryID())
	if err != nil {
		return nil, err
	}

	s, err := scheduleRepo.GetForUpdate(ctx, row.ScheduleID())
	if err != nil {
		return nil, err
	}

	out, err := h.machine.Decide(cmd.Actor(), cmd.Operation(), s, row, cmd.Decision(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = historyRepo.Update(ctx, row); err != nil {
		return nil, err
	}

	if out.InitialWeight != nil {
		if err = weightRepo.AddInitial(ctx, *out.InitialWeight); err != nil {
			return nil, err
		}
	}
	if out.ActWeight != nil {
		if err = weightRepo.AddAct(ctx, *out.ActWeight); err != nil {
			return nil, err
		}
	}

	if err = scheduleRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if out.AffectsLedger() {
		var o *order.Order
		if o, err = orderRepo.GetForUpdate(ctx, s.OrderID()); err != nil {
			return nil, err
		}
		if err = recomputeLedger(ctx, h.ledger, orderRepo, scheduleRepo, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
