package commands

import (
	"context"

	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/services"
	"yard/internal/core/ports"
)

// TakeCheckpointCommandHandler locks the schedule, checks that the checkpoint can be taken now
// and stores the pending history row.
type TakeCheckpointCommandHandler struct {
	uowFactory CheckpointUoWFactory
	machine    services.CheckpointMachine
	clock      ports.Clock
}

func NewTakeCheckpointCommandHandler(
	uowFactory CheckpointUoWFactory,
	machine services.CheckpointMachine,
	clock ports.Clock,
) TakeCheckpointCommandHandler {
	return TakeCheckpointCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
	}
}

func (h *TakeCheckpointCommandHandler) Handle(ctx context.Context, cmd TakeCheckpointCommand) (*schedule.History, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Fail fast on the role before touching the database.
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

	scheduleRepo := uow.ScheduleRepository()
	historyRepo := uow.HistoryRepository()

	s, err := scheduleRepo.GetForUpdate(ctx, cmd.ScheduleID())
	if err != nil {
		return nil, err
	}

	pending, err := historyRepo.HasPending(ctx, s.ID(), cmd.Operation())
	if err != nil {
		return nil, err
	}

	row, err := h.machine.Take(cmd.Actor(), cmd.Operation(), s, pending, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = historyRepo.Add(ctx, row); err != nil {
		return nil, err
	}

	if err = scheduleRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return row, nil
}
