package commands

import (
	"context"

	"yard/internal/core/ports"
)

// FailOverdueOrdersCommandHandler fails one batch of overdue unpaid orders in a single
// transaction. The repository only hands out orders in Created status without active
// schedules, so booked visits are never affected.
type FailOverdueOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewFailOverdueOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) FailOverdueOrdersCommandHandler {
	return FailOverdueOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the number of orders marked failed.
func (h FailOverdueOrdersCommandHandler) Handle(ctx context.Context, cmd FailOverdueOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	overdue, err := repo.GetOverdueUnpaid(ctx, h.clock.Now().Add(-cmd.TTL()), cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	for _, o := range overdue {
		if err = o.Fail(); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(overdue), nil
}
