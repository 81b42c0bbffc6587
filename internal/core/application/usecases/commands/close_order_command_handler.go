package commands

import (
	"context"

	"yard/internal/core/domain/model/order"
)

// CloseOrderCommandHandler settles a paid order. An order with volume still booked stays open.
type CloseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCloseOrderCommandHandler(uowFactory OrderUoWFactory) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{uowFactory: uowFactory}
}

func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Close(); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
