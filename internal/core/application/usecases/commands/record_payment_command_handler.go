package commands

import (
	"context"

	"yard/internal/core/domain/model/order"
)

// RecordPaymentCommandHandler marks an order paid. Replaying the same transaction id succeeds
// without changes.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{uowFactory: uowFactory}
}

func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*order.Order, error) {
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

	if err = o.RecordPayment(cmd.TransactionID()); err != nil {
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
