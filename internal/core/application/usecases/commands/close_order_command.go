package commands

import (
	"errors"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/guard"
)

var ErrCloseOrderCommandIsNotConstructed = errors.New(
	"CloseOrderCommand must be created via NewCloseOrderCommand constructor",
)

// CloseOrderCommand carries the SAP collaborator's settlement of an order.
type CloseOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCloseOrderCommand(orderID kernel.UUID) (CloseOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CloseOrderCommand{}, err
	}
	return CloseOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCloseOrderCommandIsNotConstructed)
}

func (c CloseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
