package commands

import (
	"errors"
	"strings"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand carries the payment collaborator's confirmation for an order.
type RecordPaymentCommand struct {
	orderID       kernel.UUID
	transactionID string

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(orderID kernel.UUID, transactionID string) (RecordPaymentCommand, error) {
	transactionID = strings.TrimSpace(transactionID)

	var txErr error
	if transactionID == "" {
		txErr = errs.NewValueIsRequiredError("transaction_id")
	}

	if err := errors.Join(orderID.Validate(), txErr); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		orderID:       orderID,
		transactionID: transactionID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordPaymentCommand) TransactionID() string {
	return c.transactionID
}
