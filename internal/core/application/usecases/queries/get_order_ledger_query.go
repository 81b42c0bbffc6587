package queries

import (
	"errors"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderLedgerQueryIsNotConstructed = errors.New(
	"GetOrderLedgerQuery must be created via NewGetOrderLedgerQuery constructor",
)

// GetOrderLedgerQuery reads the volume ledger of an order together with the schedules that
// make it up.
type GetOrderLedgerQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderLedgerQuery(orderID kernel.UUID) (GetOrderLedgerQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderLedgerQuery{}, err
	}
	return GetOrderLedgerQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderLedgerQueryIsNotConstructed)
}

func (q GetOrderLedgerQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderLedgerQueryResponse struct {
	OrderID        kernel.UUID
	Owner          kernel.Owner
	Status         string
	IsPaid         bool
	QuanKg         decimal.Decimal
	QuanBookedKg   decimal.Decimal
	QuanReleasedKg decimal.Decimal
	QuanLeftKg     decimal.Decimal
	Entries        []OrderLedgerEntry
}

// OrderLedgerEntry is one schedule of the order. State is active, executed or canceled.
type OrderLedgerEntry struct {
	ScheduleID      kernel.UUID
	StartAt         time.Time
	State           string
	LoadingVolumeKg decimal.Decimal
	NettoKg         *decimal.Decimal
}
