package queries

import (
	"errors"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetScheduleQueryIsNotConstructed = errors.New(
	"GetScheduleQuery must be created via NewGetScheduleQuery constructor",
)

// GetScheduleQuery reads one visit.
type GetScheduleQuery struct {
	scheduleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetScheduleQuery(scheduleID kernel.UUID) (GetScheduleQuery, error) {
	if err := scheduleID.Validate(); err != nil {
		return GetScheduleQuery{}, err
	}
	return GetScheduleQuery{scheduleID: scheduleID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleQueryIsNotConstructed)
}

func (q GetScheduleQuery) ScheduleID() kernel.UUID {
	return q.scheduleID
}

// GetScheduleQueryResponse is the flat view of a schedule. Weights are nil until measured.
type GetScheduleQueryResponse struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Owner      kernel.Owner
	WorkshopID kernel.UUID
	TemplateID kernel.UUID
	VehicleID  kernel.UUID
	TrailerID  *kernel.UUID

	DriverUserID kernel.UUID
	DriverName   string

	StartAt time.Time
	EndAt   time.Time

	LoadingVolumeKg decimal.Decimal
	VehicleTareKg   *decimal.Decimal
	VehicleBruttoKg *decimal.Decimal
	VehicleNettoKg  *decimal.Decimal

	CurrentOperation string
	IsActive         bool
	IsUsed           bool
	IsCanceled       bool
	IsExecuted       bool
	ExecutedAt       *time.Time
	CanceledAt       *time.Time
	CancelReason     string
	CreatedAt        time.Time
}
