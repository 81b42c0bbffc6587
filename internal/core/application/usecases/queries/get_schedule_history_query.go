package queries

import (
	"errors"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetScheduleHistoryQueryIsNotConstructed = errors.New(
	"GetScheduleHistoryQuery must be created via NewGetScheduleHistoryQuery constructor",
)

// GetScheduleHistoryQuery reads the checkpoint timeline of a visit, oldest first.
type GetScheduleHistoryQuery struct {
	scheduleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetScheduleHistoryQuery(scheduleID kernel.UUID) (GetScheduleHistoryQuery, error) {
	if err := scheduleID.Validate(); err != nil {
		return GetScheduleHistoryQuery{}, err
	}
	return GetScheduleHistoryQuery{scheduleID: scheduleID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetScheduleHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleHistoryQueryIsNotConstructed)
}

func (q GetScheduleHistoryQuery) ScheduleID() kernel.UUID {
	return q.scheduleID
}

// GetScheduleHistoryQueryResponse is one history row. IsPassed is nil while pending. Weights
// are set on rows that produced a weighing record.
type GetScheduleHistoryQueryResponse struct {
	ID              kernel.UUID
	Operation       string
	ResponsibleID   kernel.UUID
	ResponsibleName string
	ResponsibleRole string
	IsPassed        *bool
	StartAt         time.Time
	EndAt           *time.Time
	CancelReason    string
	TareKg          *decimal.Decimal
	BruttoKg        *decimal.Decimal
	NettoKg         *decimal.Decimal
}
