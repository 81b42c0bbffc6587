package schedule

import (
	"time"

	"yard/internal/core/domain/model/kernel"
)

// InitialWeight is the tare measured at initial weighing or tare re-weighing.
type InitialWeight struct {
	ID         kernel.UUID
	ScheduleID kernel.UUID
	HistoryID  kernel.UUID
	Tare       kernel.Weight
	CreatedAt  time.Time
}

func NewInitialWeight(scheduleID, historyID kernel.UUID, tare kernel.Weight, now time.Time) InitialWeight {
	return InitialWeight{
		ID:         kernel.NewUUID(),
		ScheduleID: scheduleID,
		HistoryID:  historyID,
		Tare:       tare,
		CreatedAt:  now,
	}
}

// ActWeight is the weighing act issued at final weighing.
type ActWeight struct {
	ID         kernel.UUID
	ScheduleID kernel.UUID
	HistoryID  kernel.UUID
	Tare       kernel.Weight
	Brutto     kernel.Weight
	Netto      kernel.Weight
	CreatedAt  time.Time
}

func NewActWeight(scheduleID, historyID kernel.UUID, tare, brutto, netto kernel.Weight, now time.Time) ActWeight {
	return ActWeight{
		ID:         kernel.NewUUID(),
		ScheduleID: scheduleID,
		HistoryID:  historyID,
		Tare:       tare,
		Brutto:     brutto,
		Netto:      netto,
		CreatedAt:  now,
	}
}
