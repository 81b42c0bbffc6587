package ports

import (
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/schedule"
)

// ScheduleSpec is a composable filter over schedules. Zero value matches everything.
//
//	spec := ports.Schedules().OfWorkshop(id).StartingBetween(dayStart, dayEnd).Active()
type ScheduleSpec struct {
	orderID    *kernel.UUID
	workshopID *kernel.UUID
	from       *time.Time
	to         *time.Time
	activeOnly bool
}

func Schedules() ScheduleSpec {
	return ScheduleSpec{}
}

func (s ScheduleSpec) OfOrder(id kernel.UUID) ScheduleSpec {
	s.orderID = &id
	return s
}

// OfWorkshop keeps schedules of the workshop under any of its templates.
func (s ScheduleSpec) OfWorkshop(id kernel.UUID) ScheduleSpec {
	s.workshopID = &id
	return s
}

// StartingBetween keeps schedules with from <= start_at < to.
func (s ScheduleSpec) StartingBetween(from, to time.Time) ScheduleSpec {
	s.from, s.to = &from, &to
	return s
}

// Active keeps schedules that still hold a machine and a booked volume.
func (s ScheduleSpec) Active() ScheduleSpec {
	s.activeOnly = true
	return s
}

func (s ScheduleSpec) OrderID() *kernel.UUID {
	return s.orderID
}

func (s ScheduleSpec) WorkshopID() *kernel.UUID {
	return s.workshopID
}

func (s ScheduleSpec) StartRange() (from, to *time.Time) {
	return s.from, s.to
}

func (s ScheduleSpec) ActiveOnly() bool {
	return s.activeOnly
}

// Matches evaluates the spec in memory.
func (s ScheduleSpec) Matches(sc *schedule.Schedule) bool {
	if sc == nil {
		return false
	}
	if s.orderID != nil && !sc.OrderID().IsEqual(*s.orderID) {
		return false
	}
	if s.workshopID != nil && !sc.WorkshopID().IsEqual(*s.workshopID) {
		return false
	}
	if s.from != nil && sc.StartAt().Before(*s.from) {
		return false
	}
	if s.to != nil && !sc.StartAt().Before(*s.to) {
		return false
	}
	if s.activeOnly && !sc.IsActive() {
		return false
	}
	return true
}
