package services

import (
	"fmt"
	"time"

	"yard/internal/core/domain/model/workshop"
	"yard/internal/pkg/errs"
)

// SlotGenerator generates slots in the facility time zone.
type SlotGenerator struct {
	loc *time.Location
}

func NewSlotGenerator(loc *time.Location) SlotGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return SlotGenerator{loc: loc}
}

func (g SlotGenerator) Location() *time.Location {
	return g.loc
}

// Generate returns the bookable slots of tmpl on date. occupied holds the start of every active
// schedule of the workshop on that date; each one takes a machine from its slot. Slots with no
// free machine are omitted.
//
// Example:
//
//	gen := services.NewSlotGenerator(almaty)
//	slots, err := gen.Generate(tmpl, date, time.Now(), starts)
func (g SlotGenerator) Generate(tmpl workshop.Template, date, now time.Time, occupied []time.Time) ([]workshop.Slot, error) {
	all, err := g.generate(tmpl, date, now, occupied)
	if err != nil {
		return nil, err
	}

	slots := make([]workshop.Slot, 0, len(all))
	for _, s := range all {
		if s.FreeSpace >= 1 {
			slots = append(slots, s)
		}
	}
	return slots, nil
}

// Resolve finds the slot starting at start. A start that is not a slot boundary (or is already
// in the past) is a validation error; a full slot is a conflict.
func (g SlotGenerator) Resolve(tmpl workshop.Template, start, now time.Time, occupied []time.Time) (workshop.Slot, error) {
	all, err := g.generate(tmpl, start, now, occupied)
	if err != nil {
		return workshop.Slot{}, err
	}

	for _, s := range all {
		if !s.StartsAt(start) {
			continue
		}
		if s.FreeSpace < 1 {
			return workshop.Slot{}, errs.NewConflictError(
				fmt.Sprintf("slot %s is fully booked", start.In(g.loc).Format(time.RFC3339)))
		}
		return s, nil
	}

	return workshop.Slot{}, errs.NewValueIsInvalidErrorWithCause("start_at",
		fmt.Errorf("%s is not an available slot start", start.In(g.loc).Format(time.RFC3339)))
}

func (g SlotGenerator) generate(tmpl workshop.Template, date, now time.Time, occupied []time.Time) ([]workshop.Slot, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	now = now.In(g.loc)
	y, m, d := date.In(g.loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, g.loc)

	if workshop.DateKey(dayStart) < workshop.DateKey(now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("date",
			fmt.Errorf("%s is in the past", dayStart.Format(time.DateOnly)))
	}
	if !tmpl.AppliesTo(dayStart) {
		return nil, errs.NewValueIsInvalidErrorWithCause("date",
			fmt.Errorf("template %s does not cover %s", tmpl.ID(), dayStart.Format(time.DateOnly)))
	}

	step := tmpl.Step()
	first := tmpl.StartAt()
	if workshop.DateKey(dayStart) == workshop.DateKey(now) {
		first = firstBoundary(dayStart, now, tmpl.StartAt(), step)
	}

	taken := make(map[int64]int, len(occupied))
	for _, t := range occupied {
		taken[t.Unix()]++
	}

	var slots []workshop.Slot
	for s := first; s+tmpl.CarServiceMin() <= tmpl.EndAt(); s += step {
		start := atMinute(dayStart, s)
		slots = append(slots, workshop.Slot{
			Start:     start,
			End:       atMinute(dayStart, s+tmpl.CarServiceMin()),
			FreeSpace: tmpl.MachineAtOneTime() - taken[start.Unix()],
		})
	}

	return slots, nil
}

// firstBoundary is the first slot start at or after now: the number of elapsed cycles since
// startAt, whole or partial, rounded up.
func firstBoundary(dayStart, now time.Time, startAt, step int) int {
	elapsed := now.Sub(atMinute(dayStart, startAt))
	if elapsed <= 0 {
		return startAt
	}

	cycle := time.Duration(step) * time.Minute
	cycles := int((elapsed + cycle - 1) / cycle)
	return startAt + cycles*step
}

func atMinute(dayStart time.Time, minute int) time.Time {
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), 0, minute, 0, 0, dayStart.Location())
}
