package workshop

import (
	"errors"
	"fmt"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

// MinutesPerDay bounds StartAt and EndAt.
const MinutesPerDay = 24 * 60

var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// Template is read-only master data for the slot generator.
type Template struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	workshopID kernel.UUID

	dateStart time.Time
	dateEnd   time.Time

	startAt                int
	endAt                  int
	carServiceMin          int
	breakBetweenServiceMin int
	machineAtOneTime       int

	isActive bool

	guard guard.ConstructorGuard
}

func NewTemplate(
	id, workshopID kernel.UUID,
	dateStart, dateEnd time.Time,
	startAt, endAt int,
	carServiceMin, breakBetweenServiceMin int,
	machineAtOneTime int,
	isActive bool,
) (Template, error) {
	t := Template{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setIDs(id, workshopID),
		t.setDates(dateStart, dateEnd),
		t.setDay(startAt, endAt),
		t.setService(carServiceMin, breakBetweenServiceMin),
		t.setMachines(machineAtOneTime),
	); err != nil {
		return Template{}, err
	}

	return t, nil
}

func (t Template) Validate() error {
	return t.guard.Validate(ErrTemplateIsNotConstructed)
}

func (t Template) ID() kernel.UUID {
	return t.id
}

func (t Template) WorkshopID() kernel.UUID {
	return t.workshopID
}

func (t Template) DateStart() time.Time {
	return t.dateStart
}

func (t Template) DateEnd() time.Time {
	return t.dateEnd
}

// StartAt is minutes after local midnight.
func (t Template) StartAt() int {
	return t.startAt
}

// EndAt is minutes after local midnight.
func (t Template) EndAt() int {
	return t.endAt
}

func (t Template) CarServiceMin() int {
	return t.carServiceMin
}

func (t Template) BreakBetweenServiceMin() int {
	return t.breakBetweenServiceMin
}

// Step is the distance between two consecutive slot starts.
func (t Template) Step() int {
	return t.carServiceMin + t.breakBetweenServiceMin
}

func (t Template) MachineAtOneTime() int {
	return t.machineAtOneTime
}

func (t Template) IsActive() bool {
	return t.isActive
}

// Covers reports whether the calendar date of day lies inside [DateStart, DateEnd].
func (t Template) Covers(day time.Time) bool {
	key := DateKey(day)
	return key >= DateKey(t.dateStart) && key <= DateKey(t.dateEnd)
}

// AppliesTo reports whether the template is active and covers day.
func (t Template) AppliesTo(day time.Time) bool {
	return t.isActive && t.Covers(day)
}

// DateKey turns the calendar date of t into a sortable yyyymmdd integer, ignoring the clock and
// the location.
func DateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func (t *Template) setIDs(id, workshopID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := workshopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("workshop", err)
	}
	t.id, t.workshopID = id, workshopID
	return nil
}

func (t *Template) setDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("date_start/date_end")
	}
	if DateKey(end) < DateKey(start) {
		return errs.NewValueIsInvalidErrorWithCause("date_end",
			fmt.Errorf("%s is before %s", end.Format(time.DateOnly), start.Format(time.DateOnly)))
	}
	t.dateStart, t.dateEnd = start, end
	return nil
}

func (t *Template) setDay(startAt, endAt int) error {
	if startAt < 0 || startAt >= MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("start_at", startAt, 0, MinutesPerDay-1)
	}
	if endAt <= startAt || endAt > MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("end_at", endAt, startAt+1, MinutesPerDay)
	}
	t.startAt, t.endAt = startAt, endAt
	return nil
}

func (t *Template) setService(serviceMin, breakMin int) error {
	if serviceMin <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("car_service_min", fmt.Errorf("%d is not greater than 0", serviceMin))
	}
	if breakMin < 0 {
		return errs.NewValueIsInvalidErrorWithCause("break_between_service_min", fmt.Errorf("%d is negative", breakMin))
	}
	t.carServiceMin, t.breakBetweenServiceMin = serviceMin, breakMin
	return nil
}

func (t *Template) setMachines(n int) error {
	if n < 1 {
		return errs.NewValueIsInvalidErrorWithCause("machine_at_one_time", fmt.Errorf("%d is not greater than 0", n))
	}
	t.machineAtOneTime = n
	return nil
}
