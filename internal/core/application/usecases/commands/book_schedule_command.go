package commands

import (
	"errors"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var (
	ErrBookIndividualScheduleCommandIsNotConstructed = errors.New(
		"BookIndividualScheduleCommand must be created via NewBookIndividualScheduleCommand constructor",
	)
	ErrBookLegalScheduleCommandIsNotConstructed = errors.New(
		"BookLegalScheduleCommand must be created via NewBookLegalScheduleCommand constructor",
	)
)

// bookingTarget is shared by both booking commands.
type bookingTarget struct {
	actor      actor.Actor
	orderID    kernel.UUID
	workshopID kernel.UUID
	vehicleID  kernel.UUID
	trailerID  *kernel.UUID
	startAt    time.Time
}

func newBookingTarget(
	a actor.Actor,
	orderID, workshopID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
	startAt time.Time,
) (bookingTarget, error) {
	var trailerErr error
	if trailerID != nil {
		trailerErr = trailerID.Validate()
		if trailerErr == nil && trailerID.IsEqual(vehicleID) {
			trailerErr = errs.NewValueIsInvalidError("trailer must differ from the vehicle")
		}
	}

	var startErr error
	if startAt.IsZero() {
		startErr = errs.NewValueIsRequiredError("start_at")
	}

	if err := errors.Join(
		a.Validate(),
		orderID.Validate(),
		workshopID.Validate(),
		vehicleID.Validate(),
		trailerErr,
		startErr,
	); err != nil {
		return bookingTarget{}, err
	}

	return bookingTarget{
		actor:      a,
		orderID:    orderID,
		workshopID: workshopID,
		vehicleID:  vehicleID,
		trailerID:  trailerID,
		startAt:    startAt,
	}, nil
}

// BookIndividualScheduleCommand books a visit for an individual client who drives their own
// vehicle.
type BookIndividualScheduleCommand struct {
	target bookingTarget

	guard guard.ConstructorGuard
}

func NewBookIndividualScheduleCommand(
	a actor.Actor,
	orderID, workshopID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
	startAt time.Time,
) (BookIndividualScheduleCommand, error) {
	target, err := newBookingTarget(a, orderID, workshopID, vehicleID, trailerID, startAt)
	if err != nil {
		return BookIndividualScheduleCommand{}, err
	}

	return BookIndividualScheduleCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c BookIndividualScheduleCommand) Validate() error {
	return c.guard.Validate(ErrBookIndividualScheduleCommandIsNotConstructed)
}

func (c BookIndividualScheduleCommand) Actor() actor.Actor {
	return c.target.actor
}

func (c BookIndividualScheduleCommand) OrderID() kernel.UUID {
	return c.target.orderID
}

func (c BookIndividualScheduleCommand) StartAt() time.Time {
	return c.target.startAt
}

// BookLegalScheduleCommand books a visit on behalf of an organization. The driver is the
// representative unless DriverID names one of the organization's employees.
type BookLegalScheduleCommand struct {
	target   bookingTarget
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBookLegalScheduleCommand(
	a actor.Actor,
	orderID, workshopID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
	driverID *kernel.UUID,
	startAt time.Time,
) (BookLegalScheduleCommand, error) {
	target, err := newBookingTarget(a, orderID, workshopID, vehicleID, trailerID, startAt)
	if err != nil {
		return BookLegalScheduleCommand{}, err
	}

	driver := a.ID()
	if driverID != nil {
		if err = driverID.Validate(); err != nil {
			return BookLegalScheduleCommand{}, errs.NewValueIsInvalidErrorWithCause("driver_id", err)
		}
		driver = *driverID
	}

	return BookLegalScheduleCommand{
		target:   target,
		driverID: driver,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c BookLegalScheduleCommand) Validate() error {
	return c.guard.Validate(ErrBookLegalScheduleCommandIsNotConstructed)
}

func (c BookLegalScheduleCommand) Actor() actor.Actor {
	return c.target.actor
}

func (c BookLegalScheduleCommand) OrderID() kernel.UUID {
	return c.target.orderID
}

func (c BookLegalScheduleCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c BookLegalScheduleCommand) StartAt() time.Time {
	return c.target.startAt
}
