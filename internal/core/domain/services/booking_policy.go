package services

import (
	"errors"
	"fmt"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/fleet"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/organization"
	"yard/internal/core/domain/model/workshop"
	"yard/internal/pkg/errs"
)

// DefaultMinimalLoad is used when no minimal load is configured.
var DefaultMinimalLoad = kernel.Kilograms(1000)

// BookingRequest is everything loaded for one booking attempt.
type BookingRequest struct {
	Actor    actor.Actor
	Order    *order.Order
	Template workshop.Template
	Vehicle  *fleet.Vehicle
	Trailer  *fleet.Vehicle
	DriverID kernel.UUID
}

// BookingPolicy decides whether a booking is allowed and how much it reserves.
type BookingPolicy struct {
	minimalLoad kernel.Weight
}

func NewBookingPolicy(minimalLoad kernel.Weight) BookingPolicy {
	if !minimalLoad.IsPositive() {
		minimalLoad = DefaultMinimalLoad
	}
	return BookingPolicy{minimalLoad: minimalLoad}
}

func (p BookingPolicy) MinimalLoad() kernel.Weight {
	return p.minimalLoad
}

// AuthorizeIndividual requires that the actor owns the order and the vehicles directly and
// drives them.
func (p BookingPolicy) AuthorizeIndividual(r BookingRequest) error {
	if err := r.validate(); err != nil {
		return err
	}

	a := r.Actor
	if a.UserType() != actor.Individual {
		return errs.NewForbiddenError("only individual clients book for themselves")
	}
	self, err := kernel.NewUserOwner(a.ID())
	if err != nil {
		return err
	}

	if !r.Order.Owner().IsEqual(self) {
		return errs.NewForbiddenError(fmt.Sprintf("order %s is not owned by %s", r.Order.ID(), a.ID()))
	}
	if err = ownedBy(self, r.Vehicle, r.Trailer); err != nil {
		return err
	}
	if !r.DriverID.IsEqual(a.ID()) {
		return errs.NewForbiddenError("an individual client can only book for themselves")
	}

	return nil
}

// AuthorizeLegal requires that the actor represents the organization owning the order and the
// vehicles. A driver other than the actor must be one of the organization's employees.
func (p BookingPolicy) AuthorizeLegal(r BookingRequest, driver *organization.Employee) error {
	if err := r.validate(); err != nil {
		return err
	}

	a := r.Actor
	if a.UserType() != actor.Legal {
		return errs.NewForbiddenError("only representatives of legal entities book for an organization")
	}
	owner := r.Order.Owner()
	orgID := owner.OrganizationID()
	if orgID == nil {
		return errs.NewForbiddenError(fmt.Sprintf("order %s is not owned by an organization", r.Order.ID()))
	}
	if !a.IsMemberOf(*orgID) {
		return errs.NewForbiddenError(fmt.Sprintf("%s does not represent organization %s", a.ID(), *orgID))
	}
	if err := ownedBy(owner, r.Vehicle, r.Trailer); err != nil {
		return err
	}

	if r.DriverID.IsEqual(a.ID()) {
		return nil
	}
	if driver == nil || !driver.UserID().IsEqual(r.DriverID) || !driver.OrganizationID().IsEqual(*orgID) {
		return errs.NewForbiddenError(fmt.Sprintf("driver %s is not an employee of organization %s", r.DriverID, *orgID))
	}

	return nil
}

// Check runs the business preconditions that do not depend on slot capacity.
func (p BookingPolicy) Check(r BookingRequest) error {
	if err := r.validate(); err != nil {
		return err
	}

	if err := r.Order.ValidateBookable(p.minimalLoad); err != nil {
		return err
	}

	if !r.Template.WorkshopID().IsEqual(r.Order.WorkshopID()) {
		return errs.NewValueIsInvalidErrorWithCause("workshop",
			fmt.Errorf("template %s belongs to workshop %s, order %s to %s",
				r.Template.ID(), r.Template.WorkshopID(), r.Order.ID(), r.Order.WorkshopID()))
	}

	if r.Vehicle.IsTrailer() {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf("%s is a trailer", r.Vehicle.PlateNumber()))
	}
	if r.Trailer != nil && !r.Trailer.IsTrailer() {
		return errs.NewValueIsInvalidErrorWithCause("trailer", fmt.Errorf("%s is not a trailer", r.Trailer.PlateNumber()))
	}

	return nil
}

// LoadingVolume is min(vehicle + trailer capacity, quan_left).
func (p BookingPolicy) LoadingVolume(r BookingRequest) kernel.Weight {
	capacity := r.Vehicle.LoadCapacity()
	if r.Trailer != nil {
		capacity = capacity.Add(r.Trailer.LoadCapacity())
	}
	return capacity.Min(r.Order.QuanLeft())
}

func (r BookingRequest) validate() error {
	var trailerErr error
	if r.Trailer != nil {
		trailerErr = r.Trailer.Validate()
	}
	return errors.Join(
		r.Actor.Validate(),
		r.Order.Validate(),
		r.Template.Validate(),
		r.Vehicle.Validate(),
		trailerErr,
		r.DriverID.Validate(),
	)
}

func ownedBy(owner kernel.Owner, vehicles ...*fleet.Vehicle) error {
	for _, v := range vehicles {
		if v == nil {
			continue
		}
		if !v.Owner().IsEqual(owner) {
			return errs.NewForbiddenError(fmt.Sprintf("vehicle %s belongs to someone else", v.PlateNumber()))
		}
	}
	return nil
}
