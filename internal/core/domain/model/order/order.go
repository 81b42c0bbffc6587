package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a purchased quantity of material.
//
// Order follows these invariants:
//   - Must have a valid identifier, owner and workshop
//   - quan must be positive
//   - quan_booked + quan_released <= quan at all times
//   - booked/released are only changed by Reconcile
type Order struct {
	id         kernel.UUID
	owner      kernel.Owner
	workshopID kernel.UUID

	// quan is the purchased quantity
	quan kernel.Weight
	// quanBooked is reserved by active, not yet executed schedules
	quanBooked kernel.Weight
	// quanReleased is the measured netto of executed schedules
	quanReleased kernel.Weight

	isPaid        bool
	transactionID string
	// zakaz is the external SAP order number, opaque to the core
	zakaz string

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a freshly purchased order in Created status with an empty ledger.
//
// Example:
//
//	owner, _ := kernel.NewUserOwner(userID)
//	o, err := order.NewOrder(kernel.NewUUID(), owner, workshopID, kernel.Kilograms(10000), "4500012345", now)
func NewOrder(
	id kernel.UUID,
	owner kernel.Owner,
	workshopID kernel.UUID,
	quan kernel.Weight,
	zakaz string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		zakaz:         strings.TrimSpace(zakaz),
		status:        Created,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setWorkshopID(workshopID),
		o.setQuan(quan),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence. A ledger that is already negative is an
// integrity error, not a validation error.
func RestoreOrder(
	id kernel.UUID,
	owner kernel.Owner,
	workshopID kernel.UUID,
	quan, quanBooked, quanReleased kernel.Weight,
	isPaid bool,
	transactionID, zakaz string,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		isPaid:        isPaid,
		transactionID: transactionID,
		zakaz:         zakaz,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setWorkshopID(workshopID),
		o.setQuan(quan),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if (status == Paid || status == Closed) && (!isPaid || transactionID == "") {
		return nil, errs.NewIntegrityError(fmt.Sprintf("order %s is Paid without a payment transaction", id))
	}

	if err := o.Reconcile(quanBooked, quanReleased); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Owner() kernel.Owner {
	return o.owner
}

func (o *Order) WorkshopID() kernel.UUID {
	return o.workshopID
}

func (o *Order) Quan() kernel.Weight {
	return o.quan
}

func (o *Order) QuanBooked() kernel.Weight {
	return o.quanBooked
}

func (o *Order) QuanReleased() kernel.Weight {
	return o.quanReleased
}

// QuanLeft is quan - quan_booked - quan_released.
func (o *Order) QuanLeft() kernel.Weight {
	return o.quan.Sub(o.quanBooked).Sub(o.quanReleased)
}

func (o *Order) IsPaid() bool {
	return o.isPaid
}

func (o *Order) TransactionID() string {
	return o.transactionID
}

func (o *Order) Zakaz() string {
	return o.zakaz
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// RecordPayment stores the payment collaborator's fact. Repeating the same transaction id is
// a no-op; a different one on a paid order is a conflict.
func (o *Order) RecordPayment(transactionID string) error {
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transaction_id")
	}

	if o.isPaid {
		if o.transactionID == transactionID {
			return nil
		}
		return errs.NewConflictError(fmt.Sprintf("order %s is already paid by transaction %s", o.id, o.transactionID))
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.isPaid = true
	o.transactionID = transactionID
	return nil
}

// Close marks a paid order as settled upstream. Active bookings must be finished or
// canceled first.
func (o *Order) Close() error {
	if !o.quanBooked.IsZero() {
		return errs.NewConflictError(fmt.Sprintf("order %s still has %s booked", o.id, o.quanBooked))
	}

	newStatus, err := o.status.Close()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail marks an unpaid order as failed. Used by the overdue sweep.
func (o *Order) Fail() error {
	if o.isPaid {
		return errs.NewConflictError(fmt.Sprintf("order %s is paid and cannot fail", o.id))
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ValidateBookable checks the business preconditions for a new booking: the order is paid with
// a recorded transaction and at least minimalLoad is left.
func (o *Order) ValidateBookable(minimalLoad kernel.Weight) error {
	if o.status != Paid || !o.isPaid || o.transactionID == "" {
		return errs.NewConflictError(fmt.Sprintf("order %s is not paid", o.id))
	}

	if left := o.QuanLeft(); left.LessThan(minimalLoad) {
		return errs.NewConflictError(
			fmt.Sprintf("order %s has %s left, at least %s is required", o.id, left, minimalLoad))
	}

	return nil
}

// Reconcile replaces the booked and released quantities with freshly recomputed totals.
// It is the only way these fields change. A result that would leave quan_left negative is an
// IntegrityError and leaves the order untouched.
func (o *Order) Reconcile(booked, released kernel.Weight) error {
	if booked.IsNegative() || released.IsNegative() {
		return errs.NewIntegrityError(
			fmt.Sprintf("order %s ledger totals are negative: booked %s, released %s", o.id, booked, released))
	}

	if left := o.quan.Sub(booked).Sub(released); left.IsNegative() {
		return errs.NewIntegrityError(
			fmt.Sprintf("order %s quan_left would be %s (quan %s, booked %s, released %s)",
				o.id, left, o.quan, booked, released))
	}

	o.quanBooked = booked
	o.quanReleased = released
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	o.owner = owner
	return nil
}

func (o *Order) setWorkshopID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("workshop", err)
	}
	o.workshopID = id
	return nil
}

func (o *Order) setQuan(quan kernel.Weight) error {
	if !quan.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quan is invalid", fmt.Errorf("%s is not greater than 0", quan))
	}
	o.quan = quan
	return nil
}
