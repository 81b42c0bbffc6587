// Package queries contains read-only operations. Handlers read straight from the database and
// return flat response structs; they never load aggregates for writing.
package queries

import (
	"errors"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrGetAvailableSlotsQueryIsNotConstructed = errors.New(
	"GetAvailableSlotsQuery must be created via NewGetAvailableSlotsQuery constructor",
)

// GetAvailableSlotsQuery lists the free slots of a workshop on a calendar day.
//
// Example:
//
//	query, err := NewGetAvailableSlotsQuery(workshopID, time.Date(2025, 3, 10, 0, 0, 0, 0, almaty))
//	slots, err := handler.Handle(ctx, query)
type GetAvailableSlotsQuery struct {
	workshopID kernel.UUID
	date       time.Time

	guard guard.ConstructorGuard
}

func NewGetAvailableSlotsQuery(workshopID kernel.UUID, date time.Time) (GetAvailableSlotsQuery, error) {
	var dateErr error
	if date.IsZero() {
		dateErr = errs.NewValueIsRequiredError("date")
	}
	if err := errors.Join(workshopID.Validate(), dateErr); err != nil {
		return GetAvailableSlotsQuery{}, err
	}

	return GetAvailableSlotsQuery{
		workshopID: workshopID,
		date:       date,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableSlotsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableSlotsQueryIsNotConstructed)
}

func (q GetAvailableSlotsQuery) WorkshopID() kernel.UUID {
	return q.workshopID
}

func (q GetAvailableSlotsQuery) Date() time.Time {
	return q.date
}

type GetAvailableSlotsQueryResponse struct {
	Start     time.Time
	End       time.Time
	FreeSpace int
}
