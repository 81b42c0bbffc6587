package services

import (
	"fmt"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/pkg/errs"
)

// OrderLedger keeps quan_booked and quan_released equal to what the order's schedules say.
type OrderLedger struct{}

func NewOrderLedger() OrderLedger {
	return OrderLedger{}
}

// Recompute derives both totals from all schedules of o and stores them on o. It is a full
// recompute, never an increment. An order whose quan_left would turn negative is left untouched
// and an IntegrityError is returned.
func (OrderLedger) Recompute(o *order.Order, schedules []*schedule.Schedule) error {
	if err := o.Validate(); err != nil {
		return err
	}

	var booked, released kernel.Weight
	for _, s := range schedules {
		if err := s.Validate(); err != nil {
			return err
		}
		if !s.OrderID().IsEqual(o.ID()) {
			return errs.NewIntegrityError(fmt.Sprintf("schedule %s does not belong to order %s", s.ID(), o.ID()))
		}
		booked = booked.Add(s.BookedVolume())
		released = released.Add(s.ReleasedVolume())
	}

	return o.Reconcile(booked, released)
}
