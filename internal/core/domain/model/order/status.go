package order

import (
	"fmt"

	"yard/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as reported by the payment and SAP
// collaborators.
//
// State transitions:
//
//	Created ──> Paid ──> Closed   (set by the SAP collaborator once fulfilled)
//	   │
//	   └──────> Failed            (overdue unpaid order swept)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Created is the status of a purchased order awaiting payment.
	Created

	// Paid orders may be booked against.
	Paid

	// Failed is final: the order was never paid in time.
	Failed

	// Closed is final: the order was settled upstream and takes no more bookings.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Created: "Created",
		Paid:    "Paid",
		Failed:  "Failed",
		Closed:  "Closed",
	}
}

// Validate checks that the status is one of Created, Paid, Failed, Closed.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Pay transitions Created to Paid.
func (s Status) Pay() (Status, error) {
	if s != Created {
		return Unknown, errs.NewConflictError(fmt.Sprintf("%s is not a valid status to pay", s))
	}
	return Paid, nil
}

// Fail transitions Created to Failed.
func (s Status) Fail() (Status, error) {
	if s != Created {
		return Unknown, errs.NewConflictError(fmt.Sprintf("%s is not a valid status to fail", s))
	}
	return Failed, nil
}

// Close transitions Paid to Closed.
func (s Status) Close() (Status, error) {
	if s != Paid {
		return Unknown, errs.NewConflictError(fmt.Sprintf("%s is not a valid status to close", s))
	}
	return Closed, nil
}
