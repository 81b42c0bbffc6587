package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/pkg/errs"
)

var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule or RestoreSchedule")

// Schedule is the aggregate root of a single visit.
type Schedule struct {
	id         kernel.UUID
	orderID    kernel.UUID
	owner      kernel.Owner
	driver     Driver
	vehicleID  kernel.UUID
	trailerID  *kernel.UUID
	templateID kernel.UUID
	workshopID kernel.UUID

	startAt time.Time
	endAt   time.Time

	loadingVolume kernel.Weight
	vehicleTare   *kernel.Weight
	vehicleBrutto *kernel.Weight
	vehicleNetto  *kernel.Weight

	currentOperation operation.Code

	isActive   bool
	isUsed     bool
	isCanceled bool
	isExecuted bool

	executedAt   *time.Time
	canceledAt   *time.Time
	cancelReason string
	canceledBy   *actor.Snapshot
	bookedBy     actor.Snapshot
	createdAt    time.Time

	isConstructed bool
}

// Booking carries everything the booking engine decided for a new visit.
type Booking struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	Owner         kernel.Owner
	Driver        Driver
	VehicleID     kernel.UUID
	TrailerID     *kernel.UUID
	TemplateID    kernel.UUID
	WorkshopID    kernel.UUID
	StartAt       time.Time
	EndAt         time.Time
	LoadingVolume kernel.Weight
	BookedBy      actor.Snapshot
	CreatedAt     time.Time
}

// NewSchedule creates an active visit positioned at first.
func NewSchedule(b Booking, first operation.Code) (*Schedule, error) {
	s := &Schedule{
		id:               b.ID,
		orderID:          b.OrderID,
		owner:            b.Owner,
		driver:           b.Driver,
		vehicleID:        b.VehicleID,
		trailerID:        b.TrailerID,
		templateID:       b.TemplateID,
		workshopID:       b.WorkshopID,
		startAt:          b.StartAt,
		endAt:            b.EndAt,
		loadingVolume:    b.LoadingVolume,
		currentOperation: first,
		isActive:         true,
		bookedBy:         b.BookedBy,
		createdAt:        b.CreatedAt,
		isConstructed:    true,
	}

	if err := s.validateBooking(); err != nil {
		return nil, err
	}

	return s, nil
}

// State is the persisted form of a Schedule.
type State struct {
	Booking

	VehicleTare   *kernel.Weight
	VehicleBrutto *kernel.Weight
	VehicleNetto  *kernel.Weight

	CurrentOperation operation.Code

	IsActive   bool
	IsUsed     bool
	IsCanceled bool
	IsExecuted bool

	ExecutedAt   *time.Time
	CanceledAt   *time.Time
	CancelReason string
	CanceledBy   *actor.Snapshot
}

// RestoreSchedule rebuilds a schedule from persistence and checks the flag combination.
func RestoreSchedule(st State) (*Schedule, error) {
	s := &Schedule{
		id:               st.ID,
		orderID:          st.OrderID,
		owner:            st.Owner,
		driver:           st.Driver,
		vehicleID:        st.VehicleID,
		trailerID:        st.TrailerID,
		templateID:       st.TemplateID,
		workshopID:       st.WorkshopID,
		startAt:          st.StartAt,
		endAt:            st.EndAt,
		loadingVolume:    st.LoadingVolume,
		vehicleTare:      st.VehicleTare,
		vehicleBrutto:    st.VehicleBrutto,
		vehicleNetto:     st.VehicleNetto,
		currentOperation: st.CurrentOperation,
		isActive:         st.IsActive,
		isUsed:           st.IsUsed,
		isCanceled:       st.IsCanceled,
		isExecuted:       st.IsExecuted,
		executedAt:       st.ExecutedAt,
		canceledAt:       st.CanceledAt,
		cancelReason:     st.CancelReason,
		canceledBy:       st.CanceledBy,
		bookedBy:         st.BookedBy,
		createdAt:        st.CreatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(s.validateBooking(), st.CurrentOperation.Validate()); err != nil {
		return nil, err
	}

	switch {
	case s.isCanceled && s.isExecuted:
		return nil, errs.NewIntegrityError(fmt.Sprintf("schedule %s is both canceled and executed", s.id))
	case s.isActive && (s.isCanceled || s.isExecuted):
		return nil, errs.NewIntegrityError(fmt.Sprintf("schedule %s is active but finished", s.id))
	case s.isExecuted && s.vehicleNetto == nil:
		return nil, errs.NewIntegrityError(fmt.Sprintf("schedule %s is executed without netto", s.id))
	}

	return s, nil
}

func (s *Schedule) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

func (s *Schedule) ID() kernel.UUID {
	return s.id
}

func (s *Schedule) OrderID() kernel.UUID {
	return s.orderID
}

func (s *Schedule) Owner() kernel.Owner {
	return s.owner
}

func (s *Schedule) Driver() Driver {
	return s.driver
}

func (s *Schedule) VehicleID() kernel.UUID {
	return s.vehicleID
}

func (s *Schedule) TrailerID() *kernel.UUID {
	return s.trailerID
}

func (s *Schedule) TemplateID() kernel.UUID {
	return s.templateID
}

func (s *Schedule) WorkshopID() kernel.UUID {
	return s.workshopID
}

func (s *Schedule) StartAt() time.Time {
	return s.startAt
}

func (s *Schedule) EndAt() time.Time {
	return s.endAt
}

func (s *Schedule) LoadingVolume() kernel.Weight {
	return s.loadingVolume
}

func (s *Schedule) VehicleTare() *kernel.Weight {
	return s.vehicleTare
}

func (s *Schedule) VehicleBrutto() *kernel.Weight {
	return s.vehicleBrutto
}

func (s *Schedule) VehicleNetto() *kernel.Weight {
	return s.vehicleNetto
}

func (s *Schedule) CurrentOperation() operation.Code {
	return s.currentOperation
}

func (s *Schedule) IsActive() bool {
	return s.isActive
}

func (s *Schedule) IsUsed() bool {
	return s.isUsed
}

func (s *Schedule) IsCanceled() bool {
	return s.isCanceled
}

func (s *Schedule) IsExecuted() bool {
	return s.isExecuted
}

func (s *Schedule) ExecutedAt() *time.Time {
	return s.executedAt
}

func (s *Schedule) CanceledAt() *time.Time {
	return s.canceledAt
}

func (s *Schedule) CancelReason() string {
	return s.cancelReason
}

func (s *Schedule) CanceledBy() *actor.Snapshot {
	return s.canceledBy
}

func (s *Schedule) BookedBy() actor.Snapshot {
	return s.bookedBy
}

func (s *Schedule) CreatedAt() time.Time {
	return s.createdAt
}

// BookedVolume is what this schedule reserves on its order.
func (s *Schedule) BookedVolume() kernel.Weight {
	if s.isActive && !s.isExecuted {
		return s.loadingVolume
	}
	return kernel.Weight{}
}

// ReleasedVolume is what this schedule actually took from its order.
func (s *Schedule) ReleasedVolume() kernel.Weight {
	if !s.isActive && s.isExecuted && s.vehicleNetto != nil {
		return *s.vehicleNetto
	}
	return kernel.Weight{}
}

// EnsureOpen fails unless the visit is still in progress.
func (s *Schedule) EnsureOpen() error {
	if !s.isActive || s.isCanceled || s.isExecuted {
		return errs.NewConflictError(fmt.Sprintf("schedule %s is not active", s.id))
	}
	return nil
}

// EnsureAt fails unless the visit is in progress and waiting at code.
func (s *Schedule) EnsureAt(code operation.Code) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}
	if s.currentOperation != code {
		return errs.NewConflictError(
			fmt.Sprintf("schedule %s is at %s, not at %s", s.id, s.currentOperation, code))
	}
	return nil
}

// EnsureTakeable adds the visit window check to EnsureAt. The window bounds the arrival only:
// once the first checkpoint is taken, later ones may run past end_at.
func (s *Schedule) EnsureTakeable(op operation.Operation, now time.Time) error {
	if err := s.EnsureAt(op.Code); err != nil {
		return err
	}
	if !op.IsFirst {
		return nil
	}
	if now.Before(s.startAt) || now.After(s.endAt) {
		return errs.NewConflictError(fmt.Sprintf("schedule %s visit window is %s - %s",
			s.id, s.startAt.Format(time.RFC3339), s.endAt.Format(time.RFC3339)))
	}
	return nil
}

// MarkUsed records that the vehicle showed up.
func (s *Schedule) MarkUsed() {
	s.isUsed = true
}

// RecordTare stores the empty vehicle weight. A tare re-weighing overwrites it.
func (s *Schedule) RecordTare(tare kernel.Weight) error {
	if !tare.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("tare %s is not greater than 0", tare))
	}
	s.vehicleTare = &tare
	return nil
}

// MeasureFinal computes netto for brutto without changing the schedule.
func (s *Schedule) MeasureFinal(brutto kernel.Weight) (kernel.Weight, error) {
	if s.vehicleTare == nil {
		return kernel.Weight{}, errs.NewIntegrityError(fmt.Sprintf("schedule %s has no tare", s.id))
	}
	if brutto.LessThan(*s.vehicleTare) {
		return kernel.Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("brutto %s is less than tare %s", brutto, *s.vehicleTare))
	}

	netto := brutto.Sub(*s.vehicleTare)
	if netto.GreaterThan(s.loadingVolume) {
		return kernel.Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("netto %s exceeds loading volume %s, deny towards %s", netto, s.loadingVolume, operation.Reloading))
	}

	return netto, nil
}

// RecordFinal stores brutto and the derived netto.
func (s *Schedule) RecordFinal(brutto kernel.Weight) (kernel.Weight, error) {
	netto, err := s.MeasureFinal(brutto)
	if err != nil {
		return kernel.Weight{}, err
	}
	s.vehicleBrutto = &brutto
	s.vehicleNetto = &netto
	return netto, nil
}

// Advance moves to the next operation of the graph. Passing the last operation executes the
// visit and reports executed=true.
func (s *Schedule) Advance(g operation.Graph, now time.Time) (executed bool, err error) {
	if err = s.EnsureOpen(); err != nil {
		return false, err
	}

	next, terminal, err := g.Advance(s.currentOperation)
	if err != nil {
		return false, err
	}

	if terminal {
		if s.vehicleNetto == nil {
			return false, errs.NewIntegrityError(fmt.Sprintf("schedule %s reached %s without netto", s.id, next))
		}
		s.isExecuted = true
		s.isActive = false
		s.executedAt = &now
		return true, nil
	}

	s.currentOperation = next
	return false, nil
}

// RouteBack sends the visit from the current operation to one of its reload targets.
func (s *Schedule) RouteBack(g operation.Graph, to operation.Code) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}
	if err := g.RouteBack(s.currentOperation, to); err != nil {
		return err
	}
	s.currentOperation = to
	return nil
}

// Cancel ends the visit without execution. Its booked volume goes back to the order on the next
// ledger recompute.
func (s *Schedule) Cancel(now time.Time, reason string, by actor.Snapshot) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	s.isActive = false
	s.isCanceled = true
	s.canceledAt = &now
	s.cancelReason = reason
	s.canceledBy = &by
	return nil
}

func (s *Schedule) validateBooking() error {
	var volumeErr error
	if !s.loadingVolume.IsPositive() {
		volumeErr = errs.NewValueIsInvalidErrorWithCause("loading_volume",
			fmt.Errorf("%s is not greater than 0", s.loadingVolume))
	}

	var windowErr error
	if !s.endAt.After(s.startAt) {
		windowErr = errs.NewValueIsInvalidErrorWithCause("end_at", fmt.Errorf("visit window is empty"))
	}

	var trailerErr error
	if s.trailerID != nil {
		trailerErr = s.trailerID.Validate()
	}

	return errors.Join(
		s.id.Validate(),
		s.orderID.Validate(),
		s.owner.Validate(),
		s.driver.Validate(),
		s.vehicleID.Validate(),
		trailerErr,
		s.templateID.Validate(),
		s.workshopID.Validate(),
		volumeErr,
		windowErr,
		s.bookedBy.ID.Validate(),
	)
}
