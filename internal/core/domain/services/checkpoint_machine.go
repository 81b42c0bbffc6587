package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/pkg/errs"
)

// Decision is the outcome a checkpoint operator reports for a pending history row.
type Decision struct {
	Passed        bool
	Weight        *kernel.Weight
	Reason        string
	NextOperation *operation.Code
}

// Outcome tells the caller what has to be persisted after Decide.
type Outcome struct {
	InitialWeight *schedule.InitialWeight
	ActWeight     *schedule.ActWeight
	Executed      bool
	Canceled      bool
	RoutedTo      operation.Code
}

// AffectsLedger reports whether the order ledger must be recomputed.
func (o Outcome) AffectsLedger() bool {
	return o.Executed || o.Canceled
}

// CheckpointMachine drives a visit through the operation graph.
type CheckpointMachine struct {
	graph operation.Graph
}

func NewCheckpointMachine(g operation.Graph) CheckpointMachine {
	return CheckpointMachine{graph: g}
}

func (m CheckpointMachine) Graph() operation.Graph {
	return m.graph
}

// Authorize returns the operation if the actor's role owns it.
func (m CheckpointMachine) Authorize(a actor.Actor, code operation.Code) (operation.Operation, error) {
	if err := a.Validate(); err != nil {
		return operation.Operation{}, err
	}
	op, err := m.graph.Get(code)
	if err != nil {
		return operation.Operation{}, err
	}
	if a.Role() != op.Role {
		return operation.Operation{}, errs.NewForbiddenError(
			fmt.Sprintf("role %s cannot work at %s", a.Role(), code))
	}
	return op, nil
}

// Take opens a pending history row for code. hasPending tells whether one is already open for
// the same schedule and operation.
func (m CheckpointMachine) Take(
	a actor.Actor,
	code operation.Code,
	s *schedule.Schedule,
	hasPending bool,
	now time.Time,
) (*schedule.History, error) {
	op, err := m.Authorize(a, code)
	if err != nil {
		return nil, err
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	if err = s.EnsureTakeable(op, now); err != nil {
		return nil, err
	}
	if hasPending {
		return nil, errs.NewConflictError(fmt.Sprintf("schedule %s already has a pending %s", s.ID(), code))
	}

	h, err := schedule.NewHistory(kernel.NewUUID(), s.ID(), code, a.Snapshot(), now)
	if err != nil {
		return nil, err
	}

	s.MarkUsed()
	return h, nil
}

// ValidateDecision checks the shape of d against the operation alone.
func (m CheckpointMachine) ValidateDecision(code operation.Code, d Decision) error {
	op, err := m.graph.Get(code)
	if err != nil {
		return err
	}

	if d.Passed {
		var nextErr error
		if d.NextOperation != nil {
			nextErr = errs.NewValueIsInvalidErrorWithCause("next_operation", errors.New("only allowed when denying"))
		}
		return errors.Join(validateWeight(op, d.Weight), nextErr)
	}

	var weightErr, reasonErr, nextErr error
	if d.Weight != nil {
		weightErr = errs.NewValueIsInvalidErrorWithCause("weight", errors.New("only allowed when passing"))
	}
	if strings.TrimSpace(d.Reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	switch {
	case d.NextOperation != nil && len(op.RejectTo) > 0:
		nextErr = m.graph.RouteBack(code, *d.NextOperation)
	case d.NextOperation != nil:
		nextErr = errs.NewValueIsInvalidErrorWithCause("next_operation",
			fmt.Errorf("%s cancels the visit on deny", code))
	case op.CanCancel:
	case len(op.RejectTo) > 0:
		nextErr = errs.NewValueIsRequiredErrorWithCause("next_operation",
			fmt.Errorf("%s denies back to one of %v", code, op.RejectTo))
	default:
		nextErr = errs.NewValueIsInvalidErrorWithCause("passed", fmt.Errorf("%s cannot be denied", code))
	}

	return errors.Join(weightErr, reasonErr, nextErr)
}

// Decide closes the pending row h of schedule s. Every check runs before the first mutation.
func (m CheckpointMachine) Decide(
	a actor.Actor,
	code operation.Code,
	s *schedule.Schedule,
	h *schedule.History,
	d Decision,
	now time.Time,
) (Outcome, error) {
	op, err := m.Authorize(a, code)
	if err != nil {
		return Outcome{}, err
	}
	if err = m.ValidateDecision(code, d); err != nil {
		return Outcome{}, err
	}
	if err = errors.Join(s.Validate(), h.Validate()); err != nil {
		return Outcome{}, err
	}
	if !h.ScheduleID().IsEqual(s.ID()) {
		return Outcome{}, errs.NewIntegrityError(fmt.Sprintf("history %s does not belong to schedule %s", h.ID(), s.ID()))
	}
	if err = h.EnsurePendingAt(code); err != nil {
		return Outcome{}, err
	}
	if err = s.EnsureAt(code); err != nil {
		return Outcome{}, err
	}

	if d.Passed {
		return m.pass(op, s, h, d, now)
	}
	return m.deny(a, s, h, d, now)
}

func (m CheckpointMachine) pass(
	op operation.Operation,
	s *schedule.Schedule,
	h *schedule.History,
	d Decision,
	now time.Time,
) (Outcome, error) {
	var out Outcome

	if m.isFinalWeighing(op) {
		if _, err := s.MeasureFinal(*d.Weight); err != nil {
			return Outcome{}, err
		}
	}

	if err := h.Pass(now); err != nil {
		return Outcome{}, err
	}

	if op.IsWeighing {
		if m.isFinalWeighing(op) {
			netto, err := s.RecordFinal(*d.Weight)
			if err != nil {
				return Outcome{}, err
			}
			act := schedule.NewActWeight(s.ID(), h.ID(), *s.VehicleTare(), *d.Weight, netto, now)
			out.ActWeight = &act
		} else {
			if err := s.RecordTare(*d.Weight); err != nil {
				return Outcome{}, err
			}
			iw := schedule.NewInitialWeight(s.ID(), h.ID(), *d.Weight, now)
			out.InitialWeight = &iw
		}
	}

	executed, err := s.Advance(m.graph, now)
	if err != nil {
		return Outcome{}, err
	}
	out.Executed = executed

	return out, nil
}

func (m CheckpointMachine) deny(
	a actor.Actor,
	s *schedule.Schedule,
	h *schedule.History,
	d Decision,
	now time.Time,
) (Outcome, error) {
	if err := h.Deny(now, d.Reason); err != nil {
		return Outcome{}, err
	}

	if d.NextOperation != nil {
		if err := s.RouteBack(m.graph, *d.NextOperation); err != nil {
			return Outcome{}, err
		}
		return Outcome{RoutedTo: *d.NextOperation}, nil
	}

	if err := s.Cancel(now, d.Reason, a.Snapshot()); err != nil {
		return Outcome{}, err
	}
	return Outcome{Canceled: true}, nil
}

// isFinalWeighing: the weighing right before the last operation measures brutto; every other
// weighing measures tare.
func (m CheckpointMachine) isFinalWeighing(op operation.Operation) bool {
	return op.IsWeighing && op.Next == m.graph.Last().Code
}

func validateWeight(op operation.Operation, w *kernel.Weight) error {
	if !op.IsWeighing {
		if w != nil {
			return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not a weighing", op.Code))
		}
		return nil
	}
	if w == nil {
		return errs.NewValueIsRequiredError("weight")
	}
	if !w.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", *w))
	}
	return nil
}
