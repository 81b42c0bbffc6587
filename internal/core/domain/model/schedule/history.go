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

var ErrHistoryIsNotConstructed = errors.New("History must be created via NewHistory or RestoreHistory")

// History is one checkpoint attempt. It is pending (isPassed == nil) from take until decide and
// is never modified after that.
type History struct {
	id           kernel.UUID
	scheduleID   kernel.UUID
	operation    operation.Code
	responsible  actor.Snapshot
	isPassed     *bool
	startAt      time.Time
	endAt        *time.Time
	cancelReason string

	isConstructed bool
}

// NewHistory opens a pending row for a take.
func NewHistory(id, scheduleID kernel.UUID, code operation.Code, responsible actor.Snapshot, now time.Time) (*History, error) {
	if err := errors.Join(
		id.Validate(),
		scheduleID.Validate(),
		code.Validate(),
		responsible.ID.Validate(),
	); err != nil {
		return nil, err
	}

	return &History{
		id:            id,
		scheduleID:    scheduleID,
		operation:     code,
		responsible:   responsible,
		startAt:       now,
		isConstructed: true,
	}, nil
}

func RestoreHistory(
	id, scheduleID kernel.UUID,
	code operation.Code,
	responsible actor.Snapshot,
	isPassed *bool,
	startAt time.Time,
	endAt *time.Time,
	cancelReason string,
) (*History, error) {
	h, err := NewHistory(id, scheduleID, code, responsible, startAt)
	if err != nil {
		return nil, err
	}
	if (isPassed == nil) != (endAt == nil) {
		return nil, errs.NewIntegrityError(fmt.Sprintf("history %s is half closed", id))
	}

	h.isPassed = isPassed
	h.endAt = endAt
	h.cancelReason = cancelReason
	return h, nil
}

func (h *History) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryIsNotConstructed
	}
	return nil
}

func (h *History) ID() kernel.UUID {
	return h.id
}

func (h *History) ScheduleID() kernel.UUID {
	return h.scheduleID
}

func (h *History) Operation() operation.Code {
	return h.operation
}

func (h *History) Responsible() actor.Snapshot {
	return h.responsible
}

// IsPassed is nil while pending.
func (h *History) IsPassed() *bool {
	return h.isPassed
}

func (h *History) StartAt() time.Time {
	return h.startAt
}

func (h *History) EndAt() *time.Time {
	return h.endAt
}

func (h *History) CancelReason() string {
	return h.cancelReason
}

func (h *History) IsPending() bool {
	return h.isPassed == nil
}

// EnsurePendingAt fails unless the row is still open and belongs to code.
func (h *History) EnsurePendingAt(code operation.Code) error {
	if h.operation != code {
		return errs.NewConflictError(fmt.Sprintf("history %s belongs to %s, not %s", h.id, h.operation, code))
	}
	if !h.IsPending() {
		return errs.NewConflictError(fmt.Sprintf("history %s is already decided", h.id))
	}
	return nil
}

func (h *History) Pass(now time.Time) error {
	if err := h.EnsurePendingAt(h.operation); err != nil {
		return err
	}
	passed := true
	h.isPassed = &passed
	h.endAt = &now
	return nil
}

func (h *History) Deny(now time.Time, reason string) error {
	if err := h.EnsurePendingAt(h.operation); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	passed := false
	h.isPassed = &passed
	h.endAt = &now
	h.cancelReason = reason
	return nil
}
