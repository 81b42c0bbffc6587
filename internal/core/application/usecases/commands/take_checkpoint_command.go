package commands

import (
	"errors"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/pkg/guard"
)

var ErrTakeCheckpointCommandIsNotConstructed = errors.New(
	"TakeCheckpointCommand must be created via NewTakeCheckpointCommand constructor",
)

// TakeCheckpointCommand opens a pending checkpoint for a schedule on behalf of the operator
// working that checkpoint.
type TakeCheckpointCommand struct {
	operation  operation.Code
	scheduleID kernel.UUID
	actor      actor.Actor

	guard guard.ConstructorGuard
}

func NewTakeCheckpointCommand(code operation.Code, scheduleID kernel.UUID, a actor.Actor) (TakeCheckpointCommand, error) {
	if err := errors.Join(code.Validate(), scheduleID.Validate(), a.Validate()); err != nil {
		return TakeCheckpointCommand{}, err
	}

	return TakeCheckpointCommand{
		operation:  code,
		scheduleID: scheduleID,
		actor:      a,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TakeCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrTakeCheckpointCommandIsNotConstructed)
}

func (c TakeCheckpointCommand) Operation() operation.Code {
	return c.operation
}

func (c TakeCheckpointCommand) ScheduleID() kernel.UUID {
	return c.scheduleID
}

func (c TakeCheckpointCommand) Actor() actor.Actor {
	return c.actor
}
