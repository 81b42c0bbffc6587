package commands

import (
	"errors"
	"strings"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/services"
	"yard/internal/pkg/guard"
)

var ErrDecideCheckpointCommandIsNotConstructed = errors.New(
	"DecideCheckpointCommand must be created via NewPassCheckpointCommand or NewDenyCheckpointCommand",
)

// DecideCheckpointCommand closes a pending checkpoint. A pass may carry the measured weight;
// a deny carries the reason and, at the final weighing, the reload operation to route to.
//
// Example:
//
//	tare := kernel.Kilograms(14200)
//	cmd, err := NewPassCheckpointCommand(operation.InitialWeighing, historyID, weigher, &tare)
//
//	next := operation.Reloading
//	cmd, err = NewDenyCheckpointCommand(operation.FinalWeighing, historyID, weigher, "overloaded", &next)
type DecideCheckpointCommand struct {
	operation operation.Code
	historyID kernel.UUID
	actor     actor.Actor
	decision  services.Decision

	guard guard.ConstructorGuard
}

func NewPassCheckpointCommand(
	code operation.Code,
	historyID kernel.UUID,
	a actor.Actor,
	weight *kernel.Weight,
) (DecideCheckpointCommand, error) {
	return newDecideCheckpointCommand(code, historyID, a, services.Decision{
		Passed: true,
		Weight: weight,
	})
}

func NewDenyCheckpointCommand(
	code operation.Code,
	historyID kernel.UUID,
	a actor.Actor,
	reason string,
	nextOperation *operation.Code,
) (DecideCheckpointCommand, error) {
	return newDecideCheckpointCommand(code, historyID, a, services.Decision{
		Reason:        strings.TrimSpace(reason),
		NextOperation: nextOperation,
	})
}

// newDecideCheckpointCommand checks the decision shape against the static operation table.
func newDecideCheckpointCommand(
	code operation.Code,
	historyID kernel.UUID,
	a actor.Actor,
	d services.Decision,
) (DecideCheckpointCommand, error) {
	if err := code.Validate(); err != nil {
		return DecideCheckpointCommand{}, err
	}

	machine := services.NewCheckpointMachine(operation.Default())
	if err := errors.Join(
		historyID.Validate(),
		a.Validate(),
		machine.ValidateDecision(code, d),
	); err != nil {
		return DecideCheckpointCommand{}, err
	}

	return DecideCheckpointCommand{
		operation: code,
		historyID: historyID,
		actor:     a,
		decision:  d,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DecideCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrDecideCheckpointCommandIsNotConstructed)
}

func (c DecideCheckpointCommand) Operation() operation.Code {
	return c.operation
}

func (c DecideCheckpointCommand) HistoryID() kernel.UUID {
	return c.historyID
}

func (c DecideCheckpointCommand) Actor() actor.Actor {
	return c.actor
}

func (c DecideCheckpointCommand) Decision() services.Decision {
	return c.decision
}
