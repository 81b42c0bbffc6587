package commands

import (
	"errors"
	"time"

	"yard/internal/pkg/errs"
	"yard/internal/pkg/guard"
)

var ErrFailOverdueOrdersCommandIsNotConstructed = errors.New(
	"FailOverdueOrdersCommand must be created via NewFailOverdueOrdersCommand constructor",
)

// Bounds on how many orders a single sweep fails.
const (
	DefaultOverdueBatch = 100
	maxOverdueBatch     = 1000
)

// FailOverdueOrdersCommand marks unpaid orders older than the payment TTL as failed.
// It is issued by the periodic sweep and never touches paid orders or their schedules.
//
// Example:
//
//	cmd, err := NewFailOverdueOrdersCommand(24*time.Hour, DefaultOverdueBatch)
//	handler := NewFailOverdueOrdersCommandHandler(uowFactory, clock)
//	failed, err := handler.Handle(ctx, cmd)
type FailOverdueOrdersCommand struct {
	ttl   time.Duration
	limit int

	guard guard.ConstructorGuard
}

func NewFailOverdueOrdersCommand(ttl time.Duration, limit int) (FailOverdueOrdersCommand, error) {
	var ttlErr, limitErr error
	if ttl <= 0 {
		ttlErr = errs.NewValueIsInvalidError("payment_ttl")
	}
	if limit <= 0 || limit > maxOverdueBatch {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOverdueBatch)
	}
	if err := errors.Join(ttlErr, limitErr); err != nil {
		return FailOverdueOrdersCommand{}, err
	}

	return FailOverdueOrdersCommand{
		ttl:   ttl,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c FailOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFailOverdueOrdersCommandIsNotConstructed)
}

func (c FailOverdueOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c FailOverdueOrdersCommand) Limit() int {
	return c.limit
}
