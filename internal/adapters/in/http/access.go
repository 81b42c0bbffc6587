package http

import (
	"slices"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type capability string

const (
	capSlotsRead          capability = "slots.read"
	capSchedulesBook      capability = "schedules.book"
	capSchedulesRead      capability = "schedules.read"
	capCheckpointsOperate capability = "checkpoints.operate"
	capOrdersRead         capability = "orders.read"
	capOrdersManage       capability = "orders.manage"
)

// access maps roles to what they may do. Admin may do everything.
var access = map[actor.Role][]capability{
	actor.RoleClient:   {capSlotsRead, capSchedulesBook, capSchedulesRead, capOrdersRead},
	actor.RoleSecurity: {capSlotsRead, capSchedulesRead, capCheckpointsOperate},
	actor.RoleWeigher:  {capSlotsRead, capSchedulesRead, capCheckpointsOperate},
	actor.RoleLoader:   {capSlotsRead, capSchedulesRead, capCheckpointsOperate},
}

func allowed(role actor.Role, c capability) bool {
	if role == actor.RoleAdmin {
		return true
	}
	return slices.Contains(access[role], c)
}

// requires rejects actors whose role lacks c. It runs after actorFromHeaders.
func requires(c capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			a, err := actorOf(ctx)
			if err != nil {
				return err
			}
			if !allowed(a.Role(), c) {
				return errs.NewForbiddenError(string(c))
			}
			return next(ctx)
		}
	}
}

// ensureReadable keeps clients away from other owners' orders and schedules.
func ensureReadable(a actor.Actor, owner kernel.Owner, what string) error {
	if a.Role() == actor.RoleClient && !a.Owns(owner) {
		return errs.NewForbiddenError("read " + what)
	}
	return nil
}
