// Package commands contains business operations that modify system state.
// All commands follow a consistent pattern: constructor validation, one transaction per
// command, checks before writes and a deferred rollback on every exit path.
package commands

import (
	"context"

	"yard/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers. Each handler
// asks only for the repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	WeightRepoFactory interface {
		WeightRepository() ports.WeightRepository
	}

	MasterDataRepoFactory interface {
		TemplateRepository() ports.TemplateRepository
		VehicleRepository() ports.VehicleRepository
		EmployeeRepository() ports.EmployeeRepository
	}

	// OrderUoW manages transactions for order-only operations: purchase, payment, sweep.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BookingUoW manages the booking transaction: order and workshop template locks, the capacity
	// count, the schedule insert and the ledger recompute.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   templates, err := uow.TemplateRepository().LockWorkshop(ctx, workshopID)
	//   // ... checks, insert, recompute
	//
	//   err = uow.Commit(ctx)
	BookingUoW interface {
		TxManager
		OrderRepoFactory
		ScheduleRepoFactory
		MasterDataRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// CheckpointUoW manages take and decide transactions.
	CheckpointUoW interface {
		TxManager
		OrderRepoFactory
		ScheduleRepoFactory
		HistoryRepoFactory
		WeightRepoFactory
	}

	CheckpointUoWFactory interface {
		Create() CheckpointUoW
	}
)
