// Package ports defines the contracts between the yard core and its infrastructure.
// Repositories returned by a UnitOfWork are bound to its transaction.
package ports

import (
	"context"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A duplicate id is a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment and ledger fields of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Every ledger recompute must hold this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOverdueUnpaid returns up to limit unpaid orders in Created status created before
	// the deadline that have no active schedule, locked for update.
	//
	// Example:
	//   orders, err := repo.GetOverdueUnpaid(ctx, now.Add(-ttl), 100)
	GetOverdueUnpaid(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error)
}
