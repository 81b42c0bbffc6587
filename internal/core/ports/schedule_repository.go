package ports

import (
	"context"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"
)

// ScheduleRepository defines the persistence contract for schedule aggregates.
type ScheduleRepository interface {
	Add(ctx context.Context, aggregate *schedule.Schedule) error
	Update(ctx context.Context, aggregate *schedule.Schedule) error
	Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error)

	// GetForUpdate locks the schedule row; take and decide serialize on it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error)

	// Find returns every schedule matching spec ordered by start_at.
	Find(ctx context.Context, spec ScheduleSpec) ([]*schedule.Schedule, error)
}

// HistoryRepository stores the append-only checkpoint trail.
type HistoryRepository interface {
	// Add stores a pending row. A second pending row for the same schedule and operation
	// is a ConflictError.
	Add(ctx context.Context, row *schedule.History) error

	// Update closes a pending row.
	Update(ctx context.Context, row *schedule.History) error

	// GetForUpdate locks the history row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.History, error)

	HasPending(ctx context.Context, scheduleID kernel.UUID, code operation.Code) (bool, error)
}

// WeightRepository stores weighing records.
type WeightRepository interface {
	AddInitial(ctx context.Context, w schedule.InitialWeight) error
	AddAct(ctx context.Context, w schedule.ActWeight) error
}
