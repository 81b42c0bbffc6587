package queries

import (
	"context"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// historyRow is scanned by sqlx through the db tags.
type historyRow struct {
	ID              uuid.UUID           `db:"id"`
	Operation       string              `db:"operation"`
	ResponsibleID   uuid.UUID           `db:"responsible_id"`
	ResponsibleName string              `db:"responsible_name"`
	ResponsibleRole string              `db:"responsible_role"`
	IsPassed        *bool               `db:"is_passed"`
	StartAt         time.Time           `db:"start_at"`
	EndAt           *time.Time          `db:"end_at"`
	CancelReason    string              `db:"cancel_reason"`
	TareKg          decimal.NullDecimal `db:"tare_kg"`
	BruttoKg        decimal.NullDecimal `db:"brutto_kg"`
	NettoKg         decimal.NullDecimal `db:"netto_kg"`
}

type GetScheduleHistoryQueryHandler struct {
	db *sqlx.DB
}

func NewGetScheduleHistoryQueryHandler(db *sqlx.DB) GetScheduleHistoryQueryHandler {
	return GetScheduleHistoryQueryHandler{db: db}
}

// Handle returns NotFound for an unknown schedule and an empty slice for one nobody has
// taken yet.
func (h GetScheduleHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetScheduleHistoryQuery,
) ([]GetScheduleHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	scheduleID := query.ScheduleID().String()

	var exists bool
	if err := h.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM schedules WHERE id = $1)`, scheduleID); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("schedule", query.ScheduleID())
	}

	var rows []historyRow
	err := h.db.SelectContext(ctx, &rows, `
		SELECT
			h.id,
			h.operation,
			h.responsible_id,
			h.responsible_name,
			h.responsible_role,
			h.is_passed,
			h.start_at,
			h.end_at,
			h.cancel_reason,
			COALESCE(aw.tare_kg, iw.tare_kg) AS tare_kg,
			aw.brutto_kg,
			aw.netto_kg
		FROM schedule_histories h
		LEFT JOIN initial_weights iw ON iw.history_id = h.id
		LEFT JOIN act_weights aw ON aw.history_id = h.id
		WHERE h.schedule_id = $1
		ORDER BY h.start_at, h.id
	`, scheduleID)
	if err != nil {
		return nil, err
	}

	history := make([]GetScheduleHistoryQueryResponse, 0, len(rows))
	for _, r := range rows {
		id, idErr := kernel.UUIDFromBytes(r.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		responsibleID, idErr := kernel.UUIDFromBytes(r.ResponsibleID[:])
		if idErr != nil {
			return nil, idErr
		}

		history = append(history, GetScheduleHistoryQueryResponse{
			ID:              id,
			Operation:       r.Operation,
			ResponsibleID:   responsibleID,
			ResponsibleName: r.ResponsibleName,
			ResponsibleRole: r.ResponsibleRole,
			IsPassed:        r.IsPassed,
			StartAt:         r.StartAt,
			EndAt:           r.EndAt,
			CancelReason:    r.CancelReason,
			TareKg:          nullDecimal(r.TareKg),
			BruttoKg:        nullDecimal(r.BruttoKg),
			NettoKg:         nullDecimal(r.NettoKg),
		})
	}
	return history, nil
}
