package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"
	"yard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ledgerRow struct {
	ID             uuid.UUID       `db:"id"`
	OwnerUserID    uuid.NullUUID   `db:"owner_user_id"`
	OwnerOrgID     uuid.NullUUID   `db:"owner_organization_id"`
	Status         int             `db:"status"`
	IsPaid         bool            `db:"is_paid"`
	QuanKg         decimal.Decimal `db:"quan"`
	QuanBookedKg   decimal.Decimal `db:"quan_booked"`
	QuanReleasedKg decimal.Decimal `db:"quan_released"`
}

type ledgerEntryRow struct {
	ID              uuid.UUID           `db:"id"`
	StartAt         time.Time           `db:"start_at"`
	State           string              `db:"state"`
	LoadingVolumeKg decimal.Decimal     `db:"loading_volume_kg"`
	NettoKg         decimal.NullDecimal `db:"vehicle_netto_kg"`
}

type GetOrderLedgerQueryHandler struct {
	db *sqlx.DB
}

func NewGetOrderLedgerQueryHandler(db *sqlx.DB) GetOrderLedgerQueryHandler {
	return GetOrderLedgerQueryHandler{db: db}
}

func (h GetOrderLedgerQueryHandler) Handle(ctx context.Context, query GetOrderLedgerQuery) (*GetOrderLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	orderID := query.OrderID().String()

	var row ledgerRow
	err := h.db.GetContext(ctx, &row, `
		SELECT id, owner_user_id, owner_organization_id, status, is_paid, quan, quan_booked, quan_released
		FROM orders
		WHERE id = $1
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return nil, err
	}

	var entries []ledgerEntryRow
	err = h.db.SelectContext(ctx, &entries, `
		SELECT
			id,
			start_at,
			CASE
				WHEN is_executed THEN 'executed'
				WHEN is_canceled THEN 'canceled'
				ELSE 'active'
			END AS state,
			loading_volume_kg,
			vehicle_netto_kg
		FROM schedules
		WHERE order_id = $1
		ORDER BY start_at, id
	`, orderID)
	if err != nil {
		return nil, err
	}

	resp := &GetOrderLedgerQueryResponse{
		OrderID:        query.OrderID(),
		Status:         order.Status(row.Status).String(),
		IsPaid:         row.IsPaid,
		QuanKg:         row.QuanKg,
		QuanBookedKg:   row.QuanBookedKg,
		QuanReleasedKg: row.QuanReleasedKg,
		QuanLeftKg:     row.QuanKg.Sub(row.QuanBookedKg).Sub(row.QuanReleasedKg),
		Entries:        make([]OrderLedgerEntry, 0, len(entries)),
	}
	if resp.Owner, err = ownerOf(row.OwnerUserID, row.OwnerOrgID); err != nil {
		return nil, err
	}

	for _, e := range entries {
		scheduleID, idErr := kernel.UUIDFromBytes(e.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.Entries = append(resp.Entries, OrderLedgerEntry{
			ScheduleID:      scheduleID,
			StartAt:         e.StartAt,
			State:           e.State,
			LoadingVolumeKg: e.LoadingVolumeKg,
			NettoKg:         nullDecimal(e.NettoKg),
		})
	}
	return resp, nil
}
