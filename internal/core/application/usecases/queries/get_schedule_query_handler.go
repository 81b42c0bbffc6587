package queries

import (
	"context"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetScheduleQueryHandler struct {
	db *gorm.DB
}

func NewGetScheduleQueryHandler(db *gorm.DB) GetScheduleQueryHandler {
	return GetScheduleQueryHandler{db: db}
}

func (h GetScheduleQueryHandler) Handle(ctx context.Context, query GetScheduleQuery) (*GetScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_id, owner_user_id, owner_organization_id,
			workshop_id, template_id, vehicle_id, trailer_id,
			driver_user_id, driver_name,
			start_at, end_at,
			loading_volume_kg, vehicle_tare_kg, vehicle_brutto_kg, vehicle_netto_kg,
			current_operation, is_active, is_used, is_canceled, is_executed,
			executed_at, canceled_at, cancel_reason, created_at
		FROM schedules
		WHERE id = ?
	`, query.ScheduleID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("schedule", query.ScheduleID())
	}

	var (
		resp                                GetScheduleQueryResponse
		id, orderID, workshopID, templateID uuid.UUID
		vehicleID, driverID                 uuid.UUID
		ownerUserID, ownerOrgID, trailerID  uuid.NullUUID
		tare, brutto, netto                 decimal.NullDecimal
	)
	err = rows.Scan(
		&id, &orderID, &ownerUserID, &ownerOrgID,
		&workshopID, &templateID, &vehicleID, &trailerID,
		&driverID, &resp.DriverName,
		&resp.StartAt, &resp.EndAt,
		&resp.LoadingVolumeKg, &tare, &brutto, &netto,
		&resp.CurrentOperation, &resp.IsActive, &resp.IsUsed, &resp.IsCanceled, &resp.IsExecuted,
		&resp.ExecutedAt, &resp.CanceledAt, &resp.CancelReason, &resp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if resp.Owner, err = ownerOf(ownerUserID, ownerOrgID); err != nil {
		return nil, err
	}
	if resp.TrailerID, err = nullUUID(trailerID); err != nil {
		return nil, err
	}
	for dst, src := range map[*kernel.UUID]uuid.UUID{
		&resp.ID:           id,
		&resp.OrderID:      orderID,
		&resp.WorkshopID:   workshopID,
		&resp.TemplateID:   templateID,
		&resp.VehicleID:    vehicleID,
		&resp.DriverUserID: driverID,
	} {
		if *dst, err = kernel.UUIDFromBytes(src[:]); err != nil {
			return nil, err
		}
	}
	resp.VehicleTareKg = nullDecimal(tare)
	resp.VehicleBruttoKg = nullDecimal(brutto)
	resp.VehicleNettoKg = nullDecimal(netto)

	return &resp, nil
}

func ownerOf(userID, organizationID uuid.NullUUID) (kernel.Owner, error) {
	user, err := nullUUID(userID)
	if err != nil {
		return kernel.Owner{}, err
	}
	org, err := nullUUID(organizationID)
	if err != nil {
		return kernel.Owner{}, err
	}
	return kernel.RestoreOwner(user, org)
}

func nullUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
