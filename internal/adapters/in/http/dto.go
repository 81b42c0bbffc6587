package http

import (
	"time"

	"yard/internal/core/application/usecases/queries"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"

	"github.com/shopspring/decimal"
)

type bookIndividualRequest struct {
	OrderID    string    `json:"order_id"    validate:"required,uuid"`
	WorkshopID string    `json:"workshop_id" validate:"required,uuid"`
	VehicleID  string    `json:"vehicle_id"  validate:"required,uuid"`
	TrailerID  *string   `json:"trailer_id"  validate:"omitempty,uuid"`
	StartAt    time.Time `json:"start_at"    validate:"required"`
}

type bookLegalRequest struct {
	bookIndividualRequest
	DriverID *string `json:"driver_id" validate:"omitempty,uuid"`
}

type decisionRequest struct {
	Passed        bool     `json:"passed"`
	Reason        string   `json:"reason"         validate:"max=500"`
	WeightKg      *float64 `json:"weight_kg"      validate:"omitempty,gt=0"`
	NextOperation *string  `json:"next_operation" validate:"omitempty,oneof=reloading tare_reweighing"`
}

type createOrderRequest struct {
	ID                  *string `json:"id"                    validate:"omitempty,uuid"`
	OwnerUserID         *string `json:"owner_user_id"         validate:"omitempty,uuid"`
	OwnerOrganizationID *string `json:"owner_organization_id" validate:"omitempty,uuid"`
	WorkshopID          string  `json:"workshop_id"           validate:"required,uuid"`
	QuanKg              float64 `json:"quan_kg"               validate:"gt=0"`
	Zakaz               string  `json:"zakaz"                 validate:"max=64"`
}

type paymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

type slotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	FreeSpace int       `json:"free_space"`
}

type scheduleResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	WorkshopID       string     `json:"workshop_id"`
	TemplateID       string     `json:"template_id"`
	VehicleID        string     `json:"vehicle_id"`
	TrailerID        *string    `json:"trailer_id"`
	DriverUserID     string     `json:"driver_user_id"`
	DriverName       string     `json:"driver_name"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            time.Time  `json:"end_at"`
	LoadingVolumeKg  float64    `json:"loading_volume_kg"`
	VehicleTareKg    *float64   `json:"vehicle_tare_kg"`
	VehicleBruttoKg  *float64   `json:"vehicle_brutto_kg"`
	VehicleNettoKg   *float64   `json:"vehicle_netto_kg"`
	CurrentOperation string     `json:"current_operation"`
	IsActive         bool       `json:"is_active"`
	IsUsed           bool       `json:"is_used"`
	IsCanceled       bool       `json:"is_canceled"`
	IsExecuted       bool       `json:"is_executed"`
	ExecutedAt       *time.Time `json:"executed_at"`
	CanceledAt       *time.Time `json:"canceled_at"`
	CancelReason     string     `json:"cancel_reason"`
}

type historyResponse struct {
	ID              string     `json:"id"`
	Operation       string     `json:"operation"`
	ResponsibleID   string     `json:"responsible_id"`
	ResponsibleName string     `json:"responsible_name"`
	ResponsibleRole string     `json:"responsible_role"`
	IsPassed        *bool      `json:"is_passed"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           *time.Time `json:"end_at"`
	CancelReason    string     `json:"cancel_reason"`
	TareKg          *float64   `json:"tare_kg"`
	BruttoKg        *float64   `json:"brutto_kg"`
	NettoKg         *float64   `json:"netto_kg"`
}

type orderResponse struct {
	ID                  string    `json:"id"`
	OwnerUserID         *string   `json:"owner_user_id"`
	OwnerOrganizationID *string   `json:"owner_organization_id"`
	WorkshopID          string    `json:"workshop_id"`
	Status              string    `json:"status"`
	IsPaid              bool      `json:"is_paid"`
	TransactionID       string    `json:"transaction_id"`
	Zakaz               string    `json:"zakaz"`
	QuanKg              float64   `json:"quan_kg"`
	QuanBookedKg        float64   `json:"quan_booked_kg"`
	QuanReleasedKg      float64   `json:"quan_released_kg"`
	QuanLeftKg          float64   `json:"quan_left_kg"`
	CreatedAt           time.Time `json:"created_at"`
}

type ledgerEntryResponse struct {
	ScheduleID      string    `json:"schedule_id"`
	StartAt         time.Time `json:"start_at"`
	State           string    `json:"state"`
	LoadingVolumeKg float64   `json:"loading_volume_kg"`
	NettoKg         *float64  `json:"netto_kg"`
}

type ledgerResponse struct {
	OrderID        string                `json:"order_id"`
	Status         string                `json:"status"`
	IsPaid         bool                  `json:"is_paid"`
	QuanKg         float64               `json:"quan_kg"`
	QuanBookedKg   float64               `json:"quan_booked_kg"`
	QuanReleasedKg float64               `json:"quan_released_kg"`
	QuanLeftKg     float64               `json:"quan_left_kg"`
	Entries        []ledgerEntryResponse `json:"entries"`
}

type operationResponse struct {
	Code       string   `json:"code"`
	Title      string   `json:"title"`
	Role       string   `json:"role"`
	IsFirst    bool     `json:"is_first"`
	IsLast     bool     `json:"is_last"`
	Prev       string   `json:"prev,omitempty"`
	Next       string   `json:"next,omitempty"`
	CanCancel  bool     `json:"can_cancel"`
	IsWeighing bool     `json:"is_weighing"`
	IsReload   bool     `json:"is_reload"`
	RejectTo   []string `json:"reject_to,omitempty"`
}

func toScheduleResponse(s *schedule.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:               s.ID().String(),
		OrderID:          s.OrderID().String(),
		WorkshopID:       s.WorkshopID().String(),
		TemplateID:       s.TemplateID().String(),
		VehicleID:        s.VehicleID().String(),
		TrailerID:        uuidString(s.TrailerID()),
		DriverUserID:     s.Driver().UserID.String(),
		DriverName:       s.Driver().Name,
		StartAt:          s.StartAt(),
		EndAt:            s.EndAt(),
		LoadingVolumeKg:  s.LoadingVolume().Float64(),
		VehicleTareKg:    weightFloat(s.VehicleTare()),
		VehicleBruttoKg:  weightFloat(s.VehicleBrutto()),
		VehicleNettoKg:   weightFloat(s.VehicleNetto()),
		CurrentOperation: s.CurrentOperation().String(),
		IsActive:         s.IsActive(),
		IsUsed:           s.IsUsed(),
		IsCanceled:       s.IsCanceled(),
		IsExecuted:       s.IsExecuted(),
		ExecutedAt:       s.ExecutedAt(),
		CanceledAt:       s.CanceledAt(),
		CancelReason:     s.CancelReason(),
	}
}

func scheduleViewResponse(v *queries.GetScheduleQueryResponse) scheduleResponse {
	return scheduleResponse{
		ID:               v.ID.String(),
		OrderID:          v.OrderID.String(),
		WorkshopID:       v.WorkshopID.String(),
		TemplateID:       v.TemplateID.String(),
		VehicleID:        v.VehicleID.String(),
		TrailerID:        uuidString(v.TrailerID),
		DriverUserID:     v.DriverUserID.String(),
		DriverName:       v.DriverName,
		StartAt:          v.StartAt,
		EndAt:            v.EndAt,
		LoadingVolumeKg:  v.LoadingVolumeKg.InexactFloat64(),
		VehicleTareKg:    decimalFloat(v.VehicleTareKg),
		VehicleBruttoKg:  decimalFloat(v.VehicleBruttoKg),
		VehicleNettoKg:   decimalFloat(v.VehicleNettoKg),
		CurrentOperation: v.CurrentOperation,
		IsActive:         v.IsActive,
		IsUsed:           v.IsUsed,
		IsCanceled:       v.IsCanceled,
		IsExecuted:       v.IsExecuted,
		ExecutedAt:       v.ExecutedAt,
		CanceledAt:       v.CanceledAt,
		CancelReason:     v.CancelReason,
	}
}

func toHistoryResponse(h *schedule.History) historyResponse {
	who := h.Responsible()
	return historyResponse{
		ID:              h.ID().String(),
		Operation:       h.Operation().String(),
		ResponsibleID:   who.ID.String(),
		ResponsibleName: who.Name,
		ResponsibleRole: who.Role.String(),
		IsPassed:        h.IsPassed(),
		StartAt:         h.StartAt(),
		EndAt:           h.EndAt(),
		CancelReason:    h.CancelReason(),
	}
}

func historyViewResponse(v queries.GetScheduleHistoryQueryResponse) historyResponse {
	return historyResponse{
		ID:              v.ID.String(),
		Operation:       v.Operation,
		ResponsibleID:   v.ResponsibleID.String(),
		ResponsibleName: v.ResponsibleName,
		ResponsibleRole: v.ResponsibleRole,
		IsPassed:        v.IsPassed,
		StartAt:         v.StartAt,
		EndAt:           v.EndAt,
		CancelReason:    v.CancelReason,
		TareKg:          decimalFloat(v.TareKg),
		BruttoKg:        decimalFloat(v.BruttoKg),
		NettoKg:         decimalFloat(v.NettoKg),
	}
}

func toOrderResponse(o *order.Order) orderResponse {
	owner := o.Owner()
	return orderResponse{
		ID:                  o.ID().String(),
		OwnerUserID:         uuidString(owner.UserID()),
		OwnerOrganizationID: uuidString(owner.OrganizationID()),
		WorkshopID:          o.WorkshopID().String(),
		Status:              o.Status().String(),
		IsPaid:              o.IsPaid(),
		TransactionID:       o.TransactionID(),
		Zakaz:               o.Zakaz(),
		QuanKg:              o.Quan().Float64(),
		QuanBookedKg:        o.QuanBooked().Float64(),
		QuanReleasedKg:      o.QuanReleased().Float64(),
		QuanLeftKg:          o.QuanLeft().Float64(),
		CreatedAt:           o.CreatedAt(),
	}
}

func toLedgerResponse(v *queries.GetOrderLedgerQueryResponse) ledgerResponse {
	entries := make([]ledgerEntryResponse, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = ledgerEntryResponse{
			ScheduleID:      e.ScheduleID.String(),
			StartAt:         e.StartAt,
			State:           e.State,
			LoadingVolumeKg: e.LoadingVolumeKg.InexactFloat64(),
			NettoKg:         decimalFloat(e.NettoKg),
		}
	}
	return ledgerResponse{
		OrderID:        v.OrderID.String(),
		Status:         v.Status,
		IsPaid:         v.IsPaid,
		QuanKg:         v.QuanKg.InexactFloat64(),
		QuanBookedKg:   v.QuanBookedKg.InexactFloat64(),
		QuanReleasedKg: v.QuanReleasedKg.InexactFloat64(),
		QuanLeftKg:     v.QuanLeftKg.InexactFloat64(),
		Entries:        entries,
	}
}

func toOperationResponse(op operation.Operation) operationResponse {
	resp := operationResponse{
		Code:       op.Code.String(),
		Title:      op.Title,
		Role:       op.Role.String(),
		IsFirst:    op.IsFirst,
		IsLast:     op.IsLast,
		CanCancel:  op.CanCancel,
		IsWeighing: op.IsWeighing,
		IsReload:   op.IsReload,
	}
	if op.Prev != operation.Unknown {
		resp.Prev = op.Prev.String()
	}
	if op.Next != operation.Unknown {
		resp.Next = op.Next.String()
	}
	for _, code := range op.RejectTo {
		resp.RejectTo = append(resp.RejectTo, code.String())
	}
	return resp
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func weightFloat(w *kernel.Weight) *float64 {
	if w == nil {
		return nil
	}
	f := w.Float64()
	return &f
}

func decimalFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
