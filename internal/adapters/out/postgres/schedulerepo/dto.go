// Package schedulerepo persists schedules, their checkpoint history and weighing records.
package schedulerepo

import (
	"time"

	"yard/internal/adapters/out/postgres/columns"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleDTO is the row of the schedules table.
type ScheduleDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid"`
	columns.Owner

	DriverUserID         uuid.UUID `gorm:"type:uuid"`
	DriverName           string
	DriverIdentityNumber string

	VehicleID  uuid.UUID  `gorm:"type:uuid"`
	TrailerID  *uuid.UUID `gorm:"type:uuid"`
	TemplateID uuid.UUID  `gorm:"type:uuid"`
	WorkshopID uuid.UUID  `gorm:"type:uuid"`
	StartAt    time.Time
	EndAt      time.Time

	LoadingVolumeKg decimal.Decimal     `gorm:"type:numeric(14,3)"`
	VehicleTareKg   decimal.NullDecimal `gorm:"type:numeric(14,3)"`
	VehicleBruttoKg decimal.NullDecimal `gorm:"type:numeric(14,3)"`
	VehicleNettoKg  decimal.NullDecimal `gorm:"type:numeric(14,3)"`

	CurrentOperation string
	IsActive         bool
	IsUsed           bool
	IsCanceled       bool
	IsExecuted       bool
	ExecutedAt       *time.Time
	CanceledAt       *time.Time
	CancelReason     string

	CanceledBy columns.NullSnapshot `gorm:"embedded;embeddedPrefix:canceled_by_"`
	BookedBy   columns.Snapshot     `gorm:"embedded;embeddedPrefix:booked_by_"`
	CreatedAt  time.Time
}

func (ScheduleDTO) TableName() string {
	return "schedules"
}

func scheduleFromDomain(s *schedule.Schedule) ScheduleDTO {
	d := s.Driver()
	return ScheduleDTO{
		ID:                   s.ID().Bytes(),
		OrderID:              s.OrderID().Bytes(),
		Owner:                columns.FromOwner(s.Owner()),
		DriverUserID:         d.UserID.Bytes(),
		DriverName:           d.Name,
		DriverIdentityNumber: d.IdentityNumber,
		VehicleID:            s.VehicleID().Bytes(),
		TrailerID:            columns.UUIDPtr(s.TrailerID()),
		TemplateID:           s.TemplateID().Bytes(),
		WorkshopID:           s.WorkshopID().Bytes(),
		StartAt:              s.StartAt(),
		EndAt:                s.EndAt(),
		LoadingVolumeKg:      s.LoadingVolume().Decimal(),
		VehicleTareKg:        columns.NullWeight(s.VehicleTare()),
		VehicleBruttoKg:      columns.NullWeight(s.VehicleBrutto()),
		VehicleNettoKg:       columns.NullWeight(s.VehicleNetto()),
		CurrentOperation:     s.CurrentOperation().String(),
		IsActive:             s.IsActive(),
		IsUsed:               s.IsUsed(),
		IsCanceled:           s.IsCanceled(),
		IsExecuted:           s.IsExecuted(),
		ExecutedAt:           s.ExecutedAt(),
		CanceledAt:           s.CanceledAt(),
		CancelReason:         s.CancelReason(),
		CanceledBy:           columns.FromSnapshotPtr(s.CanceledBy()),
		BookedBy:             columns.FromSnapshot(s.BookedBy()),
		CreatedAt:            s.CreatedAt(),
	}
}

func scheduleToDomain(dto ScheduleDTO) (*schedule.Schedule, error) {
	var (
		st  schedule.State
		err error
	)

	if st.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if st.OrderID, err = kernel.UUIDFromBytes(dto.OrderID[:]); err != nil {
		return nil, err
	}
	if st.Owner, err = dto.Owner.ToOwner(); err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverUserID[:])
	if err != nil {
		return nil, err
	}
	st.Driver = schedule.Driver{UserID: driverID, Name: dto.DriverName, IdentityNumber: dto.DriverIdentityNumber}

	if st.VehicleID, err = kernel.UUIDFromBytes(dto.VehicleID[:]); err != nil {
		return nil, err
	}
	if st.TrailerID, err = columns.KernelUUIDPtr(dto.TrailerID); err != nil {
		return nil, err
	}
	if st.TemplateID, err = kernel.UUIDFromBytes(dto.TemplateID[:]); err != nil {
		return nil, err
	}
	if st.WorkshopID, err = kernel.UUIDFromBytes(dto.WorkshopID[:]); err != nil {
		return nil, err
	}
	st.StartAt, st.EndAt = dto.StartAt, dto.EndAt

	if st.LoadingVolume, err = columns.Weight(dto.LoadingVolumeKg); err != nil {
		return nil, err
	}
	if st.VehicleTare, err = columns.WeightPtr(dto.VehicleTareKg); err != nil {
		return nil, err
	}
	if st.VehicleBrutto, err = columns.WeightPtr(dto.VehicleBruttoKg); err != nil {
		return nil, err
	}
	if st.VehicleNetto, err = columns.WeightPtr(dto.VehicleNettoKg); err != nil {
		return nil, err
	}

	if st.CurrentOperation, err = operation.ParseCode(dto.CurrentOperation); err != nil {
		return nil, err
	}
	st.IsActive = dto.IsActive
	st.IsUsed = dto.IsUsed
	st.IsCanceled = dto.IsCanceled
	st.IsExecuted = dto.IsExecuted
	st.ExecutedAt = dto.ExecutedAt
	st.CanceledAt = dto.CanceledAt
	st.CancelReason = dto.CancelReason

	if st.CanceledBy, err = dto.CanceledBy.ToSnapshotPtr(); err != nil {
		return nil, err
	}
	if st.BookedBy, err = dto.BookedBy.ToSnapshot(); err != nil {
		return nil, err
	}
	st.CreatedAt = dto.CreatedAt

	return schedule.RestoreSchedule(st)
}

// HistoryDTO is the row of schedule_histories. IsPassed and EndAt are NULL while pending.
type HistoryDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ScheduleID   uuid.UUID        `gorm:"type:uuid"`
	Operation    string
	Responsible  columns.Snapshot `gorm:"embedded;embeddedPrefix:responsible_"`
	IsPassed     *bool
	StartAt      time.Time
	EndAt        *time.Time
	CancelReason string
}

func (HistoryDTO) TableName() string {
	return "schedule_histories"
}

func historyFromDomain(h *schedule.History) HistoryDTO {
	return HistoryDTO{
		ID:           h.ID().Bytes(),
		ScheduleID:   h.ScheduleID().Bytes(),
		Operation:    h.Operation().String(),
		Responsible:  columns.FromSnapshot(h.Responsible()),
		IsPassed:     h.IsPassed(),
		StartAt:      h.StartAt(),
		EndAt:        h.EndAt(),
		CancelReason: h.CancelReason(),
	}
}

func historyToDomain(dto HistoryDTO) (*schedule.History, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	scheduleID, err := kernel.UUIDFromBytes(dto.ScheduleID[:])
	if err != nil {
		return nil, err
	}
	code, err := operation.ParseCode(dto.Operation)
	if err != nil {
		return nil, err
	}
	responsible, err := dto.Responsible.ToSnapshot()
	if err != nil {
		return nil, err
	}
	return schedule.RestoreHistory(id, scheduleID, code, responsible, dto.IsPassed, dto.StartAt, dto.EndAt, dto.CancelReason)
}

type InitialWeightDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ScheduleID uuid.UUID       `gorm:"type:uuid"`
	HistoryID  uuid.UUID       `gorm:"type:uuid"`
	TareKg     decimal.Decimal `gorm:"type:numeric(14,3)"`
	CreatedAt  time.Time
}

func (InitialWeightDTO) TableName() string {
	return "initial_weights"
}

type ActWeightDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ScheduleID uuid.UUID       `gorm:"type:uuid"`
	HistoryID  uuid.UUID       `gorm:"type:uuid"`
	TareKg     decimal.Decimal `gorm:"type:numeric(14,3)"`
	BruttoKg   decimal.Decimal `gorm:"type:numeric(14,3)"`
	NettoKg    decimal.Decimal `gorm:"type:numeric(14,3)"`
	CreatedAt  time.Time
}

func (ActWeightDTO) TableName() string {
	return "act_weights"
}
