// Package orderrepo persists order aggregates and their ledger columns.
package orderrepo

import (
	"time"

	"yard/internal/adapters/out/postgres/columns"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	columns.Owner
	WorkshopID    uuid.UUID       `gorm:"type:uuid"`
	Quan          decimal.Decimal `gorm:"type:numeric(14,3)"`
	QuanBooked    decimal.Decimal `gorm:"type:numeric(14,3)"`
	QuanReleased  decimal.Decimal `gorm:"type:numeric(14,3)"`
	IsPaid        bool
	TransactionID string
	Zakaz         string
	Status        int `gorm:"type:smallint"`
	CreatedAt     time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID().Bytes(),
		Owner:         columns.FromOwner(o.Owner()),
		WorkshopID:    o.WorkshopID().Bytes(),
		Quan:          o.Quan().Decimal(),
		QuanBooked:    o.QuanBooked().Decimal(),
		QuanReleased:  o.QuanReleased().Decimal(),
		IsPaid:        o.IsPaid(),
		TransactionID: o.TransactionID(),
		Zakaz:         o.Zakaz(),
		Status:        int(o.Status()),
		CreatedAt:     o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	owner, err := dto.Owner.ToOwner()
	if err != nil {
		return nil, err
	}
	workshopID, err := kernel.UUIDFromBytes(dto.WorkshopID[:])
	if err != nil {
		return nil, err
	}

	quan, err := columns.Weight(dto.Quan)
	if err != nil {
		return nil, err
	}
	booked, err := columns.Weight(dto.QuanBooked)
	if err != nil {
		return nil, err
	}
	released, err := columns.Weight(dto.QuanReleased)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, owner, workshopID,
		quan, booked, released,
		dto.IsPaid, dto.TransactionID, dto.Zakaz,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
