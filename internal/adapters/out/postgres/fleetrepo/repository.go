// Package fleetrepo reads vehicles and trailers.
package fleetrepo

import (
	"context"

	"yard/internal/adapters/out/postgres/columns"
	"yard/internal/adapters/out/postgres/pgerr"
	"yard/internal/core/domain/model/fleet"
	"yard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VehicleDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	columns.Owner
	PlateNumber    string
	LoadCapacityKg decimal.Decimal `gorm:"type:numeric(14,3)"`
	IsTrailer      bool
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func FromDomain(v *fleet.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:             v.ID().Bytes(),
		Owner:          columns.FromOwner(v.Owner()),
		PlateNumber:    v.PlateNumber(),
		LoadCapacityKg: v.LoadCapacity().Decimal(),
		IsTrailer:      v.IsTrailer(),
	}
}

func toDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	owner, err := dto.Owner.ToOwner()
	if err != nil {
		return nil, err
	}
	capacity, err := columns.Weight(dto.LoadCapacityKg)
	if err != nil {
		return nil, err
	}
	return fleet.NewVehicle(id, owner, dto.PlateNumber, capacity, dto.IsTrailer)
}

// GormVehicleRepository implements ports.VehicleRepository.
type GormVehicleRepository struct {
	db *gorm.DB
}

func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate(err, "vehicle", id.String())
	}
	return toDomain(dto)
}
