// Package organizationrepo reads the drivers registered with organizations.
package organizationrepo

import (
	"context"
	"errors"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/organization"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeDTO struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	IdentityNumber string
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

func FromDomain(e organization.Employee) EmployeeDTO {
	return EmployeeDTO{
		OrganizationID: e.OrganizationID().Bytes(),
		UserID:         e.UserID().Bytes(),
		Name:           e.Name(),
		IdentityNumber: e.IdentityNumber(),
	}
}

// GormEmployeeRepository implements ports.EmployeeRepository.
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Find(
	ctx context.Context,
	organizationID, userID kernel.UUID,
) (*organization.Employee, error) {
	if err := errors.Join(organizationID.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID.Bytes(), userID.Bytes()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e, err := organization.NewEmployee(organizationID, userID, dto.Name, dto.IdentityNumber)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
