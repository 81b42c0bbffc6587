// Package workshoprepo reads workshop slot templates.
package workshoprepo

import (
	"context"
	"time"

	"yard/internal/adapters/out/postgres/pgerr"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/workshop"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TemplateDTO is the row of workshop_schedule_templates. Dates are calendar days.
type TemplateDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkshopID             uuid.UUID `gorm:"type:uuid"`
	DateStart              time.Time `gorm:"type:date"`
	DateEnd                time.Time `gorm:"type:date"`
	StartAt                int
	EndAt                  int
	CarServiceMin          int
	BreakBetweenServiceMin int
	MachineAtOneTime       int
	IsActive               bool
}

func (TemplateDTO) TableName() string {
	return "workshop_schedule_templates"
}

// FromDomain is exported for seeding in tests and the admin tooling.
func FromDomain(t workshop.Template) TemplateDTO {
	return TemplateDTO{
		ID:                     t.ID().Bytes(),
		WorkshopID:             t.WorkshopID().Bytes(),
		DateStart:              t.DateStart(),
		DateEnd:                t.DateEnd(),
		StartAt:                t.StartAt(),
		EndAt:                  t.EndAt(),
		CarServiceMin:          t.CarServiceMin(),
		BreakBetweenServiceMin: t.BreakBetweenServiceMin(),
		MachineAtOneTime:       t.MachineAtOneTime(),
		IsActive:               t.IsActive(),
	}
}

func toDomain(dto TemplateDTO) (workshop.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return workshop.Template{}, err
	}
	workshopID, err := kernel.UUIDFromBytes(dto.WorkshopID[:])
	if err != nil {
		return workshop.Template{}, err
	}

	return workshop.NewTemplate(id, workshopID,
		dto.DateStart, dto.DateEnd,
		dto.StartAt, dto.EndAt,
		dto.CarServiceMin, dto.BreakBetweenServiceMin,
		dto.MachineAtOneTime,
		dto.IsActive,
	)
}

// GormTemplateRepository implements ports.TemplateRepository.
type GormTemplateRepository struct {
	db *gorm.DB
}

func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

func (r *GormTemplateRepository) LockWorkshop(ctx context.Context, workshopID kernel.UUID) ([]workshop.Template, error) {
	if err := workshopID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TemplateDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("date_start").
		Find(&dtos, "workshop_id = ?", workshopID.Bytes()).Error
	if err != nil {
		return nil, pgerr.Translate(err, "workshop", workshopID.String())
	}

	templates := make([]workshop.Template, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
