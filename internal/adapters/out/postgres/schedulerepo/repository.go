package schedulerepo

import (
	"context"

	"yard/internal/adapters/out/postgres/pgerr"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormScheduleRepository implements ports.ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormScheduleRepository) Add(ctx context.Context, aggregate *schedule.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := scheduleFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "schedule", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormScheduleRepository) Update(ctx context.Context, aggregate *schedule.Schedule) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := scheduleFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ScheduleDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "schedule", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return pgerr.Translate(gorm.ErrRecordNotFound, "schedule", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormScheduleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormScheduleRepository) get(db *gorm.DB, id kernel.UUID) (*schedule.Schedule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduleDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate(err, "schedule", id.String())
	}
	return scheduleToDomain(dto)
}

func (r *GormScheduleRepository) Find(ctx context.Context, spec ports.ScheduleSpec) ([]*schedule.Schedule, error) {
	var dtos []ScheduleDTO
	if err := r.db.WithContext(ctx).Scopes(scopesOf(spec)...).Order("start_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	schedules := make([]*schedule.Schedule, 0, len(dtos))
	for _, dto := range dtos {
		s, err := scheduleToDomain(dto)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// scopesOf translates a ScheduleSpec into gorm scopes.
func scopesOf(spec ports.ScheduleSpec) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if id := spec.OrderID(); id != nil {
		raw := id.Bytes()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("order_id = ?", raw) })
	}
	if id := spec.WorkshopID(); id != nil {
		raw := id.Bytes()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("workshop_id = ?", raw) })
	}
	if from, to := spec.StartRange(); from != nil && to != nil {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("start_at >= ? AND start_at < ?", *from, *to)
		})
	}
	if spec.ActiveOnly() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("is_active") })
	}

	return scopes
}

// GormHistoryRepository implements ports.HistoryRepository.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add relies on the partial unique index over pending rows to reject a second pending row.
func (r *GormHistoryRepository) Add(ctx context.Context, row *schedule.History) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(row)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "schedule history", row.ID().String())
	}
	return nil
}

func (r *GormHistoryRepository) Update(ctx context.Context, row *schedule.History) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := historyFromDomain(row)
	result := r.db.WithContext(ctx).Model(&HistoryDTO{}).
		Where("id = ?", dto.ID).
		Select("is_passed", "end_at", "cancel_reason").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "schedule history", row.ID().String())
	}
	if result.RowsAffected == 0 {
		return pgerr.Translate(gorm.ErrRecordNotFound, "schedule history", row.ID().String())
	}
	return nil
}

func (r *GormHistoryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.History, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HistoryDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.Translate(err, "schedule history", id.String())
	}
	return historyToDomain(dto)
}

func (r *GormHistoryRepository) HasPending(ctx context.Context, scheduleID kernel.UUID, code operation.Code) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&HistoryDTO{}).
		Where("schedule_id = ? AND operation = ? AND is_passed IS NULL", scheduleID.Bytes(), code.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormWeightRepository implements ports.WeightRepository.
type GormWeightRepository struct {
	db *gorm.DB
}

func NewGormWeightRepository(db *gorm.DB) *GormWeightRepository {
	return &GormWeightRepository{db: db}
}

func (r *GormWeightRepository) AddInitial(ctx context.Context, w schedule.InitialWeight) error {
	dto := InitialWeightDTO{
		ID:         w.ID.Bytes(),
		ScheduleID: w.ScheduleID.Bytes(),
		HistoryID:  w.HistoryID.Bytes(),
		TareKg:     w.Tare.Decimal(),
		CreatedAt:  w.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "initial weight", w.ID.String())
	}
	return nil
}

func (r *GormWeightRepository) AddAct(ctx context.Context, w schedule.ActWeight) error {
	dto := ActWeightDTO{
		ID:         w.ID.Bytes(),
		ScheduleID: w.ScheduleID.Bytes(),
		HistoryID:  w.HistoryID.Bytes(),
		TareKg:     w.Tare.Decimal(),
		BruttoKg:   w.Brutto.Decimal(),
		NettoKg:    w.Netto.Decimal(),
		CreatedAt:  w.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "act weight", w.ID.String())
	}
	return nil
}
