package queries

import (
	"context"
	"time"

	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/workshop"
	"yard/internal/core/domain/services"
	"yard/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableSlotsQueryHandler resolves the active template of the day and generates its
// slots minus the machines held by active schedules.
type GetAvailableSlotsQueryHandler struct {
	db    *gorm.DB
	slots services.SlotGenerator
	clock ports.Clock
}

func NewGetAvailableSlotsQueryHandler(db *gorm.DB, slots services.SlotGenerator, clock ports.Clock) GetAvailableSlotsQueryHandler {
	return GetAvailableSlotsQueryHandler{db: db, slots: slots, clock: clock}
}

// Handle returns the slots that still have a free machine. Full slots are left out.
func (h GetAvailableSlotsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableSlotsQuery,
) ([]GetAvailableSlotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	templates, err := h.templatesOf(ctx, query.WorkshopID())
	if err != nil {
		return nil, err
	}

	day := query.Date().In(h.slots.Location())
	tmpl, err := services.SelectActiveTemplate(query.WorkshopID(), day, templates)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	occupied, err := h.occupiedStarts(ctx, tmpl.WorkshopID(), dayStart)
	if err != nil {
		return nil, err
	}

	generated, err := h.slots.Generate(tmpl, dayStart, h.clock.Now(), occupied)
	if err != nil {
		return nil, err
	}

	slots := make([]GetAvailableSlotsQueryResponse, 0, len(generated))
	for _, s := range generated {
		slots = append(slots, GetAvailableSlotsQueryResponse{
			Start:     s.Start,
			End:       s.End,
			FreeSpace: s.FreeSpace,
		})
	}
	return slots, nil
}

func (h GetAvailableSlotsQueryHandler) templatesOf(ctx context.Context, workshopID kernel.UUID) ([]workshop.Template, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			date_start,
			date_end,
			start_at,
			end_at,
			car_service_min,
			break_between_service_min,
			machine_at_one_time,
			is_active
		FROM workshop_schedule_templates
		WHERE workshop_id = ?
		ORDER BY date_start
	`, workshopID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []workshop.Template
	for rows.Next() {
		var (
			id                             uuid.UUID
			dateStart, dateEnd             time.Time
			startAt, endAt                 int
			serviceMin, breakMin, machines int
			isActive                       bool
		)
		if err = rows.Scan(&id, &dateStart, &dateEnd, &startAt, &endAt, &serviceMin, &breakMin, &machines, &isActive); err != nil {
			return nil, err
		}

		templateID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		t, tErr := workshop.NewTemplate(templateID, workshopID, dateStart, dateEnd,
			startAt, endAt, serviceMin, breakMin, machines, isActive)
		if tErr != nil {
			return nil, tErr
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// occupiedStarts counts every active visit of the workshop on the day, whichever template it
// was booked under.
func (h GetAvailableSlotsQueryHandler) occupiedStarts(ctx context.Context, workshopID kernel.UUID, dayStart time.Time) ([]time.Time, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT start_at
		FROM schedules
		WHERE workshop_id = ? AND is_active AND start_at >= ? AND start_at < ?
	`, workshopID.Bytes(), dayStart, dayStart.AddDate(0, 0, 1)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var start time.Time
		if err = rows.Scan(&start); err != nil {
			return nil, err
		}
		starts = append(starts, start)
	}
	return starts, rows.Err()
}
