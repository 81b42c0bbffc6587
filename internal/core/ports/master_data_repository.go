package ports

import (
	"context"

	"yard/internal/core/domain/model/fleet"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/organization"
	"yard/internal/core/domain/model/workshop"
)

// TemplateRepository reads workshop slot templates.
type TemplateRepository interface {
	// LockWorkshop locks and returns every template of the workshop, active or not. Bookings
	// of the same workshop serialize on these rows whichever template is active for the day,
	// so that the capacity count and the insert happen atomically.
	LockWorkshop(ctx context.Context, workshopID kernel.UUID) ([]workshop.Template, error)
}

// VehicleRepository reads vehicles and trailers.
type VehicleRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*fleet.Vehicle, error)
}

// EmployeeRepository reads organization drivers.
type EmployeeRepository interface {
	// Find returns nil, nil when userID is not registered with the organization.
	Find(ctx context.Context, organizationID, userID kernel.UUID) (*organization.Employee, error)
}
