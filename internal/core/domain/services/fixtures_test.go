package services_test

import (
	"testing"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/fleet"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/order"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/domain/model/workshop"

	"github.com/stretchr/testify/require"
)

var almaty = time.FixedZone("Asia/Almaty", 5*60*60)

func newActor(t *testing.T, role actor.Role, userType actor.UserType, orgs ...kernel.UUID) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), string(role)+" user", "900101300123", role, userType, orgs)
	require.NoError(t, err)
	return a
}

func newPaidOrder(t *testing.T, owner kernel.Owner, workshopID kernel.UUID, quan int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), owner, workshopID, kernel.Kilograms(quan), "", time.Now())
	require.NoError(t, err)
	require.NoError(t, o.RecordPayment("kaspi-"+o.ID().String()))
	return o
}

func newVehicle(t *testing.T, owner kernel.Owner, capacity int64, trailer bool) *fleet.Vehicle {
	t.Helper()
	v, err := fleet.NewVehicle(kernel.NewUUID(), owner, "777AAA02", kernel.Kilograms(capacity), trailer)
	require.NoError(t, err)
	return v
}

func newTemplate(t *testing.T, workshopID kernel.UUID, machines int) workshop.Template {
	t.Helper()
	tmpl, err := workshop.NewTemplate(kernel.NewUUID(), workshopID,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		8*60, 12*60, 30, 10, machines, true)
	require.NoError(t, err)
	return tmpl
}

// newBookedSchedule places a visit of volume kg for o starting at start.
func newBookedSchedule(t *testing.T, o *order.Order, client actor.Actor, start time.Time, volume int64) *schedule.Schedule {
	t.Helper()
	driver, err := schedule.NewDriver(client.ID(), client.Name(), client.IdentityNumber())
	require.NoError(t, err)

	s, err := schedule.NewSchedule(schedule.Booking{
		ID:            kernel.NewUUID(),
		OrderID:       o.ID(),
		Owner:         o.Owner(),
		Driver:        driver,
		VehicleID:     kernel.NewUUID(),
		TemplateID:    kernel.NewUUID(),
		WorkshopID:    o.WorkshopID(),
		StartAt:       start,
		EndAt:         start.Add(30 * time.Minute),
		LoadingVolume: kernel.Kilograms(volume),
		BookedBy:      client.Snapshot(),
		CreatedAt:     start.Add(-time.Hour),
	}, operation.Default().First().Code)
	require.NoError(t, err)
	return s
}

func kg(v int64) *kernel.Weight {
	w := kernel.Kilograms(v)
	return &w
}

func code(c operation.Code) *operation.Code {
	return &c
}
