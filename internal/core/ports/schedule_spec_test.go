package ports_test

import (
	"testing"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSpec_Matches(t *testing.T) {
	userID := kernel.NewUUID()
	owner, _ := kernel.NewUserOwner(userID)
	driver, _ := schedule.NewDriver(userID, "Aidos", "")
	orderID, workshopID := kernel.NewUUID(), kernel.NewUUID()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	s, err := schedule.NewSchedule(schedule.Booking{
		ID: kernel.NewUUID(), OrderID: orderID, Owner: owner, Driver: driver,
		VehicleID: kernel.NewUUID(), TemplateID: kernel.NewUUID(), WorkshopID: workshopID,
		StartAt: start, EndAt: start.Add(30 * time.Minute), LoadingVolume: kernel.Kilograms(1000),
		BookedBy: actor.Snapshot{ID: userID}, CreatedAt: start,
	}, operation.Entry)
	require.NoError(t, err)

	day := start.Truncate(24 * time.Hour)

	testCases := []struct {
		name string
		spec ports.ScheduleSpec
		want bool
	}{
		{"empty", ports.Schedules(), true},
		{"order", ports.Schedules().OfOrder(orderID), true},
		{"other order", ports.Schedules().OfOrder(kernel.NewUUID()), false},
		{"workshop and day", ports.Schedules().OfWorkshop(workshopID).StartingBetween(day, day.Add(24*time.Hour)).Active(), true},
		{"other workshop", ports.Schedules().OfWorkshop(kernel.NewUUID()), false},
		{"range end is exclusive", ports.Schedules().StartingBetween(day, start), false},
		{"range start is inclusive", ports.Schedules().StartingBetween(start, start.Add(time.Minute)), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.spec.Matches(s))
		})
	}

	require.NoError(t, s.Cancel(start, "gone", actor.Snapshot{ID: userID}))
	assert.False(t, ports.Schedules().OfOrder(orderID).Active().Matches(s))
	assert.True(t, ports.Schedules().OfOrder(orderID).Matches(s))
}

func TestScheduleSpec_IsImmutable(t *testing.T) {
	base := ports.Schedules().Active()
	narrowed := base.OfOrder(kernel.NewUUID())

	assert.Nil(t, base.OrderID())
	assert.NotNil(t, narrowed.OrderID())
	assert.True(t, base.ActiveOnly())
}
