package schedule_test

import (
	"testing"
	"time"

	"yard/internal/core/domain/model/actor"
	"yard/internal/core/domain/model/kernel"
	"yard/internal/core/domain/model/operation"
	"yard/internal/core/domain/model/schedule"
	"yard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var visitStart = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestSchedule(t *testing.T, volume int64) *schedule.Schedule {
	t.Helper()
	userID := kernel.NewUUID()
	owner, err := kernel.NewUserOwner(userID)
	require.NoError(t, err)
	driver, err := schedule.NewDriver(userID, "Aidos", "900101300123")
	require.NoError(t, err)

	s, err := schedule.NewSchedule(schedule.Booking{
		ID:            kernel.NewUUID(),
		OrderID:       kernel.NewUUID(),
		Owner:         owner,
		Driver:        driver,
		VehicleID:     kernel.NewUUID(),
		TemplateID:    kernel.NewUUID(),
		WorkshopID:    kernel.NewUUID(),
		StartAt:       visitStart,
		EndAt:         visitStart.Add(30 * time.Minute),
		LoadingVolume: kernel.Kilograms(volume),
		BookedBy:      actor.Snapshot{ID: userID, Name: "Aidos", Role: actor.RoleClient},
		CreatedAt:     visitStart.Add(-24 * time.Hour),
	}, operation.Entry)
	require.NoError(t, err)
	return s
}

func TestNewSchedule(t *testing.T) {
	s := newTestSchedule(t, 8000)

	assert.True(t, s.IsActive())
	assert.False(t, s.IsUsed())
	assert.Equal(t, operation.Entry, s.CurrentOperation())
	assert.True(t, s.BookedVolume().IsEqual(kernel.Kilograms(8000)))
	assert.True(t, s.ReleasedVolume().IsZero())
}

func TestNewSchedule_Invalid(t *testing.T) {
	_, err := schedule.NewSchedule(schedule.Booking{
		StartAt: visitStart,
		EndAt:   visitStart,
	}, operation.Entry)

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSchedule_EnsureTakeable(t *testing.T) {
	g := operation.Default()
	entry, _ := g.Get(operation.Entry)
	weighing, _ := g.Get(operation.InitialWeighing)
	s := newTestSchedule(t, 8000)

	require.NoError(t, s.EnsureTakeable(entry, visitStart))
	require.NoError(t, s.EnsureTakeable(entry, visitStart.Add(30*time.Minute)))
	require.ErrorIs(t, s.EnsureTakeable(entry, visitStart.Add(-time.Second)), errs.ErrConflict)
	require.ErrorIs(t, s.EnsureTakeable(entry, visitStart.Add(31*time.Minute)), errs.ErrConflict)
	require.ErrorIs(t, s.EnsureTakeable(weighing, visitStart), errs.ErrConflict)

	t.Run("window bounds the arrival only", func(t *testing.T) {
		s := newTestSchedule(t, 8000)
		_, err := s.Advance(g, visitStart.Add(time.Minute))
		require.NoError(t, err)

		require.NoError(t, s.EnsureTakeable(weighing, visitStart.Add(2*time.Hour)))
	})
}

func TestSchedule_FullVisit(t *testing.T) {
	g := operation.Default()
	s := newTestSchedule(t, 8000)
	now := visitStart.Add(5 * time.Minute)

	for _, code := range []operation.Code{operation.Entry, operation.InitialWeighing, operation.LoadingEntry, operation.Loading} {
		if code == operation.InitialWeighing {
			require.NoError(t, s.RecordTare(kernel.Kilograms(12000)))
		}
		executed, err := s.Advance(g, now)
		require.NoError(t, err)
		require.False(t, executed)
	}
	require.Equal(t, operation.FinalWeighing, s.CurrentOperation())

	netto, err := s.RecordFinal(kernel.Kilograms(19800))
	require.NoError(t, err)
	assert.True(t, netto.IsEqual(kernel.Kilograms(7800)))

	executed, err := s.Advance(g, now)
	require.NoError(t, err)
	require.False(t, executed)
	require.Equal(t, operation.Exit, s.CurrentOperation())

	executed, err = s.Advance(g, now)
	require.NoError(t, err)
	require.True(t, executed)

	assert.False(t, s.IsActive())
	assert.True(t, s.IsExecuted())
	assert.Equal(t, now, *s.ExecutedAt())
	assert.True(t, s.BookedVolume().IsZero())
	assert.True(t, s.ReleasedVolume().IsEqual(kernel.Kilograms(7800)))

	_, err = s.Advance(g, now)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestSchedule_MeasureFinal(t *testing.T) {
	s := newTestSchedule(t, 8000)

	_, err := s.MeasureFinal(kernel.Kilograms(10000))
	require.ErrorIs(t, err, errs.ErrIntegrity, "tare is missing")

	require.NoError(t, s.RecordTare(kernel.Kilograms(12000)))

	_, err = s.MeasureFinal(kernel.Kilograms(11000))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid, "brutto below tare")

	_, err = s.MeasureFinal(kernel.Kilograms(20001))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid, "netto above loading volume")
	assert.Nil(t, s.VehicleBrutto())

	netto, err := s.MeasureFinal(kernel.Kilograms(20000))
	require.NoError(t, err)
	assert.True(t, netto.IsEqual(kernel.Kilograms(8000)))
	assert.Nil(t, s.VehicleNetto(), "measure does not mutate")
}

func TestSchedule_RouteBack(t *testing.T) {
	g := operation.Default()
	s := newTestSchedule(t, 8000)

	require.ErrorIs(t, s.RouteBack(g, operation.Reloading), errs.ErrValueIsInvalid, "entry has no reload targets")

	restored, err := schedule.RestoreSchedule(schedule.State{
		Booking:          bookingOf(s),
		CurrentOperation: operation.FinalWeighing,
		IsActive:         true,
		IsUsed:           true,
	})
	require.NoError(t, err)

	require.NoError(t, restored.RouteBack(g, operation.TareReweighing))
	assert.Equal(t, operation.TareReweighing, restored.CurrentOperation())
	assert.True(t, restored.IsActive())

	_, err = restored.Advance(g, visitStart)
	require.NoError(t, err)
	assert.Equal(t, operation.LoadingEntry, restored.CurrentOperation())
}

func TestSchedule_Cancel(t *testing.T) {
	s := newTestSchedule(t, 8000)
	by := actor.Snapshot{ID: kernel.NewUUID(), Name: "Guard", Role: actor.RoleSecurity}

	require.ErrorIs(t, s.Cancel(visitStart, " ", by), errs.ErrValueIsRequired)
	require.NoError(t, s.Cancel(visitStart, "no documents", by))

	assert.True(t, s.IsCanceled())
	assert.False(t, s.IsActive())
	assert.Equal(t, "no documents", s.CancelReason())
	assert.Equal(t, by, *s.CanceledBy())
	assert.True(t, s.BookedVolume().IsZero())
	assert.True(t, s.ReleasedVolume().IsZero())

	require.ErrorIs(t, s.Cancel(visitStart, "again", by), errs.ErrConflict)
}

func TestRestoreSchedule_Integrity(t *testing.T) {
	s := newTestSchedule(t, 8000)

	testCases := []struct {
		name  string
		state schedule.State
	}{
		{"canceled and executed", schedule.State{Booking: bookingOf(s), CurrentOperation: operation.Exit, IsCanceled: true, IsExecuted: true}},
		{"active and canceled", schedule.State{Booking: bookingOf(s), CurrentOperation: operation.Entry, IsActive: true, IsCanceled: true}},
		{"executed without netto", schedule.State{Booking: bookingOf(s), CurrentOperation: operation.Exit, IsExecuted: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schedule.RestoreSchedule(tc.state)
			require.ErrorIs(t, err, errs.ErrIntegrity)
		})
	}
}

func bookingOf(s *schedule.Schedule) schedule.Booking {
	return schedule.Booking{
		ID:            s.ID(),
		OrderID:       s.OrderID(),
		Owner:         s.Owner(),
		Driver:        s.Driver(),
		VehicleID:     s.VehicleID(),
		TrailerID:     s.TrailerID(),
		TemplateID:    s.TemplateID(),
		WorkshopID:    s.WorkshopID(),
		StartAt:       s.StartAt(),
		EndAt:         s.EndAt(),
		LoadingVolume: s.LoadingVolume(),
		BookedBy:      s.BookedBy(),
		CreatedAt:     s.CreatedAt(),
	}
}
