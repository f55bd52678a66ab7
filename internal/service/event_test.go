package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
)

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   service.EventInput
	}{
		{"zero capacity", service.EventInput{Date: "2026-09-12", Time: "22:00", Capacity: 0,
			PickupPoints: []model.PickupPoint{{Name: "Main St"}}}},
		{"bad date", service.EventInput{Date: "12/09/2026", Time: "22:00", Capacity: 5,
			PickupPoints: []model.PickupPoint{{Name: "Main St"}}}},
		{"bad time", service.EventInput{Date: "2026-09-12", Time: "10pm", Capacity: 5,
			PickupPoints: []model.PickupPoint{{Name: "Main St"}}}},
		{"no pickup points", service.EventInput{Date: "2026-09-12", Time: "22:00", Capacity: 5}},
		{"only blank pickup points", service.EventInput{Date: "2026-09-12", Time: "22:00", Capacity: 5,
			PickupPoints: []model.PickupPoint{{Name: "   "}, {Name: ""}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(ctx, testAdmin, tc.in)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestCreateEventTrimsAndMintsPickupPoints(t *testing.T) {
	svc, _ := newTestService(t)

	e, err := svc.CreateEvent(context.Background(), testAdmin, service.EventInput{
		Date: "2026-09-12", Time: "22:00", Capacity: 10,
		PickupPoints: []model.PickupPoint{
			{Name: "  Main St  "},
			{Name: "   "}, // dropped
			{ID: "p-keep", Name: "Harbor"},
		},
	})
	require.NoError(t, err)
	require.Len(t, e.PickupPoints, 2)
	assert.Equal(t, "Main St", e.PickupPoints[0].Name)
	assert.NotEmpty(t, e.PickupPoints[0].ID)
	assert.Equal(t, "p-keep", e.PickupPoints[1].ID)
}

func TestEventAdminGate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	in := service.EventInput{Date: "2026-09-12", Time: "22:00", Capacity: 5,
		PickupPoints: []model.PickupPoint{{Name: "Main St"}}}

	_, err := svc.CreateEvent(ctx, testRider, in)
	assert.ErrorIs(t, err, service.ErrForbidden)

	e := mustCreateEvent(t, svc, 5, "Main St")
	_, err = svc.UpdateEvent(ctx, testRider, e.ID, in)
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.ErrorIs(t, svc.DeleteEvent(ctx, testRider, e.ID), service.ErrForbidden)
}

func TestUpdateEvent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 5, "Main St")

	updated, err := svc.UpdateEvent(ctx, testAdmin, e.ID, service.EventInput{
		Date: "2026-10-01", Time: "23:30", Capacity: 8,
		PickupPoints: []model.PickupPoint{{Name: "New Stop"}},
	})
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "2026-10-01", updated.Date)
	assert.Equal(t, 8, updated.Capacity)

	_, err = svc.UpdateEvent(ctx, testAdmin, "event_missing", service.EventInput{
		Date: "2026-10-01", Time: "23:30", Capacity: 8,
		PickupPoints: []model.PickupPoint{{Name: "New Stop"}},
	})
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}

func TestDeleteEventCascadesToBookings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e := mustCreateEvent(t, svc, 5, "Main St")
	other := mustCreateEvent(t, svc, 5, "Main St")

	for _, uid := range []string{testRider.ID, testRider2.ID} {
		_, err := svc.CreateBooking(ctx, service.BookingInput{
			UserID: uid, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
		})
		require.NoError(t, err)
	}
	keep, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: other.ID, PickupPointID: other.PickupPoints[0].ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, testAdmin, e.ID))

	bookings, err := svc.ListBookings(ctx, testAdmin)
	require.NoError(t, err)
	require.Len(t, bookings, 1, "both bookings of the deleted event must be gone")
	assert.Equal(t, keep.ID, bookings[0].ID)

	_, err = svc.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}

func TestSeatsBookedIgnoresOrphanedBookings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e := mustCreateEvent(t, svc, 5, "Main St")
	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)

	counts, err := svc.SeatsBooked(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[e.ID])
	assert.NotEmpty(t, b.ID)
}
