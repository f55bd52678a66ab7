package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
	"github.com/navetta/shuttle-booking/internal/store"
)

// slowStore delegates to another store with a small delay on every
// call, widening the read-to-write window the way the file and
// database backends do.
type slowStore struct {
	inner store.Store
}

func (s slowStore) Read(ctx context.Context, collection string, out any) error {
	time.Sleep(2 * time.Millisecond)
	return s.inner.Read(ctx, collection, out)
}

func (s slowStore) Write(ctx context.Context, collection string, in any) error {
	time.Sleep(2 * time.Millisecond)
	return s.inner.Write(ctx, collection, in)
}

// newSlowService returns a service whose store calls take a few
// milliseconds each, pre-loaded with the shared accounts.
func newSlowService(t *testing.T) *service.Service {
	t.Helper()
	st := store.NewMemory()
	users := []model.User{testAdmin, testRider, testRider2}
	require.NoError(t, st.Write(context.Background(), store.Users, users))
	return service.New(slowStore{inner: st}, nil)
}

func TestCreateBookingHappyPath(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 3, "Main St", "Harbor")

	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[1].ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, b.ID, b.QRCode, "ticket code is the booking id")
	assert.False(t, b.IsCheckedIn)
	assert.Equal(t, e.PickupPoints[1].ID, b.PickupPointID)
}

func TestCreateBookingFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 3, "Main St")

	_, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: "event_missing", PickupPointID: e.PickupPoints[0].ID,
	})
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	_, err = svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: "p_missing",
	})
	assert.ErrorIs(t, err, service.ErrPickupPointNotFound)

	_, err = svc.CreateBooking(ctx, service.BookingInput{
		UserID: "user_missing", EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

// Capacity 1, two riders: the first gets the seat, the second is
// turned away.
func TestCreateBookingLastSeat(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 1, "Main St")

	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)
	assert.False(t, b.IsCheckedIn)

	_, err = svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider2.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	assert.ErrorIs(t, err, service.ErrShuttleFull)
}

// Overlapping attempts must never overfill an event: the capacity
// check and the append run under the service write lock.
func TestCreateBookingConcurrentNeverOverCapacity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const capacity = 5
	const attempts = 40
	e := mustCreateEvent(t, svc, capacity, "Main St")

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, service.BookingInput{
				UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	won, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, service.ErrShuttleFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, won)
	assert.Equal(t, attempts-capacity, full)

	bookings, err := svc.ListBookings(ctx, testAdmin)
	require.NoError(t, err)
	assert.Len(t, bookings, capacity)
}

// Bookings on unrelated events still contend on the shared bookings
// document: every write replaces the whole collection, so a committed
// booking must never be erased by a concurrent writer for a different
// event.
func TestCreateBookingConcurrentAcrossEventsKeepsAll(t *testing.T) {
	svc := newSlowService(t)
	ctx := context.Background()

	const perEvent = 5
	e1 := mustCreateEvent(t, svc, perEvent, "Main St")
	e2 := mustCreateEvent(t, svc, perEvent, "Harbor")

	var wg sync.WaitGroup
	for i := 0; i < perEvent; i++ {
		for _, e := range []model.Event{e1, e2} {
			wg.Add(1)
			go func(e model.Event) {
				defer wg.Done()
				_, err := svc.CreateBooking(ctx, service.BookingInput{
					UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
				})
				assert.NoError(t, err)
			}(e)
		}
	}
	wg.Wait()

	bookings, err := svc.ListBookings(ctx, testAdmin)
	require.NoError(t, err)
	require.Len(t, bookings, 2*perEvent, "no committed booking may be lost")

	perID := map[string]int{}
	for _, b := range bookings {
		perID[b.EventID]++
	}
	assert.Equal(t, perEvent, perID[e1.ID])
	assert.Equal(t, perEvent, perID[e2.ID])
}

// A check-in racing booking creation keeps both writes: the flag
// stays set and every new seat lands.
func TestCheckInSurvivesConcurrentCreates(t *testing.T) {
	svc := newSlowService(t)
	ctx := context.Background()

	e1 := mustCreateEvent(t, svc, 2, "Main St")
	e2 := mustCreateEvent(t, svc, 10, "Harbor")
	seat, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e1.ID, PickupPointID: e1.PickupPoints[0].ID,
	})
	require.NoError(t, err)

	const creates = 8
	var wg sync.WaitGroup
	wg.Add(creates + 1)
	go func() {
		defer wg.Done()
		_, err := svc.ConfirmCheckIn(ctx, testAdmin, seat.ID)
		assert.NoError(t, err)
	}()
	for i := 0; i < creates; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, service.BookingInput{
				UserID: testRider2.ID, EventID: e2.ID, PickupPointID: e2.PickupPoints[0].ID,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.GetBooking(ctx, seat.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCheckedIn, "check-in must not be undone by a concurrent create")

	bookings, err := svc.ListBookings(ctx, testAdmin)
	require.NoError(t, err)
	assert.Len(t, bookings, creates+1)
}

func TestDeleteBookingOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 3, "Main St")

	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)

	// Another rider cannot cancel someone else's seat.
	assert.ErrorIs(t, svc.DeleteBooking(ctx, testRider2, b.ID), service.ErrForbidden)

	// The owner can.
	require.NoError(t, svc.DeleteBooking(ctx, testRider, b.ID))
	assert.ErrorIs(t, svc.DeleteBooking(ctx, testRider, b.ID), service.ErrBookingNotFound)

	// And so can an admin.
	b2, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBooking(ctx, testAdmin, b2.ID))
}

// A cancelled seat frees capacity for the next rider.
func TestCancelFreesSeat(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 1, "Main St")

	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBooking(ctx, testRider, b.ID))

	_, err = svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider2.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	assert.NoError(t, err)
}

func TestUpdateBookingCheckInIsSticky(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	e := mustCreateEvent(t, svc, 3, "Main St")

	b, err := svc.CreateBooking(ctx, service.BookingInput{
		UserID: testRider.ID, EventID: e.ID, PickupPointID: e.PickupPoints[0].ID,
	})
	require.NoError(t, err)

	checked, err := svc.ConfirmCheckIn(ctx, testAdmin, b.ID)
	require.NoError(t, err)
	require.True(t, checked.IsCheckedIn)

	// An update that tries to clear the flag does not stick.
	checked.IsCheckedIn = false
	got, err := svc.UpdateBooking(ctx, testAdmin, checked)
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)

	stored, err := svc.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCheckedIn)
}
