package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/service"
	"github.com/navetta/shuttle-booking/internal/store"
)

// Accounts shared by the service tests.
var (
	testAdmin = model.User{
		ID: "admin1", FirstName: "Ada", LastName: "Admin",
		Email: "admin@example.com", Phone: "111", Password: "adminpass",
		Role: model.RoleAdmin,
	}
	testRider = model.User{
		ID: "user1", FirstName: "Rita", LastName: "Rider",
		Email: "rita@example.com", Phone: "222", Password: "riderpass",
		Role: model.RoleUser,
	}
	testRider2 = model.User{
		ID: "user2", FirstName: "Remo", LastName: "Rider",
		Email: "remo@example.com", Phone: "333", Password: "riderpass2",
		Role: model.RoleUser,
	}
)

// newTestService returns a service over a fresh in-memory store
// pre-loaded with the shared accounts. No broker is attached.
func newTestService(t *testing.T) (*service.Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	users := []model.User{testAdmin, testRider, testRider2}
	require.NoError(t, st.Write(context.Background(), store.Users, users))
	return service.New(st, nil), st
}

// mustCreateEvent schedules an event as the admin and fails the test
// on any error.
func mustCreateEvent(t *testing.T, svc *service.Service, capacity int, points ...string) model.Event {
	t.Helper()
	in := service.EventInput{Date: "2026-09-12", Time: "22:00", Capacity: capacity}
	for _, name := range points {
		in.PickupPoints = append(in.PickupPoints, model.PickupPoint{Name: name})
	}
	e, err := svc.CreateEvent(context.Background(), testAdmin, in)
	require.NoError(t, err)
	return e
}
