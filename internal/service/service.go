package service

import (
	"context"
	"sync"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/queue"
	"github.com/navetta/shuttle-booking/internal/store"
)

// Service orchestrates every domain operation over the record store.
// Admin-gated operations take the acting user and verify the role
// themselves, so a new caller cannot bypass authorization by skipping
// the HTTP middleware.
type Service struct {
	store store.Store
	pub   *queue.Publisher

	// mu serializes every read-modify-write cycle against the store.
	// Each collection is one whole document, so any two concurrent
	// writers read the same snapshot and the later Write would erase
	// the earlier one's records, regardless of which event or even
	// which collection they target. A single lock covers all of it,
	// the cross-collection cascade included. Writers in other
	// processes are not covered; see DESIGN.md.
	mu sync.Mutex
}

// New returns a Service over the given store. pub may be nil when no
// broker is configured; lifecycle events are then skipped.
func New(s store.Store, pub *queue.Publisher) *Service {
	return &Service{store: s, pub: pub}
}

// requireAdmin rejects actors without the admin role.
func requireAdmin(actor model.User) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *Service) readUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.store.Read(ctx, store.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) readEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := s.store.Read(ctx, store.Events, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Service) readBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.store.Read(ctx, store.Bookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
