package service

import (
	"context"
	"time"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/queue"
	"github.com/navetta/shuttle-booking/internal/store"
	"github.com/navetta/shuttle-booking/internal/utils"
)

// BookingInput names the seat being reserved: who, which run, where
// they board.
type BookingInput struct {
	UserID        string
	EventID       string
	PickupPointID string
}

// CreateBooking reserves one seat iff one is available. The capacity
// check and the append run under the service write lock, so two
// overlapping attempts at the last seat cannot both commit; the
// second one sees the first booking and fails with ErrShuttleFull.
// The ticket code is the new booking's id.
//
// Duplicate bookings per (user, event) are not rejected: admins add
// replacement seats on behalf of riders, and the capacity check still
// bounds the total.
func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	var event *model.Event
	for i := range events {
		if events[i].ID == in.EventID {
			event = &events[i]
			break
		}
	}
	if event == nil {
		return model.Booking{}, ErrEventNotFound
	}
	if event.PickupPoint(in.PickupPointID) == nil {
		return model.Booking{}, ErrPickupPointNotFound
	}
	if _, err := s.GetUser(ctx, in.UserID); err != nil {
		return model.Booking{}, err
	}

	bookings, err := s.readBookings(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	taken := 0
	for _, b := range bookings {
		if b.EventID == in.EventID {
			taken++
		}
	}
	if taken >= event.Capacity {
		return model.Booking{}, ErrShuttleFull
	}

	id, err := utils.NewID("booking")
	if err != nil {
		return model.Booking{}, err
	}
	b := model.Booking{
		ID:            id,
		UserID:        in.UserID,
		EventID:       in.EventID,
		PickupPointID: in.PickupPointID,
		QRCode:        id,
		IsCheckedIn:   false,
	}
	if err := s.store.Write(ctx, store.Bookings, append(bookings, b)); err != nil {
		return model.Booking{}, err
	}

	_ = s.pub.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		EventID:     b.EventID,
		EventDate:   event.Date,
		EventTime:   event.Time,
		PickupPoint: event.PickupPoint(in.PickupPointID).Name,
		TicketCode:  b.QRCode,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	return b, nil
}

// ListBookings returns every booking record. Admin-only.
func (s *Service) ListBookings(ctx context.Context, actor model.User) ([]model.Booking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.readBookings(ctx)
}

// BookingsForUser returns the bookings owned by one user.
func (s *Service) BookingsForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]model.Booking, 0)
	for _, b := range bookings {
		if b.UserID == userID {
			mine = append(mine, b)
		}
	}
	return mine, nil
}

// GetBooking resolves a single booking by id.
func (s *Service) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, ErrBookingNotFound
}

// UpdateBooking replaces a booking record by id. Admin-only. The
// check-in flag is sticky: once a stored booking is checked in, an
// update cannot flip it back.
func (s *Service) UpdateBooking(ctx context.Context, actor model.User, b model.Booking) (model.Booking, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Booking{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	for i := range bookings {
		if bookings[i].ID == b.ID {
			if bookings[i].IsCheckedIn {
				b.IsCheckedIn = true
			}
			bookings[i] = b
			if err := s.store.Write(ctx, store.Bookings, bookings); err != nil {
				return model.Booking{}, err
			}
			return b, nil
		}
	}
	return model.Booking{}, ErrBookingNotFound
}

// DeleteBooking cancels a booking. Riders may cancel their own
// seats; admins may cancel any.
func (s *Service) DeleteBooking(ctx context.Context, actor model.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return err
	}
	var removed *model.Booking
	kept := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID == id {
			b := b
			removed = &b
			continue
		}
		kept = append(kept, b)
	}
	if removed == nil {
		return ErrBookingNotFound
	}
	if !actor.IsAdmin() && removed.UserID != actor.ID {
		return ErrForbidden
	}
	if err := s.store.Write(ctx, store.Bookings, kept); err != nil {
		return err
	}
	_ = s.pub.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
		BookingID:   removed.ID,
		UserID:      removed.UserID,
		EventID:     removed.EventID,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}
