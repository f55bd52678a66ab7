package service

import (
	"context"
	"time"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/queue"
	"github.com/navetta/shuttle-booking/internal/store"
)

// TicketDetail is what a scan resolves to: the booking plus its
// related records. User, Event and PickupPoint are nil when the
// referenced record no longer exists; a ticket stays resolvable even
// after its event was deleted out from under it, and the scanning UI
// decides what to show.
type TicketDetail struct {
	Booking     model.Booking      `json:"booking"`
	User        *model.User        `json:"user,omitempty"`
	Event       *model.Event       `json:"event,omitempty"`
	PickupPoint *model.PickupPoint `json:"pickupPoint,omitempty"`
}

// ResolveTicket looks up a scanned code against every booking's
// ticket code and joins the owning user, event and pickup point.
// Admin-only: scanning happens at the shuttle door by staff.
func (s *Service) ResolveTicket(ctx context.Context, actor model.User, code string) (TicketDetail, error) {
	if err := requireAdmin(actor); err != nil {
		return TicketDetail{}, err
	}
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return TicketDetail{}, err
	}
	var booking *model.Booking
	for i := range bookings {
		if bookings[i].QRCode == code {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil {
		return TicketDetail{}, ErrTicketNotFound
	}

	det := TicketDetail{Booking: *booking}
	if u, err := s.GetUser(ctx, booking.UserID); err == nil {
		u := u.Sanitized()
		det.User = &u
	}
	events, err := s.readEvents(ctx)
	if err != nil {
		return TicketDetail{}, err
	}
	for i := range events {
		if events[i].ID == booking.EventID {
			det.Event = &events[i]
			det.PickupPoint = events[i].PickupPoint(booking.PickupPointID)
			break
		}
	}
	return det, nil
}

// ConfirmCheckIn marks a booking as boarded. The transition is
// one-way and idempotent: confirming an already-checked-in booking
// reports the current state without writing, and nothing in the
// system ever sets the flag back to false. Admin-only.
func (s *Service) ConfirmCheckIn(ctx context.Context, actor model.User, bookingID string) (model.Booking, error) {
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
		if bookings[i].ID != bookingID {
			continue
		}
		if bookings[i].IsCheckedIn {
			return bookings[i], nil
		}
		bookings[i].IsCheckedIn = true
		if err := s.store.Write(ctx, store.Bookings, bookings); err != nil {
			return model.Booking{}, err
		}
		b := bookings[i]
		_ = s.pub.PublishRiderCheckedIn(ctx, queue.RiderCheckedInEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			EventID:     b.EventID,
			TicketCode:  b.QRCode,
			CheckedInAt: time.Now().UTC().Format(time.RFC3339),
		})
		return b, nil
	}
	return model.Booking{}, ErrBookingNotFound
}
