package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/navetta/shuttle-booking/internal/model"
	"github.com/navetta/shuttle-booking/internal/queue"
	"github.com/navetta/shuttle-booking/internal/store"
	"github.com/navetta/shuttle-booking/internal/utils"
)

// EventInput carries the editable fields of an event.
type EventInput struct {
	Date         string
	Time         string
	Capacity     int
	PickupPoints []model.PickupPoint
}

// validateEventInput normalizes and checks an event payload: the
// date and time must parse, capacity must be at least one seat, and
// at least one pickup point must survive name trimming. Blank-named
// points are dropped rather than rejected, matching how the admin
// form treats empty rows, and points arriving without an id get one
// minted.
func validateEventInput(in *EventInput) error {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}
	if in.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}
	kept := make([]model.PickupPoint, 0, len(in.PickupPoints))
	for _, p := range in.PickupPoints {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		if p.ID == "" {
			id, err := utils.NewID("p")
			if err != nil {
				return err
			}
			p.ID = id
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return fmt.Errorf("%w: at least one pickup point is required", ErrInvalidInput)
	}
	in.PickupPoints = kept
	return nil
}

// ListEvents returns every scheduled event.
func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.readEvents(ctx)
}

// GetEvent resolves a single event by id.
func (s *Service) GetEvent(ctx context.Context, id string) (model.Event, error) {
	events, err := s.readEvents(ctx)
	if err != nil {
		return model.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, ErrEventNotFound
}

// SeatsBooked returns the number of bookings per event id. Bookings
// whose event no longer resolves are not counted; they are leftovers
// of an interrupted cascade and get filtered out on the next delete.
func (s *Service) SeatsBooked(ctx context.Context) (map[string]int, error) {
	events, err := s.readEvents(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(events))
	for _, e := range events {
		known[e.ID] = true
	}
	counts := make(map[string]int, len(events))
	for _, b := range bookings {
		if known[b.EventID] {
			counts[b.EventID]++
		}
	}
	return counts, nil
}

// CreateEvent schedules a new shuttle run. Admin-only.
func (s *Service) CreateEvent(ctx context.Context, actor model.User, in EventInput) (model.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Event{}, err
	}
	if err := validateEventInput(&in); err != nil {
		return model.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events, err := s.readEvents(ctx)
	if err != nil {
		return model.Event{}, err
	}
	id, err := utils.NewID("event")
	if err != nil {
		return model.Event{}, err
	}
	e := model.Event{
		ID:           id,
		Date:         in.Date,
		Time:         in.Time,
		Capacity:     in.Capacity,
		PickupPoints: in.PickupPoints,
	}
	if err := s.store.Write(ctx, store.Events, append(events, e)); err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// UpdateEvent replaces an event's editable fields. Admin-only.
// Shrinking capacity below the current booking count is allowed; the
// event simply shows as over-booked and accepts no new seats.
func (s *Service) UpdateEvent(ctx context.Context, actor model.User, id string, in EventInput) (model.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return model.Event{}, err
	}
	if err := validateEventInput(&in); err != nil {
		return model.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events, err := s.readEvents(ctx)
	if err != nil {
		return model.Event{}, err
	}
	for i := range events {
		if events[i].ID == id {
			events[i].Date = in.Date
			events[i].Time = in.Time
			events[i].Capacity = in.Capacity
			events[i].PickupPoints = in.PickupPoints
			if err := s.store.Write(ctx, store.Events, events); err != nil {
				return model.Event{}, err
			}
			return events[i], nil
		}
	}
	return model.Event{}, ErrEventNotFound
}

// DeleteEvent removes an event and cascades to its bookings.
// Dependent bookings are written first: if the process dies between
// the two writes we are left with an event that has no bookings,
// never with bookings pointing at a missing event. Admin-only.
func (s *Service) DeleteEvent(ctx context.Context, actor model.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events, err := s.readEvents(ctx)
	if err != nil {
		return err
	}
	found := false
	kept := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrEventNotFound
	}

	bookings, err := s.readBookings(ctx)
	if err != nil {
		return err
	}
	var removed []model.Booking
	keptBookings := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.EventID == id {
			removed = append(removed, b)
			continue
		}
		keptBookings = append(keptBookings, b)
	}

	if err := s.store.Write(ctx, store.Bookings, keptBookings); err != nil {
		return err
	}
	if err := s.store.Write(ctx, store.Events, kept); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, b := range removed {
		_ = s.pub.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			EventID:     b.EventID,
			CancelledAt: now,
		})
	}
	return nil
}
