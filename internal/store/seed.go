package store

import (
	"context"
	"fmt"
	"time"

	"github.com/navetta/shuttle-booking/internal/model"
)

// SeedDemo installs the demo fixtures a fresh deployment boots with:
// an admin account, a rider account, an event one week out with three
// pickup points, and one booking. Each collection is only written
// when it is currently empty, so rerunning against live data is a
// no-op.
func SeedDemo(ctx context.Context, s Store) error {
	var users []model.User
	if err := s.Read(ctx, Users, &users); err != nil {
		return err
	}
	if len(users) == 0 {
		users = []model.User{
			{ID: "admin1", FirstName: "Admin", LastName: "User", Email: "admin@example.com", Phone: "1234567890", Password: "password", Role: model.RoleAdmin},
			{ID: "user1", FirstName: "Regular", LastName: "User", Email: "user@example.com", Phone: "0987654321", Password: "password", Role: model.RoleUser},
		}
		if err := s.Write(ctx, Users, users); err != nil {
			return err
		}
	}

	var events []model.Event
	if err := s.Read(ctx, Events, &events); err != nil {
		return err
	}
	if len(events) == 0 {
		d := time.Now().AddDate(0, 0, 7)
		events = []model.Event{{
			ID:       "event1",
			Date:     fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day()),
			Time:     "22:00",
			Capacity: 50,
			PickupPoints: []model.PickupPoint{
				{ID: "p1", Name: "Piazza Centrale"},
				{ID: "p2", Name: "Stazione Ferroviaria"},
				{ID: "p3", Name: "Parco Cittadino"},
			},
		}}
		if err := s.Write(ctx, Events, events); err != nil {
			return err
		}
	}

	var bookings []model.Booking
	if err := s.Read(ctx, Bookings, &bookings); err != nil {
		return err
	}
	if len(bookings) == 0 {
		bookings = []model.Booking{{
			ID: "booking1", UserID: "user1", EventID: "event1",
			PickupPointID: "p1", QRCode: "booking1", IsCheckedIn: false,
		}}
		if err := s.Write(ctx, Bookings, bookings); err != nil {
			return err
		}
	}
	return nil
}
