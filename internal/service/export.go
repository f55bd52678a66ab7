package service

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/navetta/shuttle-booking/internal/model"
)

// ManifestRow is one line of the passenger manifest an admin
// downloads per event. Joined fields are empty strings when the
// related record is missing, so the manifest renders for events with
// broken references instead of failing.
type ManifestRow struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	PickupPoint string
	CheckedIn   bool
	BookingID   string
}

// EventManifest builds the manifest rows for an event's bookings,
// joined with rider and pickup point details. Admin-only. The rows
// come back in booking order.
func (s *Service) EventManifest(ctx context.Context, actor model.User, eventID string) ([]ManifestRow, model.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, model.Event{}, err
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, model.Event{}, err
	}
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, model.Event{}, err
	}
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	bookings, err := s.readBookings(ctx)
	if err != nil {
		return nil, model.Event{}, err
	}

	rows := make([]ManifestRow, 0)
	for _, b := range bookings {
		if b.EventID != eventID {
			continue
		}
		row := ManifestRow{CheckedIn: b.IsCheckedIn, BookingID: b.ID}
		if u, ok := byID[b.UserID]; ok {
			row.FirstName = u.FirstName
			row.LastName = u.LastName
			row.Email = u.Email
			row.Phone = u.Phone
		}
		if p := event.PickupPoint(b.PickupPointID); p != nil {
			row.PickupPoint = p.Name
		}
		rows = append(rows, row)
	}
	return rows, event, nil
}

// WriteManifestCSV writes the manifest as delimited text with a
// header line, the shape the boarding-list download expects.
func WriteManifestCSV(w io.Writer, rows []ManifestRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"First Name", "Last Name", "Email", "Phone", "Pickup Point", "Checked In", "Booking ID"}); err != nil {
		return err
	}
	for _, r := range rows {
		checked := "No"
		if r.CheckedIn {
			checked = "Yes"
		}
		rec := []string{r.FirstName, r.LastName, r.Email, r.Phone, r.PickupPoint, checked, r.BookingID}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
