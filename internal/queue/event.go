// Package queue defines the booking lifecycle messages published to
// the broker and the publisher that sends them.
package queue

// BookingCreatedEvent is published when a seat is reserved. It
// carries enough for downstream consumers (notifications, analytics)
// to act without querying the primary store.
type BookingCreatedEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	EventDate   string `json:"event_date"`
	EventTime   string `json:"event_time"`
	PickupPoint string `json:"pickup_point"`
	TicketCode  string `json:"ticket_code"`
	CreatedAt   string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking is removed,
// either by the rider, by an admin, or as part of an event's
// cascading delete.
type BookingCancelledEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	CancelledAt string `json:"cancelled_at"`
}

// RiderCheckedInEvent is published the first time a booking is
// confirmed at the shuttle door. Re-scans of an already checked-in
// ticket do not publish again.
type RiderCheckedInEvent struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	EventID     string `json:"event_id"`
	TicketCode  string `json:"ticket_code"`
	CheckedInAt string `json:"checked_in_at"`
}
