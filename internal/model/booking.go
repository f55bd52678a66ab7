package model

// Booking reserves one seat on an event for a user, as stored in the
// `bookings` collection. UserID, EventID and PickupPointID are weak
// references resolved by lookup; readers must tolerate a referenced
// record having been deleted since.
//
// Fields:
//
//	ID            – unique identifier (e.g. "booking_7cc1e0...").
//	UserID        – owner of the seat.
//	EventID       – event the seat belongs to.
//	PickupPointID – boarding location, one of the event's pickup points.
//	QRCode        – opaque ticket code encoded into the rider's QR ticket.
//	                Currently identical to the booking id; scanners hand
//	                the decoded string back for lookup.
//	IsCheckedIn   – flips to true exactly once when the rider boards.
type Booking struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	EventID       string `json:"eventId"`
	PickupPointID string `json:"pickupPointId"`
	QRCode        string `json:"qrCode"`
	IsCheckedIn   bool   `json:"isCheckedIn"`
}
