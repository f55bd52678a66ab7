// Package service implements the booking domain: identity, event and
// booking management, and the ticket check-in path. Sentinel errors
// declared here let handlers map each failure to an HTTP status
// without inspecting error strings.
package service

import "errors"

// ErrInvalidCredentials is returned by Authenticate when no stored
// user matches the supplied email and secret exactly. Handlers
// translate it into 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailExists is returned by Register when the email is already
// taken. Handlers translate it into 409.
var ErrEmailExists = errors.New("email already registered")

// ErrForbidden is returned when the acting user lacks the role an
// operation requires. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrEventNotFound is returned when an event id does not resolve.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when a user id does not resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrBookingNotFound is returned when a booking id does not resolve.
var ErrBookingNotFound = errors.New("booking not found")

// ErrPickupPointNotFound is returned when a booking names a pickup
// point the target event does not offer.
var ErrPickupPointNotFound = errors.New("pickup point not found")

// ErrShuttleFull is returned by CreateBooking when the event already
// has as many bookings as seats. Handlers translate it into 409.
var ErrShuttleFull = errors.New("shuttle is full")

// ErrTicketNotFound is returned by ResolveTicket when no booking
// carries the scanned code.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrInvalidInput is returned when a create or update payload fails
// validation. It is always wrapped with a reason; match with
// errors.Is and show err.Error() to the caller.
var ErrInvalidInput = errors.New("invalid input")
