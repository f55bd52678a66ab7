// Package store persists the application's record collections. Each
// collection is one JSON document holding a flat list of records;
// reads decode the whole document and writes replace it wholesale.
// There is no row-level access and no cross-collection transaction.
//
// Reads are deliberately lenient: a missing or unparsable document is
// treated as an empty collection instead of surfacing a decode error.
// The service layer prefers serving an empty list over refusing to
// start because one blob on disk went bad.
package store

import "context"

// Collection names. Every backend keys its documents by these.
const (
	Users    = "shuttle_users"
	Events   = "shuttle_events"
	Bookings = "shuttle_bookings"
)

// Store reads and replaces whole record collections.
//
// Read decodes the named collection into out, which must be a pointer
// to a slice. A collection that is absent or corrupt leaves out as an
// empty slice and returns nil. Write marshals in and replaces the
// named collection atomically with respect to other calls on the same
// Store value.
type Store interface {
	Read(ctx context.Context, collection string, out any) error
	Write(ctx context.Context, collection string, in any) error
}
