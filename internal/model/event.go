package model

// PickupPoint is one boarding location offered by an event. Points
// are embedded in the event record; their ids only need to be unique
// within that event.
type PickupPoint struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is a single scheduled shuttle run as stored in the `events`
// collection.
//
// Fields:
//
//	ID           – unique identifier (e.g. "event_91d04b...").
//	Date         – run date, "YYYY-MM-DD".
//	Time         – departure time, "HH:MM".
//	Capacity     – number of seats; always >= 1 once validated.
//	PickupPoints – ordered boarding locations; never empty once validated.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Time         string        `json:"time"`
	Capacity     int           `json:"capacity"`
	PickupPoints []PickupPoint `json:"pickupPoints"`
}

// PickupPoint returns the embedded point with the given id, or nil
// when the event has no such point.
func (e *Event) PickupPoint(id string) *PickupPoint {
	for i := range e.PickupPoints {
		if e.PickupPoints[i].ID == id {
			return &e.PickupPoints[i]
		}
	}
	return nil
}
