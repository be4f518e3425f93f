package entity

import "time"

// Snapshot is one consistent generation of directory data for a date.
// It is shared between requests and must be treated as read-only.
type Snapshot struct {
	Date        string             `json:"date"`
	Spaces      []Space            `json:"spaces"`
	Bookings    []Booking          `json:"bookings"`
	Malformed   []MalformedBooking `json:"malformed"`
	Hierarchy   []Building         `json:"hierarchy"`
	RefreshedAt time.Time          `json:"refreshed_at"`
	Stale       bool               `json:"stale"`
}

// BookingsBySpace groups the snapshot's bookings by space ID.
func (s *Snapshot) BookingsBySpace() map[int64][]Booking {
	out := make(map[int64][]Booking)
	for _, b := range s.Bookings {
		if b.SpaceID == nil {
			continue
		}
		out[*b.SpaceID] = append(out[*b.SpaceID], b)
	}
	return out
}
