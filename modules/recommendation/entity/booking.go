package entity

import "fmt"

const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Booking is an existing reservation as read from the booking store.
// Date and times stay as text so a malformed row can be reported instead
// of failing the whole scan.
type Booking struct {
	ID        int64  `db:"id" json:"id"`
	SpaceID   *int64 `db:"space_id" json:"space_id"`
	Date      string `db:"date" json:"date"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
	Status    string `db:"status" json:"status"`
	Activity  string `db:"activity" json:"activity,omitempty"`
}

// Blocking reports whether the booking occupies its space. Only pending and
// approved bookings do.
func (b Booking) Blocking() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}

// Window parses the booking's times. It fails when the space, date or
// either time is missing, unparseable, or the end is not after the start.
func (b Booking) Window() (TimeWindow, error) {
	if b.SpaceID == nil {
		return TimeWindow{}, fmt.Errorf("booking %d: missing space", b.ID)
	}
	if b.Date == "" {
		return TimeWindow{}, fmt.Errorf("booking %d: missing date", b.ID)
	}
	w, err := NewTimeWindow(b.Date, b.StartTime, b.EndTime)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("booking %d: %w", b.ID, err)
	}
	return w, nil
}

// MalformedBooking is a booking skipped during conflict analysis.
type MalformedBooking struct {
	Booking Booking `json:"booking"`
	Reason  string  `json:"reason"`
}
