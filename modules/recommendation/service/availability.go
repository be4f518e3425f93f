package service

import "room-booking-api/modules/recommendation/entity"

// AvailabilityAnalyzer decides whether a space is free for a window and
// always computes alternatives.
type AvailabilityAnalyzer struct {
	finder *SlotFinder
}

func NewAvailabilityAnalyzer(finder *SlotFinder) *AvailabilityAnalyzer {
	if finder == nil {
		finder = NewSlotFinder()
	}
	return &AvailabilityAnalyzer{finder: finder}
}

// Analyze checks window against the blocking, well-formed bookings of
// space on window.Date. Every overlapping booking is listed.
func (a *AvailabilityAnalyzer) Analyze(space entity.Space, window entity.TimeWindow, bookings []entity.Booking) entity.Availability {
	conflicts := []entity.Booking{}
	var busy []entity.TimeWindow

	for _, b := range bookings {
		if b.SpaceID == nil || *b.SpaceID != space.ID || b.Date != window.Date || !b.Blocking() {
			continue
		}
		bw, err := b.Window()
		if err != nil {
			continue
		}
		busy = append(busy, bw)
		if windowsOverlap(window, bw) {
			conflicts = append(conflicts, b)
		}
	}

	return entity.Availability{
		IsAvailable:  len(conflicts) == 0,
		Conflicts:    conflicts,
		Alternatives: a.finder.FindAlternatives(space, window, busy),
	}
}
