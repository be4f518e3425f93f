package service

import "room-booking-api/modules/recommendation/entity"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Windows that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd entity.TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsText is Overlaps on "HH:MM" strings. Any unparseable input
// yields false; callers validate separately.
func OverlapsText(aStart, aEnd, bStart, bEnd string) bool {
	var t [4]entity.TimeOfDay
	for i, s := range []string{aStart, aEnd, bStart, bEnd} {
		v, err := entity.ParseTimeOfDay(s)
		if err != nil {
			return false
		}
		t[i] = v
	}
	return Overlaps(t[0], t[1], t[2], t[3])
}

func windowsOverlap(a, b entity.TimeWindow) bool {
	return a.Date == b.Date && Overlaps(a.Start, a.End, b.Start, b.End)
}
