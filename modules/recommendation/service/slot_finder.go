package service

import (
	"fmt"
	"sort"

	"room-booking-api/core/config"
	"room-booking-api/modules/recommendation/entity"
)

// SlotFinder proposes free windows of the requested length for one space.
type SlotFinder struct {
	// DayStart - default 08:00
	DayStart entity.TimeOfDay
	// DayEnd - default 20:00, a slot may end exactly here
	DayEnd entity.TimeOfDay
	// StepMinutes between candidate starts
	StepMinutes int
	// Limit of slots returned per space
	Limit int
}

func NewSlotFinder() *SlotFinder {
	return &SlotFinder{
		DayStart:    entity.MustParseTimeOfDay("08:00"),
		DayEnd:      entity.MustParseTimeOfDay("20:00"),
		StepMinutes: 30,
		Limit:       3,
	}
}

func NewSlotFinderFromConfig(cfg config.RecommendationConfig) (*SlotFinder, error) {
	sf := NewSlotFinder()
	if cfg.DayStart != "" {
		start, err := entity.ParseTimeOfDay(cfg.DayStart)
		if err != nil {
			return nil, fmt.Errorf("recommendation.day_start: %w", err)
		}
		sf.DayStart = start
	}
	if cfg.DayEnd != "" {
		end, err := entity.ParseTimeOfDay(cfg.DayEnd)
		if err != nil {
			return nil, fmt.Errorf("recommendation.day_end: %w", err)
		}
		sf.DayEnd = end
	}
	if sf.DayEnd <= sf.DayStart {
		return nil, fmt.Errorf("recommendation.day_end %s must be after day_start %s", sf.DayEnd, sf.DayStart)
	}
	if cfg.StepMinutes > 0 {
		sf.StepMinutes = cfg.StepMinutes
	}
	return sf, nil
}

// FindAlternatives returns up to Limit windows with the same duration as
// requested that overlap none of busy, best proximity first.
func (sf *SlotFinder) FindAlternatives(space entity.Space, requested entity.TimeWindow, busy []entity.TimeWindow) []entity.AlternativeSlot {
	duration := requested.Duration()
	if duration <= 0 || sf.StepMinutes <= 0 {
		return []entity.AlternativeSlot{}
	}

	// 1. Merge overlapping busy windows
	merged := sf.mergeOverlapping(busy)

	// 2. Generate candidate windows across the day
	all := sf.generateWindows(requested.Date, duration)

	// 3. Drop those that hit a busy window
	free := sf.filterBusy(all, merged)

	// 4. Score by distance to the requested start
	slots := make([]entity.AlternativeSlot, len(free))
	for i, w := range free {
		slots[i] = entity.AlternativeSlot{
			SpaceID:   space.ID,
			SpaceName: space.Name,
			Location:  space.Location(),
			Window:    w,
			Score:     ProximityScore(w.Start, requested.Start),
		}
	}

	// 5. Best score first, earlier start on ties
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Score != slots[j].Score {
			return slots[i].Score > slots[j].Score
		}
		return slots[i].Window.Start < slots[j].Window.Start
	})

	if sf.Limit > 0 && len(slots) > sf.Limit {
		return slots[:sf.Limit]
	}
	return slots
}

// ProximityScore rates a slot by how far its start is from the requested one.
func ProximityScore(slotStart, requestedStart entity.TimeOfDay) int {
	diff := int(slotStart - requestedStart)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 100
	case diff <= 30:
		return 90
	case diff <= 60:
		return 80
	case diff <= 120:
		return 70
	default:
		return 60
	}
}

// mergeOverlapping merges overlapping or adjacent windows. The input is not modified.
func (sf *SlotFinder) mergeOverlapping(windows []entity.TimeWindow) []entity.TimeWindow {
	if len(windows) == 0 {
		return nil
	}

	sorted := make([]entity.TimeWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	merged := []entity.TimeWindow{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if current.Start <= last.End {
			if current.End > last.End {
				last.End = current.End
			}
			continue
		}
		merged = append(merged, current)
	}
	return merged
}

func (sf *SlotFinder) generateWindows(date string, duration int) []entity.TimeWindow {
	var windows []entity.TimeWindow
	for start := sf.DayStart; start.Add(duration) <= sf.DayEnd; start = start.Add(sf.StepMinutes) {
		windows = append(windows, entity.TimeWindow{
			Date:  date,
			Start: start,
			End:   start.Add(duration),
		})
	}
	return windows
}

func (sf *SlotFinder) filterBusy(windows, busy []entity.TimeWindow) []entity.TimeWindow {
	free := make([]entity.TimeWindow, 0, len(windows))
	for _, w := range windows {
		isFree := true
		for _, b := range busy {
			if Overlaps(w.Start, w.End, b.Start, b.End) {
				isFree = false
				break
			}
		}
		if isFree {
			free = append(free, w)
		}
	}
	return free
}
