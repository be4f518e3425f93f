package service

import (
	"math"
	"strings"

	"room-booking-api/modules/recommendation/entity"
)

const (
	WeightCapacity     = 0.4
	WeightLocation     = 0.3
	WeightAvailability = 0.3
)

// Advantage and consideration tags.
const (
	TagPerfectCapacity      = "perfectly matched capacity"
	TagSufficientCapacity   = "sufficient capacity"
	TagSlightlyUndersized   = "slightly undersized"
	TagComfortableCapacity  = "comfortable capacity"
	TagSlightlyOversized    = "slightly oversized"
	TagVerySpacious         = "very spacious"
	TagMayBeTooLarge        = "may be too large"
	TagInsufficientCapacity = "insufficient capacity"

	TagPreferredBuilding = "preferred building"
	TagPreferredFloor    = "preferred floor"
	TagPreciseLocation   = "precise location"

	TagImmediatelyAvailable  = "immediately available"
	TagAlternativesAvailable = "alternatives available"
	TagNotAtRequestedTime    = "not available at requested time"
	TagNoSlots               = "no available slots"
)

type subScore struct {
	score          int
	advantages     []string
	considerations []string
}

// Score combines the capacity, location and availability sub-scores.
// Tags are collected in that order.
func Score(space entity.Space, req entity.Request, availability entity.Availability) entity.ScoreBreakdown {
	capacity := capacityScore(space.Capacity, req.Headcount)
	location := locationScore(space, req)
	avail := availabilityScore(availability)

	out := entity.ScoreBreakdown{
		Capacity:       capacity.score,
		Location:       location.score,
		Availability:   avail.score,
		Advantages:     []string{},
		Considerations: []string{},
	}
	out.Total = int(math.Round(
		float64(capacity.score)*WeightCapacity +
			float64(location.score)*WeightLocation +
			float64(avail.score)*WeightAvailability,
	))

	for _, s := range []subScore{capacity, location, avail} {
		out.Advantages = append(out.Advantages, s.advantages...)
		out.Considerations = append(out.Considerations, s.considerations...)
	}
	return out
}

// CapacityBand classifies capacity/headcount using integer comparisons so
// the 0.6, 0.8, 1.2 and 1.5 boundaries are exact.
type CapacityBand int

const (
	BandTooSmall CapacityBand = iota
	BandSmall
	BandPerfect
	BandLarge
	BandVeryLarge
)

func ClassifyCapacity(capacity, headcount int) CapacityBand {
	if headcount <= 0 {
		return BandTooSmall
	}
	c, h := int64(capacity), int64(headcount)
	switch {
	case 5*c >= 4*h && 5*c <= 6*h:
		return BandPerfect
	case 5*c >= 3*h && 5*c < 4*h:
		return BandSmall
	case 5*c > 6*h && 2*c <= 3*h:
		return BandLarge
	case 2*c > 3*h:
		return BandVeryLarge
	default:
		return BandTooSmall
	}
}

func capacityScore(capacity, headcount int) subScore {
	switch ClassifyCapacity(capacity, headcount) {
	case BandPerfect:
		return subScore{score: 100, advantages: []string{TagPerfectCapacity}}
	case BandSmall:
		return subScore{score: 70, advantages: []string{TagSufficientCapacity}, considerations: []string{TagSlightlyUndersized}}
	case BandLarge:
		return subScore{score: 85, advantages: []string{TagComfortableCapacity}, considerations: []string{TagSlightlyOversized}}
	case BandVeryLarge:
		return subScore{score: 60, advantages: []string{TagVerySpacious}, considerations: []string{TagMayBeTooLarge}}
	default:
		return subScore{score: 30, considerations: []string{TagInsufficientCapacity}}
	}
}

func locationScore(space entity.Space, req entity.Request) subScore {
	s := subScore{score: 50}

	if sameLabel(req.PreferredBuilding, space.Building) {
		s.score += 30
		s.advantages = append(s.advantages, TagPreferredBuilding)
	}
	if sameLabel(req.PreferredFloor, space.Floor) {
		s.score += 20
		s.advantages = append(s.advantages, TagPreferredFloor)
	}
	if strings.TrimSpace(space.Building) != "" && strings.TrimSpace(space.Floor) != "" {
		s.score += 10
		s.advantages = append(s.advantages, TagPreciseLocation)
	}

	if s.score > 100 {
		s.score = 100
	}
	return s
}

func availabilityScore(a entity.Availability) subScore {
	switch {
	case a.IsAvailable:
		return subScore{score: 100, advantages: []string{TagImmediatelyAvailable}}
	case len(a.Alternatives) > 0:
		return subScore{score: 70, advantages: []string{TagAlternativesAvailable}, considerations: []string{TagNotAtRequestedTime}}
	default:
		return subScore{score: 20, considerations: []string{TagNoSlots}}
	}
}

// sameLabel is true when a preference is set and equals the value, ignoring
// case and surrounding space.
func sameLabel(preferred, value string) bool {
	preferred = strings.TrimSpace(preferred)
	return preferred != "" && strings.EqualFold(preferred, strings.TrimSpace(value))
}
