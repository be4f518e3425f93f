package service

import (
	"fmt"
	"sort"
	"strings"

	"room-booking-api/modules/recommendation/dto"
	"room-booking-api/modules/recommendation/entity"
)

const (
	ReasonCapacity     = "perfectly matched capacity"
	ReasonLocation     = "ideal location"
	ReasonAvailability = "immediate availability"
	ReasonCompromise   = "best overall compromise"

	RationaleNoSpace = "no space available for this request"

	unknownLabel = "unknown"
)

// WhyOptimal lists the sub-scores of c that reached 90.
func WhyOptimal(c entity.Candidate) string {
	var reasons []string
	if c.Score.Capacity >= 90 {
		reasons = append(reasons, ReasonCapacity)
	}
	if c.Score.Location >= 90 {
		reasons = append(reasons, ReasonLocation)
	}
	if c.Score.Availability >= 90 {
		reasons = append(reasons, ReasonAvailability)
	}
	if len(reasons) == 0 {
		return ReasonCompromise
	}
	return strings.Join(reasons, ", ")
}

// TopAlternatives merges the alternatives of all candidates, best first.
func TopAlternatives(candidates []entity.Candidate, limit int) []entity.AlternativeSlot {
	all := []entity.AlternativeSlot{}
	for _, c := range candidates {
		all = append(all, c.Availability.Alternatives...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		if all[i].Window.Start != all[j].Window.Start {
			return all[i].Window.Start < all[j].Window.Start
		}
		return all[i].SpaceID < all[j].SpaceID
	})
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}

// OptimalSlot is the requested window when the optimal space is free,
// otherwise its best alternative.
func OptimalSlot(optimal *entity.Candidate, requested entity.TimeWindow) *entity.AlternativeSlot {
	if optimal == nil {
		return nil
	}
	if optimal.Availability.IsAvailable {
		return &entity.AlternativeSlot{
			SpaceID:   optimal.Space.ID,
			SpaceName: optimal.Space.Name,
			Location:  optimal.Space.Location(),
			Window:    requested,
			Score:     100,
		}
	}
	if len(optimal.Availability.Alternatives) > 0 {
		slot := optimal.Availability.Alternatives[0]
		return &slot
	}
	return nil
}

func Reasoning(candidates []entity.Candidate) string {
	if len(candidates) == 0 {
		return RationaleNoSpace
	}
	best := candidates[0]

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d spaces and recommends %s", len(candidates), best.Space.Name)
	var parts []string
	if best.Score.Capacity >= 90 {
		parts = append(parts, "its perfectly matched capacity")
	}
	if best.Score.Location >= 90 {
		parts = append(parts, "its ideal location")
	}
	if best.Score.Availability >= 90 {
		parts = append(parts, "its immediate availability")
	}
	if len(parts) > 0 {
		b.WriteString(" for ")
		b.WriteString(strings.Join(parts, " and "))
	}
	fmt.Fprintf(&b, ". Overall score: %d/100.", best.Score.Total)
	return b.String()
}

func OptimalStrategy(candidates []entity.Candidate) string {
	if len(candidates) == 0 {
		return "no strategy available"
	}
	best := candidates[0]
	state := "alternatives proposed"
	if best.Availability.IsAvailable {
		state = "available immediately"
	}
	return fmt.Sprintf("Book %s (%s), prioritising capacity (%d/100) and location (%d/100).",
		best.Space.Name, state, best.Score.Capacity, best.Score.Location)
}

// ConflictResolution is nil when no candidate conflicts with the request.
func ConflictResolution(candidates []entity.Candidate) *string {
	n := 0
	for _, c := range candidates {
		if len(c.Availability.Conflicts) > 0 {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	msg := fmt.Sprintf("%d spaces conflict with the requested window; alternative slots are proposed.", n)
	return &msg
}

func CapacityAnalysis(candidates []entity.Candidate, headcount int) dto.CapacityAnalysis {
	out := dto.CapacityAnalysis{Required: headcount, Available: []int{}}
	for _, c := range candidates {
		out.Available = append(out.Available, c.Space.Capacity)
		switch ClassifyCapacity(c.Space.Capacity, headcount) {
		case BandPerfect:
			out.Distribution.Perfect++
		case BandSmall:
			out.Distribution.Small++
		case BandLarge:
			out.Distribution.Large++
		case BandVeryLarge:
			out.Distribution.VeryLarge++
		default:
			out.Distribution.TooSmall++
		}
	}

	d := out.Distribution
	switch {
	case d.Perfect > 0:
		out.Recommendation = "perfectly sized spaces available"
	case d.Large > 0:
		out.Recommendation = "slightly oversized spaces recommended"
	case d.Small > 0:
		out.Recommendation = "undersized but usable spaces"
	case d.VeryLarge > 0:
		out.Recommendation = "only much larger spaces available"
	default:
		out.Recommendation = "no suitable space found"
	}
	return out
}

func LocationAnalysis(candidates []entity.Candidate, req entity.Request) dto.LocationAnalysis {
	out := dto.LocationAnalysis{
		Buildings:         map[string]int{},
		Floors:            map[string]int{},
		Categories:        map[string]int{},
		PreferredBuilding: req.PreferredBuilding,
		PreferredFloor:    req.PreferredFloor,
		PreferredCategory: req.PreferredCategory,
	}

	var hasBuilding, hasFloor, hasCategory bool
	for _, c := range candidates {
		out.Buildings[labelOrUnknown(c.Space.Building)]++
		out.Floors[labelOrUnknown(c.Space.Building)+"/"+labelOrUnknown(c.Space.Floor)]++
		out.Categories[labelOrUnknown(c.Space.Category)]++
		hasBuilding = hasBuilding || sameLabel(req.PreferredBuilding, c.Space.Building)
		hasFloor = hasFloor || sameLabel(req.PreferredFloor, c.Space.Floor)
		hasCategory = hasCategory || sameLabel(req.PreferredCategory, c.Space.Category)
	}

	switch {
	case hasBuilding:
		out.Recommendation = fmt.Sprintf("preferred building %s available", req.PreferredBuilding)
	case hasFloor:
		out.Recommendation = fmt.Sprintf("preferred floor %s available", req.PreferredFloor)
	case hasCategory:
		out.Recommendation = fmt.Sprintf("preferred category %s available", req.PreferredCategory)
	default:
		out.Recommendation = "flexible location recommended"
	}
	return out
}

func TimingAnalysis(candidates []entity.Candidate, requested entity.TimeWindow) dto.TimingAnalysis {
	out := dto.TimingAnalysis{RequestedSlot: requested.String()}
	for _, c := range candidates {
		switch {
		case c.Availability.IsAvailable:
			out.Immediate++
		case len(c.Availability.Alternatives) > 0:
			out.Alternatives++
		default:
			out.Unavailable++
		}
	}

	switch {
	case out.Immediate > 0:
		out.Recommendation = "slots immediately available"
	case out.Alternatives > 0:
		out.Recommendation = "alternative slots proposed"
	default:
		out.Recommendation = "no slot available for this window"
	}
	return out
}

func labelOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownLabel
	}
	return s
}
