package entity

// Request is a validated recommendation request.
type Request struct {
	Window            TimeWindow
	Headcount         int
	Activity          string
	PreferredBuilding string
	PreferredFloor    string
	PreferredCategory string

	MinCapacity          int
	MaxCapacity          int
	AcceptableBuildings  []string
	AcceptableCategories []string
}

// AlternativeSlot is a free window of the requested length for one space.
type AlternativeSlot struct {
	SpaceID   int64      `json:"space_id"`
	SpaceName string     `json:"space_name,omitempty"`
	Location  string     `json:"location,omitempty"`
	Window    TimeWindow `json:"window"`
	Score     int        `json:"score"`
}

type Availability struct {
	IsAvailable  bool              `json:"is_available"`
	Conflicts    []Booking         `json:"conflicts"`
	Alternatives []AlternativeSlot `json:"next_alternatives"`
}

// Status is a short label for the availability state.
func (a Availability) Status() string {
	switch {
	case a.IsAvailable:
		return "available"
	case len(a.Alternatives) > 0:
		return "alternatives"
	default:
		return "unavailable"
	}
}

type ScoreBreakdown struct {
	Capacity       int      `json:"capacity"`
	Location       int      `json:"location"`
	Availability   int      `json:"availability"`
	Total          int      `json:"total"`
	Advantages     []string `json:"advantages"`
	Considerations []string `json:"considerations"`
}

type Candidate struct {
	Space        Space          `json:"space"`
	Availability Availability   `json:"availability"`
	Score        ScoreBreakdown `json:"score"`
	IsOptimal    bool           `json:"is_optimal"`
	WhyOptimal   string         `json:"why_optimal,omitempty"`
}
