package dto

import (
	"time"

	"room-booking-api/modules/recommendation/entity"
)

// ===================== Request DTOs =====================

// RecommendationRequest is the body of POST /recommendations.
// Date and times may be omitted only when default filling is enabled.
type RecommendationRequest struct {
	Date              string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime         string `json:"start_time"` // HH:MM
	EndTime           string `json:"end_time"`   // HH:MM
	Headcount         int    `json:"headcount" validate:"required,min=1"`
	Activity          string `json:"activity" validate:"max=500"`
	PreferredBuilding string `json:"preferred_building"`
	PreferredFloor    string `json:"preferred_floor"`
	PreferredCategory string `json:"preferred_category"`

	// Hard filters, applied before scoring
	MinCapacity          int      `json:"min_capacity" validate:"min=0"`
	MaxCapacity          int      `json:"max_capacity" validate:"omitempty,gtefield=MinCapacity"`
	AcceptableBuildings  []string `json:"acceptable_buildings"`
	AcceptableCategories []string `json:"acceptable_categories"`
}

// ===================== Response DTOs =====================

type RecommendationResult struct {
	ID                  string                   `json:"id"`
	Date                string                   `json:"date"`
	RequestedWindow     entity.TimeWindow        `json:"requested_window"`
	Candidates          []entity.Candidate       `json:"candidates"`
	Optimal             *entity.Candidate        `json:"optimal"`
	OptimalSlot         *entity.AlternativeSlot  `json:"optimal_slot"`
	Rationale           string                   `json:"rationale"`
	Alternatives        []entity.AlternativeSlot `json:"alternatives"`
	Reasoning           string                   `json:"reasoning"`
	OptimalStrategy     string                   `json:"optimal_strategy"`
	HasConflicts        bool                     `json:"has_conflicts"`
	ConflictResolution  *string                  `json:"conflict_resolution"`
	TotalSpacesAnalyzed int                      `json:"total_spaces_analyzed"`
	CapacityAnalysis    CapacityAnalysis         `json:"capacity_analysis"`
	LocationAnalysis    LocationAnalysis         `json:"location_analysis"`
	TimingAnalysis      TimingAnalysis           `json:"timing_analysis"`
	Stale               bool                     `json:"stale"`
	GeneratedAt         time.Time                `json:"generated_at"`
}

type CapacityDistribution struct {
	Perfect   int `json:"perfect"`
	Small     int `json:"small"`
	Large     int `json:"large"`
	VeryLarge int `json:"very_large"`
	TooSmall  int `json:"too_small"`
}

type CapacityAnalysis struct {
	Required       int                  `json:"required"`
	Available      []int                `json:"available"`
	Distribution   CapacityDistribution `json:"distribution"`
	Recommendation string               `json:"recommendation"`
}

type LocationAnalysis struct {
	Buildings         map[string]int `json:"buildings"`
	Floors            map[string]int `json:"floors"`
	Categories        map[string]int `json:"categories"`
	PreferredBuilding string         `json:"preferred_building,omitempty"`
	PreferredFloor    string         `json:"preferred_floor,omitempty"`
	PreferredCategory string         `json:"preferred_category,omitempty"`
	Recommendation    string         `json:"recommendation"`
}

type TimingAnalysis struct {
	RequestedSlot  string `json:"requested_slot"`
	Immediate      int    `json:"immediate"`
	Alternatives   int    `json:"alternatives"`
	Unavailable    int    `json:"unavailable"`
	Recommendation string `json:"recommendation"`
}

// DirectoryRefreshResponse summarises a forced refresh.
type DirectoryRefreshResponse struct {
	Date        string    `json:"date"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Spaces      int       `json:"spaces"`
	Bookings    int       `json:"bookings"`
	Malformed   int       `json:"malformed"`
	Stale       bool      `json:"stale"`
}

type DirectoryEntryStats struct {
	Date        string    `json:"date"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Fresh       bool      `json:"fresh"`
	Spaces      int       `json:"spaces"`
	Bookings    int       `json:"bookings"`
	Malformed   int       `json:"malformed"`
}

type DirectoryStats struct {
	TTL        string                `json:"ttl"`
	AllowStale bool                  `json:"allow_stale"`
	MaxDates   int                   `json:"max_dates"`
	Entries    []DirectoryEntryStats `json:"entries"`
}

type HealthResponse struct {
	Status    string         `json:"status"`
	Directory DirectoryStats `json:"directory"`
}
