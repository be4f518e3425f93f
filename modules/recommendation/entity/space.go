package entity

// Space is a bookable room. Building and Floor are empty when unknown.
type Space struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Capacity int    `db:"capacity" json:"capacity"`
	Category string `db:"category" json:"category"`
	FloorID  *int64 `db:"floor_id" json:"floor_id,omitempty"`
	Building string `db:"building" json:"building"`
	Floor    string `db:"floor" json:"floor"`
}

// Location renders "building - floor" with placeholders for missing parts.
func (s Space) Location() string {
	building, floor := s.Building, s.Floor
	if building == "" {
		building = "unknown building"
	}
	if floor == "" {
		floor = "unknown floor"
	}
	return building + " - " + floor
}

// Building is the top of the location hierarchy.
type Building struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Floors []Floor `db:"-" json:"floors"`
}

type Floor struct {
	ID         int64  `db:"id" json:"id"`
	BuildingID int64  `db:"building_id" json:"building_id"`
	Label      string `db:"label" json:"label"`
}
