package repository

import (
	"context"
	"fmt"

	"room-booking-api/core/database"
	"room-booking-api/core/logger"
	"room-booking-api/modules/recommendation/entity"
)

// DirectoryRepository reads spaces, the location hierarchy and bookings
// from PostgreSQL. It never writes.
type DirectoryRepository struct {
	DB database.IDatabase
}

func NewDirectoryRepository(db database.IDatabase) *DirectoryRepository {
	return &DirectoryRepository{DB: db}
}

const listSpacesQuery = `
	SELECT s.id, s.name, s.capacity, COALESCE(s.category, '') AS category, s.floor_id,
	       COALESCE(b.name, '') AS building, COALESCE(f.label, '') AS floor
	FROM spaces s
	LEFT JOIN floors f ON f.id = s.floor_id
	LEFT JOIN buildings b ON b.id = f.building_id
	ORDER BY s.id
`

const listBuildingsQuery = `
	SELECT id, name FROM buildings ORDER BY name, id
`

const listFloorsQuery = `
	SELECT id, building_id, label FROM floors ORDER BY building_id, label, id
`

// Times are rendered as text so one bad row is reported rather than
// failing the scan.
const listBookingsQuery = `
	SELECT id, space_id,
	       COALESCE(to_char(date, 'YYYY-MM-DD'), '') AS date,
	       COALESCE(to_char(start_time, 'HH24:MI'), '') AS start_time,
	       COALESCE(to_char(end_time, 'HH24:MI'), '') AS end_time,
	       status, COALESCE(activity, '') AS activity
	FROM bookings
	WHERE date = $1::date AND status IN ('pending', 'approved')
	ORDER BY start_time NULLS LAST, id
`

func (r *DirectoryRepository) ListSpaces(ctx context.Context) ([]entity.Space, error) {
	var spaces []entity.Space
	if err := r.DB.SelectContext(ctx, &spaces, listSpacesQuery); err != nil {
		logger.Error("DirectoryRepository:ListSpaces:Error", "error", err)
		return nil, fmt.Errorf("select spaces: %w", err)
	}
	return spaces, nil
}

func (r *DirectoryRepository) ListLocationHierarchy(ctx context.Context) ([]entity.Building, error) {
	var buildings []entity.Building
	if err := r.DB.SelectContext(ctx, &buildings, listBuildingsQuery); err != nil {
		logger.Error("DirectoryRepository:ListLocationHierarchy:Buildings", "error", err)
		return nil, fmt.Errorf("select buildings: %w", err)
	}

	var floors []entity.Floor
	if err := r.DB.SelectContext(ctx, &floors, listFloorsQuery); err != nil {
		logger.Error("DirectoryRepository:ListLocationHierarchy:Floors", "error", err)
		return nil, fmt.Errorf("select floors: %w", err)
	}

	return AssembleHierarchy(buildings, floors), nil
}

func (r *DirectoryRepository) ListBookings(ctx context.Context, date string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	if err := r.DB.SelectContext(ctx, &bookings, listBookingsQuery, date); err != nil {
		logger.Error("DirectoryRepository:ListBookings:Error", "date", date, "error", err)
		return nil, fmt.Errorf("select bookings for %s: %w", date, err)
	}
	return bookings, nil
}

// AssembleHierarchy attaches floors to their buildings. Floors whose
// building is unknown are dropped.
func AssembleHierarchy(buildings []entity.Building, floors []entity.Floor) []entity.Building {
	out := make([]entity.Building, len(buildings))
	index := make(map[int64]int, len(buildings))
	for i, b := range buildings {
		b.Floors = []entity.Floor{}
		out[i] = b
		index[b.ID] = i
	}
	for _, f := range floors {
		i, ok := index[f.BuildingID]
		if !ok {
			continue
		}
		out[i].Floors = append(out[i].Floors, f)
	}
	return out
}
