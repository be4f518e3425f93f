package service

import (
	"testing"

	"room-booking-api/modules/recommendation/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_BoundaryIsFree(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	bookings := []entity.Booking{booking(1, 1, "09:00", "10:00")}

	got := a.Analyze(space(1, 10, "A", "1"), window("10:00", "11:00"), bookings)

	assert.True(t, got.IsAvailable)
	assert.Empty(t, got.Conflicts)
	assert.NotEmpty(t, got.Alternatives)
}

func TestAnalyze_Overlap(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	b := booking(7, 1, "09:00", "11:00")

	got := a.Analyze(space(1, 10, "A", "1"), window("10:00", "12:00"), []entity.Booking{b})

	assert.False(t, got.IsAvailable)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, int64(7), got.Conflicts[0].ID)
	assert.Equal(t, "available", entity.Availability{IsAvailable: true}.Status())
	assert.Equal(t, "alternatives", got.Status())
}

func TestAnalyze_ListsEveryConflict(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	bookings := []entity.Booking{
		booking(1, 1, "09:00", "10:00"),
		booking(2, 1, "10:30", "11:30"),
		booking(3, 1, "13:00", "14:00"),
	}

	got := a.Analyze(space(1, 10, "A", "1"), window("09:30", "12:00"), bookings)

	require.Len(t, got.Conflicts, 2)
	assert.Equal(t, int64(1), got.Conflicts[0].ID)
	assert.Equal(t, int64(2), got.Conflicts[1].ID)
}

func TestAnalyze_IgnoresUnrelatedAndMalformed(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)

	otherSpace := booking(1, 2, "09:00", "12:00")
	otherDate := booking(2, 1, "09:00", "12:00")
	otherDate.Date = "2024-01-16"
	rejected := booking(3, 1, "09:00", "12:00")
	rejected.Status = entity.BookingStatusRejected
	noTimes := booking(4, 1, "", "")
	badTimes := booking(5, 1, "late", "later")
	noSpace := booking(6, 1, "09:00", "12:00")
	noSpace.SpaceID = nil

	got := a.Analyze(space(1, 10, "A", "1"), window("10:00", "11:00"),
		[]entity.Booking{otherSpace, otherDate, rejected, noTimes, badTimes, noSpace})

	assert.True(t, got.IsAvailable)
	assert.Empty(t, got.Conflicts)
}

func TestAnalyze_FullyBooked(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	bookings := []entity.Booking{booking(1, 1, "08:00", "20:00")}

	got := a.Analyze(space(1, 10, "A", "1"), window("10:00", "11:00"), bookings)

	assert.False(t, got.IsAvailable)
	assert.Empty(t, got.Alternatives)
	assert.Equal(t, "unavailable", got.Status())
}

func TestAnalyze_AlternativesNeverConflict(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	bookings := []entity.Booking{
		booking(1, 1, "08:30", "09:45"),
		booking(2, 1, "10:15", "11:00"),
		booking(3, 1, "14:00", "16:30"),
	}

	for _, req := range []entity.TimeWindow{window("09:00", "10:00"), window("10:00", "12:00"), window("15:00", "15:30")} {
		got := a.Analyze(space(1, 10, "A", "1"), req, bookings)
		for _, alt := range got.Alternatives {
			for _, b := range bookings {
				bw, err := b.Window()
				require.NoError(t, err)
				assert.False(t, windowsOverlap(alt.Window, bw), "alternative %s conflicts with booking %d", alt.Window, b.ID)
			}
		}
	}
}

func TestAnalyze_CancelledBookingDoesNotBlock(t *testing.T) {
	a := NewAvailabilityAnalyzer(nil)
	cancelled := booking(1, 1, "09:00", "11:00")
	cancelled.Status = "cancelled"

	got := a.Analyze(space(1, 10, "A", "1"), window("10:00", "12:00"), []entity.Booking{cancelled})

	assert.True(t, got.IsAvailable)
	assert.Empty(t, got.Conflicts)
}
