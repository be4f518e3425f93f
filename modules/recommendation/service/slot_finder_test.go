package service

import (
	"testing"

	"room-booking-api/core/config"
	"room-booking-api/modules/recommendation/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProximityScore(t *testing.T) {
	req := tod("10:00")
	assert.Equal(t, 100, ProximityScore(tod("10:00"), req))
	assert.Equal(t, 90, ProximityScore(tod("09:30"), req))
	assert.Equal(t, 90, ProximityScore(tod("10:30"), req))
	assert.Equal(t, 80, ProximityScore(tod("11:00"), req))
	assert.Equal(t, 70, ProximityScore(tod("12:00"), req))
	assert.Equal(t, 70, ProximityScore(tod("08:00"), req))
	assert.Equal(t, 60, ProximityScore(tod("12:01"), req))
	assert.Equal(t, 60, ProximityScore(tod("07:59"), req))
	assert.Equal(t, 60, ProximityScore(tod("12:30"), req))
}

func TestFindAlternatives_FreeDay(t *testing.T) {
	sf := NewSlotFinder()
	slots := sf.FindAlternatives(space(1, 10, "A", "1"), window("10:00", "11:00"), nil)

	require.Len(t, slots, 3)
	assert.Equal(t, "10:00", slots[0].Window.Start.String())
	assert.Equal(t, 100, slots[0].Score)
	// 09:30 and 10:30 both score 90, earlier start wins
	assert.Equal(t, "09:30", slots[1].Window.Start.String())
	assert.Equal(t, "10:30", slots[2].Window.Start.String())
	for _, s := range slots {
		assert.Equal(t, int64(1), s.SpaceID)
		assert.Equal(t, 60, s.Window.Duration())
	}
}

func TestFindAlternatives_SkipsBusy(t *testing.T) {
	sf := NewSlotFinder()
	busy := []entity.TimeWindow{window("09:00", "11:00"), window("11:00", "12:00")}
	requested := window("10:00", "11:00")

	slots := sf.FindAlternatives(space(1, 10, "A", "1"), requested, busy)

	require.NotEmpty(t, slots)
	for _, s := range slots {
		for _, b := range busy {
			assert.False(t, Overlaps(s.Window.Start, s.Window.End, b.Start, b.End), "slot %s hits %s", s.Window, b)
		}
	}
	// 08:00-09:00 ends where the first booking starts
	assert.Equal(t, "08:00", slots[0].Window.Start.String())
	assert.Equal(t, 70, slots[0].Score)
	assert.Equal(t, "12:00", slots[1].Window.Start.String())
	assert.Equal(t, 70, slots[1].Score)
}

func TestFindAlternatives_LastSlotEndsAtDayEnd(t *testing.T) {
	sf := NewSlotFinder()
	sf.Limit = 0

	slots := sf.FindAlternatives(space(1, 10, "A", "1"), window("19:00", "20:00"), nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, "19:00", slots[0].Window.Start.String())
	for _, s := range slots {
		assert.LessOrEqual(t, s.Window.End, tod("20:00"))
		assert.GreaterOrEqual(t, s.Window.Start, tod("08:00"))
	}
	// 08:00 .. 19:00 in 30 minute steps
	assert.Len(t, slots, 23)
}

func TestFindAlternatives_Degenerate(t *testing.T) {
	sf := NewSlotFinder()

	zero := entity.TimeWindow{Date: testDate, Start: tod("10:00"), End: tod("10:00")}
	assert.Empty(t, sf.FindAlternatives(space(1, 10, "", ""), zero, nil))

	negative := entity.TimeWindow{Date: testDate, Start: tod("11:00"), End: tod("10:00")}
	assert.Empty(t, sf.FindAlternatives(space(1, 10, "", ""), negative, nil))

	tooLong := window("06:00", "21:00")
	assert.Empty(t, sf.FindAlternatives(space(1, 10, "", ""), tooLong, nil))
}

func TestMergeOverlapping(t *testing.T) {
	sf := NewSlotFinder()
	in := []entity.TimeWindow{window("13:00", "14:00"), window("09:00", "10:00"), window("10:00", "11:00"), window("09:30", "10:30")}

	merged := sf.mergeOverlapping(in)

	require.Len(t, merged, 2)
	assert.Equal(t, "09:00 - 11:00", merged[0].String())
	assert.Equal(t, "13:00 - 14:00", merged[1].String())
	assert.Equal(t, "13:00", in[0].Start.String(), "input untouched")
}

func TestNewSlotFinderFromConfig(t *testing.T) {
	sf, err := NewSlotFinderFromConfig(config.RecommendationConfig{DayStart: "07:00", DayEnd: "18:00", StepMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, tod("07:00"), sf.DayStart)
	assert.Equal(t, tod("18:00"), sf.DayEnd)
	assert.Equal(t, 15, sf.StepMinutes)

	_, err = NewSlotFinderFromConfig(config.RecommendationConfig{DayStart: "18:00", DayEnd: "08:00"})
	assert.Error(t, err)

	_, err = NewSlotFinderFromConfig(config.RecommendationConfig{DayStart: "8am"})
	assert.Error(t, err)
}
