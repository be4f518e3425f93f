package entity_test

import (
	"encoding/json"
	"testing"

	"room-booking-api/modules/recommendation/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "00:00", want: 0},
		{in: "23:59", want: 23*60 + 59},
		{in: "10:30:45", want: 630},
		{in: " 08:15 ", want: 495},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
		{in: "09:00:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entity.ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	w := entity.TimeWindow{Date: "2024-01-15", Start: entity.MustParseTimeOfDay("09:00"), End: entity.MustParseTimeOfDay("10:30")}

	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-15","start_time":"09:00","end_time":"10:30"}`, string(b))

	var back entity.TimeWindow
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, w, back)
	assert.Equal(t, 90, back.Duration())
}

func TestNewTimeWindow(t *testing.T) {
	_, err := entity.NewTimeWindow("2024-01-15", "10:00", "10:00")
	assert.Error(t, err)

	_, err = entity.NewTimeWindow("2024-13-01", "09:00", "10:00")
	assert.Error(t, err)

	w, err := entity.NewTimeWindow("2024-01-15", "09:00:00", "11:00:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00 - 11:00", w.String())
}

func TestBooking_Window(t *testing.T) {
	id := int64(3)

	_, err := entity.Booking{ID: 1, Date: "2024-01-15", StartTime: "09:00", EndTime: "10:00"}.Window()
	assert.ErrorContains(t, err, "missing space")

	_, err = entity.Booking{ID: 2, SpaceID: &id, Date: "2024-01-15", StartTime: "", EndTime: "10:00"}.Window()
	assert.Error(t, err)

	w, err := entity.Booking{ID: 3, SpaceID: &id, Date: "2024-01-15", StartTime: "09:00", EndTime: "10:00"}.Window()
	require.NoError(t, err)
	assert.Equal(t, 60, w.Duration())
}
