package service

import (
	"testing"

	"room-booking-api/modules/recommendation/entity"

	"github.com/stretchr/testify/assert"
)

func tod(s string) entity.TimeOfDay {
	return entity.MustParseTimeOfDay(s)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{name: "touching end to start", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "partial overlap", aStart: "09:00", aEnd: "11:00", bStart: "10:00", bEnd: "12:00", want: true},
		{name: "contained", aStart: "08:00", aEnd: "12:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "identical", aStart: "09:00", aEnd: "10:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "disjoint", aStart: "08:00", aEnd: "09:00", bStart: "13:00", bEnd: "14:00", want: false},
		{name: "midnight start", aStart: "00:00", aEnd: "01:00", bStart: "00:30", bEnd: "02:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tod(tt.aStart), tod(tt.aEnd), tod(tt.bStart), tod(tt.bEnd))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Overlaps(tod(tt.bStart), tod(tt.bEnd), tod(tt.aStart), tod(tt.aEnd)), "symmetry")
			assert.Equal(t, got, OverlapsText(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestOverlaps_SymmetricGrid(t *testing.T) {
	points := []entity.TimeOfDay{0, 480, 510, 540, 600, 630, 720, 1200}
	for _, a := range points {
		for _, b := range points {
			for _, c := range points {
				for _, d := range points {
					assert.Equal(t, Overlaps(a, b, c, d), Overlaps(c, d, a, b))
				}
			}
		}
	}
}

func TestOverlapsText_InvalidInput(t *testing.T) {
	assert.False(t, OverlapsText("nine", "10:00", "09:00", "10:00"))
	assert.False(t, OverlapsText("09:00", "10:00", "", "10:00"))
	assert.False(t, OverlapsText("09:00", "25:00", "09:00", "10:00"))
}
