package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Blocking(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{BookingStatusPending, true},
		{BookingStatusApproved, true},
		{BookingStatusRejected, false},
		{"cancelled", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, Booking{Status: tt.status}.Blocking())
		})
	}
}
