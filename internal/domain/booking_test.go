package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		terminal bool
		occupies bool
	}{
		{BookingStatusPending, false, false},
		{BookingStatusConfirmed, false, true},
		{BookingStatusCancelled, true, false},
		{BookingStatusCompleted, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.occupies, tt.status.OccupiesCapacity())
		})
	}
}

func TestRemainingCapacity(t *testing.T) {
	a := &Activity{MaxParticipants: 30, BookedCount: 12}
	assert.Equal(t, 18, a.RemainingCapacity())

	full := &Activity{MaxParticipants: 30, BookedCount: 30}
	assert.Equal(t, 0, full.RemainingCapacity())
}
