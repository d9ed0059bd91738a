package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to active", StatusPending, StatusActive, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"active to completed", StatusActive, StatusCompleted, true},
		{"active to cancelled", StatusActive, StatusCancelled, true},
		{"active to pending", StatusActive, StatusPending, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"completed to active", StatusCompleted, StatusActive, false},
		{"cancelled to completed", StatusCancelled, StatusCompleted, false},
		{"cancelled to active", StatusCancelled, StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestBookingTransition(t *testing.T) {
	t.Run("active completes", func(t *testing.T) {
		b := &Booking{Status: StatusActive}
		require.NoError(t, b.Transition(StatusCompleted))
		assert.Equal(t, StatusCompleted, b.Status)
	})

	t.Run("active cancels", func(t *testing.T) {
		b := &Booking{Status: StatusActive}
		require.NoError(t, b.Transition(StatusCancelled))
		assert.Equal(t, StatusCancelled, b.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		b := &Booking{Status: StatusCompleted}
		err := b.Transition(StatusCancelled)
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatusCompleted, b.Status)
	})

	t.Run("repeated complete fails", func(t *testing.T) {
		b := &Booking{Status: StatusActive}
		require.NoError(t, b.Transition(StatusCompleted))
		require.ErrorIs(t, b.Transition(StatusCompleted), ErrInvalidTransition)
	})
}

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		StartTime: base,                    // 10:00
		EndTime:   base.Add(1 * time.Hour), // 11:00
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical window", base, base.Add(1 * time.Hour), true},
		{"contained window", base.Add(30 * time.Minute), base.Add(45 * time.Minute), true},
		{"crossing start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"crossing end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"adjacent after", base.Add(1 * time.Hour), base.Add(2 * time.Hour), false},
		{"adjacent before", base.Add(-1 * time.Hour), base, false},
		{"disjoint after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"disjoint before", base.Add(-2 * time.Hour), base.Add(-1 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBookingStatusPredicates(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsBlocking())
	assert.True(t, (&Booking{Status: StatusActive}).IsBlocking())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsBlocking())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsBlocking())

	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusActive}).IsTerminal())

	assert.True(t, (&Booking{Status: StatusActive}).CanBeCompleted())
	assert.False(t, (&Booking{Status: StatusPending}).CanBeCompleted())
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusActive}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}
