package domain

import (
	"context"
	"errors"
	"time"

	"github.com/looplab/fsm"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Lifecycle events driving booking status transitions
const (
	EventActivate = "activate"
	EventComplete = "complete"
	EventCancel   = "cancel"
)

// ErrInvalidTransition is returned when a booking status transition is not allowed
// by the lifecycle state machine (including any transition out of a terminal status).
var ErrInvalidTransition = errors.New("domain: invalid booking status transition")

// Booking represents a reservation of a parking slot for a time window.
// LocationID is denormalized from the slot for query convenience.
type Booking struct {
	ID            int64
	UserID        int64
	SlotID        int64
	LocationID    int64
	VehicleClass  VehicleClass
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
	Status        BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newLifecycle builds the booking lifecycle state machine positioned at the given status.
//
//	pending -> active -> completed
//	pending|active -> cancelled
//
// completed and cancelled are terminal.
func newLifecycle(current BookingStatus) *fsm.FSM {
	return fsm.NewFSM(
		string(current),
		fsm.Events{
			{Name: EventActivate, Src: []string{string(StatusPending)}, Dst: string(StatusActive)},
			{Name: EventComplete, Src: []string{string(StatusActive)}, Dst: string(StatusCompleted)},
			{Name: EventCancel, Src: []string{string(StatusPending), string(StatusActive)}, Dst: string(StatusCancelled)},
		},
		fsm.Callbacks{},
	)
}

// eventFor maps a target status onto the lifecycle event leading to it
func eventFor(target BookingStatus) (string, bool) {
	switch target {
	case StatusActive:
		return EventActivate, true
	case StatusCompleted:
		return EventComplete, true
	case StatusCancelled:
		return EventCancel, true
	default:
		return "", false
	}
}

// CanTransition reports whether the lifecycle allows moving from one status to another
func CanTransition(from, to BookingStatus) bool {
	event, ok := eventFor(to)
	if !ok {
		return false
	}
	return newLifecycle(from).Can(event)
}

// Transition advances the booking status through the lifecycle state machine.
// Returns ErrInvalidTransition if the move is not allowed.
func (b *Booking) Transition(to BookingStatus) error {
	event, ok := eventFor(to)
	if !ok {
		return ErrInvalidTransition
	}

	machine := newLifecycle(b.Status)
	if err := machine.Event(context.Background(), event); err != nil {
		return ErrInvalidTransition
	}

	b.Status = BookingStatus(machine.Current())
	return nil
}

// IsBlocking returns true if the booking holds its slot (counts against availability)
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending || b.Status == StatusActive
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// CanBeCompleted returns true if the booking can be completed
func (b *Booking) CanBeCompleted() bool {
	return CanTransition(b.Status, StatusCompleted)
}

// Overlaps reports whether the booking window intersects [start, end).
// Half-open comparison: windows that merely touch at a boundary do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BookingFilter filter for listing bookings
type BookingFilter struct {
	UserID          *int64
	LocationID      *int64
	SlotID          *int64
	Status          *BookingStatus
	StartDate       *time.Time
	EndDate         *time.Time
	IncludeInactive bool
}
