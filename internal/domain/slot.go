package domain

import (
	"fmt"
	"time"
)

// SlotStatus represents the status of a parking slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotReserved    SlotStatus = "reserved"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
)

// ParseSlotStatus validates and converts a string into a SlotStatus
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case SlotAvailable, SlotReserved, SlotOccupied, SlotMaintenance:
		return SlotStatus(s), nil
	default:
		return "", fmt.Errorf("domain: unknown slot status %q", s)
	}
}

// Position physical position of a slot for UI rendering
type Position struct {
	X int
	Y int
}

// SensorData advisory data from AI-based vehicle detection.
// Never used to gate booking decisions, passthrough only.
type SensorData struct {
	IsOccupied    bool
	Confidence    float64
	DetectedClass *VehicleClass
	LastUpdated   *time.Time
}

// Slot represents a physical parking slot belonging to a location
type Slot struct {
	ID         int64
	LocationID int64
	Number     string
	Class      VehicleClass
	Status     SlotStatus
	Position   Position
	Sensor     SensorData
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsBookable returns true if the slot can accept a new booking at all.
// Overlap with existing bookings is checked separately against the booking repository.
func (s *Slot) IsBookable() bool {
	return s.IsActive && s.Status != SlotMaintenance
}

// IsHeld returns true if the slot is held by a booking (reserved or occupied)
func (s *Slot) IsHeld() bool {
	return s.Status == SlotReserved || s.Status == SlotOccupied
}

// SlotFilter filter for listing slots
type SlotFilter struct {
	LocationID *int64
	Class      *VehicleClass
	Status     *SlotStatus
}
