package domain

import "time"

// LocationType represents the physical kind of a parking location
type LocationType string

const (
	LocationIndoor  LocationType = "indoor"
	LocationOutdoor LocationType = "outdoor"
)

// Location represents a parking location with per-class capacity and occupancy counters.
// Occupancy mirrors the set of reserved/occupied slots and is mutated only by the
// booking lifecycle use cases; capacity is mutated only by admin slot add/remove.
type Location struct {
	ID          int64
	Name        string
	Description string
	Zone        string
	Type        LocationType
	Capacity    CountByClass
	Occupancy   CountByClass
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Availability returns remaining free capacity per class
func (l *Location) Availability() CountByClass {
	return CountByClass{
		TwoWheeler:  l.Capacity.TwoWheeler - l.Occupancy.TwoWheeler,
		FourWheeler: l.Capacity.FourWheeler - l.Occupancy.FourWheeler,
		Bus:         l.Capacity.Bus - l.Occupancy.Bus,
	}
}

// HasCapacityFor returns true if at least one more vehicle of the class fits
func (l *Location) HasCapacityFor(class VehicleClass) bool {
	return l.Occupancy.Get(class) < l.Capacity.Get(class)
}

// CapacityFits returns true if the given capacity does not drop below current occupancy
// for any class. Used to reject admin capacity shrinks that would strand active bookings.
func (l *Location) CapacityFits(capacity CountByClass) bool {
	for _, class := range VehicleClasses {
		if capacity.Get(class) < l.Occupancy.Get(class) {
			return false
		}
	}
	return true
}
