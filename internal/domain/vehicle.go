package domain

import "fmt"

// VehicleClass represents the class of a vehicle / parking slot
type VehicleClass string

const (
	ClassTwoWheeler  VehicleClass = "two_wheeler"
	ClassFourWheeler VehicleClass = "four_wheeler"
	ClassBus         VehicleClass = "bus"
)

// VehicleClasses lists all supported vehicle classes
var VehicleClasses = []VehicleClass{
	ClassTwoWheeler,
	ClassFourWheeler,
	ClassBus,
}

// ParseVehicleClass validates and converts a string into a VehicleClass
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch VehicleClass(s) {
	case ClassTwoWheeler, ClassFourWheeler, ClassBus:
		return VehicleClass(s), nil
	default:
		return "", fmt.Errorf("domain: unknown vehicle class %q", s)
	}
}

// CountByClass holds a per-vehicle-class counter set (capacity or occupancy)
type CountByClass struct {
	TwoWheeler  int
	FourWheeler int
	Bus         int
}

// Get returns the counter for the given class
func (c CountByClass) Get(class VehicleClass) int {
	switch class {
	case ClassTwoWheeler:
		return c.TwoWheeler
	case ClassFourWheeler:
		return c.FourWheeler
	case ClassBus:
		return c.Bus
	default:
		return 0
	}
}

// Set overwrites the counter for the given class
func (c *CountByClass) Set(class VehicleClass, value int) {
	switch class {
	case ClassTwoWheeler:
		c.TwoWheeler = value
	case ClassFourWheeler:
		c.FourWheeler = value
	case ClassBus:
		c.Bus = value
	}
}

// Add adds delta to the counter for the given class and returns the new value
func (c *CountByClass) Add(class VehicleClass, delta int) int {
	value := c.Get(class) + delta
	c.Set(class, value)
	return value
}

// Total returns the sum over all classes
func (c CountByClass) Total() int {
	return c.TwoWheeler + c.FourWheeler + c.Bus
}
