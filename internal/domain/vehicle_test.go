package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVehicleClass(t *testing.T) {
	for _, class := range VehicleClasses {
		parsed, err := ParseVehicleClass(string(class))
		require.NoError(t, err)
		assert.Equal(t, class, parsed)
	}

	_, err := ParseVehicleClass("truck")
	assert.Error(t, err)

	_, err = ParseVehicleClass("")
	assert.Error(t, err)
}

func TestCountByClass(t *testing.T) {
	c := CountByClass{TwoWheeler: 1, FourWheeler: 2, Bus: 3}

	assert.Equal(t, 1, c.Get(ClassTwoWheeler))
	assert.Equal(t, 2, c.Get(ClassFourWheeler))
	assert.Equal(t, 3, c.Get(ClassBus))
	assert.Equal(t, 6, c.Total())

	c.Set(ClassFourWheeler, 10)
	assert.Equal(t, 10, c.FourWheeler)

	assert.Equal(t, 11, c.Add(ClassFourWheeler, 1))
	assert.Equal(t, 2, c.Add(ClassBus, -1))
	assert.Equal(t, 14, c.Total())
}
