package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLayout(t *testing.T) {
	c := New()

	rooms := c.Rooms()
	require.Len(t, rooms, 100)

	// Rooms 1-50 in building A, 51-100 in building B
	assert.Equal(t, "A", rooms[0].Building)
	assert.Equal(t, "A", rooms[49].Building)
	assert.Equal(t, "B", rooms[50].Building)
	assert.Equal(t, "B", rooms[99].Building)

	// Ten rooms per floor, floors zero-padded
	assert.Equal(t, "01", rooms[0].Floor)
	assert.Equal(t, "01", rooms[9].Floor)
	assert.Equal(t, "02", rooms[10].Floor)
	assert.Equal(t, "10", rooms[99].Floor)

	// Every third room is a WC, the rest are offices
	assert.Equal(t, "OFFICE", rooms[0].Type)
	assert.Equal(t, "WC", rooms[2].Type)
	assert.Equal(t, "WC", rooms[98].Type)

	// Numbers zero-padded to three digits, display names resolved
	assert.Equal(t, "001", rooms[0].Number)
	assert.Equal(t, "100", rooms[99].Number)
	assert.Equal(t, "Офис", rooms[0].Name)
	assert.Equal(t, "Туалет", rooms[2].Name)
}

func TestLookup(t *testing.T) {
	c := New()

	ref, ok := c.Lookup(7)
	require.True(t, ok)
	assert.Equal(t, "007", ref.Number)
	assert.Equal(t, "A", ref.Building)

	_, ok = c.Lookup(0)
	assert.False(t, ok)
	_, ok = c.Lookup(101)
	assert.False(t, ok)
	_, ok = c.Lookup(-3)
	assert.False(t, ok)
}
