// Package catalog resolves room numbers to their descriptive attributes.
//
// The catalog is currently static stub data covering rooms 1–100; a real
// deployment would back it with the facility database. Consumers only
// depend on the lookup contract, so swapping the data source stays local
// to this package.
package catalog

import (
	"fmt"

	"roomcare/internal/request"
)

// roomCount is the number of rooms in the stub catalog.
const roomCount = 100

// Room is one catalog entry: the room reference plus its display name.
type Room struct {
	request.RoomRef
	Name string `json:"name"`
}

// Catalog enumerates known rooms and resolves room numbers.
type Catalog struct {
	rooms []Room
}

// New builds the static room catalog.
//
// Stub layout: rooms 1–50 in building A, 51–100 in building B, ten rooms
// per floor, every third room a WC and the rest offices.
func New() *Catalog {
	rooms := make([]Room, 0, roomCount)
	for i := 1; i <= roomCount; i++ {
		building := "A"
		if i > 50 {
			building = "B"
		}
		roomType := "OFFICE"
		if i%3 == 0 {
			roomType = "WC"
		}
		ref := request.RoomRef{
			Building: building,
			Floor:    fmt.Sprintf("%02d", (i-1)/10+1),
			Type:     roomType,
			Number:   fmt.Sprintf("%03d", i),
		}
		rooms = append(rooms, Room{RoomRef: ref, Name: ref.TypeName()})
	}
	return &Catalog{rooms: rooms}
}

// Rooms returns every known room in catalog order.
func (c *Catalog) Rooms() []Room {
	return c.rooms
}

// Lookup resolves a room number to its reference.
func (c *Catalog) Lookup(number int) (request.RoomRef, bool) {
	if number < 1 || number > len(c.rooms) {
		return request.RoomRef{}, false
	}
	return c.rooms[number-1].RoomRef, true
}
