package world

import (
	"errors"
	"fmt"
)

// ErrUnplacedBundled reports a bundled movable that no container could take.
// Bundled items carry goal semantics tied to their home fixture, so a world
// that cannot place one is invalid.
var ErrUnplacedBundled = errors.New("bundled item could not be placed")

// Params bound the size of a generated world.
type Params struct {
	MaxRooms        int
	MaxFreeItems    int
	MaxPerContainer int
	PersonCapacity  int
}

func DefaultParams() Params {
	return Params{
		MaxRooms:        5,
		MaxFreeItems:    20,
		MaxPerContainer: 5,
		PersonCapacity:  3,
	}
}

// World is a fully-populated house: every movable is owned by exactly one
// container or by the person.
type World struct {
	Person *Person
	Rooms  []*Room
	Items  []Movable

	// Description is the narrated initial state, one paragraph per room.
	Description string
	// Dropped names the free movables that found no container and were
	// discarded during population.
	Dropped []string
}

// Build instantiates rooms and movables, distributes the movables into the
// rooms' containers, and shuffles the final traversal order. Free movables
// that no container takes are dropped; a leftover bundled movable is an
// error.
func Build(ctx *Context, params Params) (*World, error) {
	w := &World{Person: NewPerson(ctx, params.PersonCapacity)}

	creatable := creatableMovableKinds()
	quota := ceilDiv(params.MaxFreeItems, len(creatable))
	for _, k := range creatable {
		for count := 0; count < quota; count++ {
			m, ok := k.NewMovable(ctx)
			if !ok {
				break
			}
			w.Items = append(w.Items, m)
		}
	}

	roomQuota := ceilDiv(params.MaxRooms, len(RoomKinds))
	for _, rk := range RoomKinds {
		for count := 0; count < roomQuota; count++ {
			room, ok := rk.NewEmpty(ctx)
			if !ok {
				break
			}
			w.Rooms = append(w.Rooms, room)
			w.Items = append(w.Items, room.Outline(ctx)...)
		}
	}

	free := append([]Movable(nil), w.Items...)
	for _, room := range w.Rooms {
		w.Description += room.Populate(ctx, &free, params.MaxPerContainer) + "\n\n"
	}
	for _, m := range free {
		it := m.Base()
		if it.kind.Bundled {
			return nil, fmt.Errorf("%w: %s", ErrUnplacedBundled, it.name)
		}
		w.Dropped = append(w.Dropped, it.name)
		removeMovable(&w.Items, m)
	}

	shuffle(ctx, w.Items)
	shuffle(ctx, w.Rooms)
	return w, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
