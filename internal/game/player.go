package game

import (
	"encoding/json"
	"math/rand"

	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
)

type Seat int

const (
	SeatOne Seat = iota
	SeatTwo
)

func (s Seat) Other() Seat {
	if s == SeatOne {
		return SeatTwo
	} else {
		return SeatOne
	}
}

func (s Seat) String() string {
	if s == SeatOne {
		return "player 1"
	} else {
		return "player 2"
	}
}

func (s Seat) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Number is the 1-based seat number shown to players.
func (s Seat) Number() int {
	return int(s) + 1
}

type Player interface {
	// Reports whether a person sits behind this seat.
	Human() bool

	// Chooses how the seat's fleet is laid out.
	PlacementMode() (placement.Mode, error)

	// Ship positions for manual placement.
	placement.Source

	// Returns the next cell to fire at on a board of the given size.
	//
	// The caller asks again when the cell turns out to be
	// already targeted.
	Target(size int) (field.Coord, error)
}

// Prompter is the input side of a person at the console.
type Prompter interface {
	PlacementMode(seat Seat) (placement.Mode, error)
	Coordinate(size int) (field.Coord, error)
	Orientation() (field.Orientation, error)
}

type Human struct {
	Seat     Seat
	Prompter Prompter
}

func NewHuman(seat Seat, prompter Prompter) *Human {
	return &Human{
		seat,
		prompter,
	}
}

func (h *Human) Human() bool {
	return true
}

func (h *Human) PlacementMode() (placement.Mode, error) {
	return h.Prompter.PlacementMode(h.Seat)
}

func (h *Human) Coordinate(size int) (field.Coord, error) {
	return h.Prompter.Coordinate(size)
}

func (h *Human) Orientation() (field.Orientation, error) {
	return h.Prompter.Orientation()
}

func (h *Human) Target(size int) (field.Coord, error) {
	return h.Prompter.Coordinate(size)
}

// Computer places its fleet at random and fires at uniformly random cells.
type Computer struct {
	rng *rand.Rand
}

func NewComputer(rng *rand.Rand) *Computer {
	return &Computer{rng}
}

func (c *Computer) Human() bool {
	return false
}

func (c *Computer) PlacementMode() (placement.Mode, error) {
	return placement.Random, nil
}

func (c *Computer) Coordinate(size int) (field.Coord, error) {
	return c.Target(size)
}

func (c *Computer) Orientation() (field.Orientation, error) {
	return field.Orientation(c.rng.Intn(2)), nil
}

func (c *Computer) Target(size int) (field.Coord, error) {
	return field.Coord{
		Row: c.rng.Intn(size),
		Col: c.rng.Intn(size),
	}, nil
}
