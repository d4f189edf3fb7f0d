package field

import (
	"iter"
	"slices"
)

type Ship struct {
	ID        int
	Class     ShipClass
	Placement Placement
	Cells     []Coord
	Remaining int
}

func (s *Ship) IsSunk() bool {
	return s.Remaining == 0
}

// Fleet holds ships in placement order; a ship's index is its id.
type Fleet struct {
	ships []*Ship
}

func (f *Fleet) add(p Placement, class ShipClass) *Ship {
	ship := &Ship{
		ID:        len(f.ships),
		Class:     class,
		Placement: p,
		Cells:     slices.Collect(p.Cells()),
		Remaining: p.Length,
	}
	f.ships = append(f.ships, ship)
	return ship
}

func (f *Fleet) reset() {
	f.ships = f.ships[:0]
}

func (f *Fleet) Len() int {
	return len(f.ships)
}

func (f *Fleet) Ship(id int) (*Ship, bool) {
	if id < 0 || id >= len(f.ships) {
		return nil, false
	}
	return f.ships[id], true
}

func (f *Fleet) Ships() iter.Seq[*Ship] {
	return slices.Values(f.ships)
}

func (f *Fleet) Placements() iter.Seq[Placement] {
	return func(yield func(Placement) bool) {
		for _, s := range f.ships {
			if !yield(s.Placement) {
				return
			}
		}
	}
}

// HitTotal is the sum of all ship lengths.
func (f *Fleet) HitTotal() int {
	total := 0
	for _, s := range f.ships {
		total += s.Placement.Length
	}
	return total
}

// Place validates p against the board and, if legal, fills the board and
// appends a new ship to the fleet.
func Place(b *Board, f *Fleet, cat *Catalog, p Placement) (*Ship, error) {
	class, err := cat.Class(p.Length)
	if err != nil {
		return nil, err
	}

	if err := CheckPlacement(b, p, len(f.ships)); err != nil {
		return nil, err
	}

	ship := f.add(p, class)
	b.fill(p, ship.ID)

	return ship, nil
}

// Reset clears the board in place and empties the fleet.
func Reset(b *Board, f *Fleet) {
	b.Clear()
	f.reset()
}
