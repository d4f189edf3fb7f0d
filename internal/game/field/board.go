package field

import "fmt"

const (
	MinSize = 2
	MaxSize = 13
)

type CellState uint8

const (
	Water CellState = iota
	MissMark
	HitMark
	ShipSegment
)

func (s CellState) String() string {
	switch s {
	case Water:
		return "water"
	case MissMark:
		return "miss"
	case HitMark:
		return "hit"
	case ShipSegment:
		return "ship"
	default:
		panic("invalid cell state")
	}
}

// Cell holds exactly one state. Ship is meaningful for ShipSegment and
// HitMark cells only, for the latter it keeps the id of the ship that was hit.
// Both also keep the ship's length, which determines its class.
type Cell struct {
	State  CellState
	ship   int8
	length int8
}

func (c Cell) IsWater() bool {
	return c.State == Water
}

// Returns the id of the ship occupying an unhit segment.
func (c Cell) Ship() (int, bool) {
	if c.State != ShipSegment {
		return -1, false
	}
	return int(c.ship), true
}

// Returns the length of the ship that occupies or occupied this cell.
func (c Cell) ShipLength() (int, bool) {
	if c.State != ShipSegment && c.State != HitMark {
		return 0, false
	}
	return int(c.length), true
}

// Returns the id of the ship that was hit on this cell.
func (c Cell) Wreck() (int, bool) {
	if c.State != HitMark {
		return -1, false
	}
	return int(c.ship), true
}

// Board is a square grid owned by a single seat. Boards are plain values:
// copying one copies the whole grid.
type Board struct {
	size  int
	cells [MaxSize][MaxSize]Cell
}

func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrBoardSize, size, MinSize, MaxSize)
	}

	return &Board{size: size}, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < b.size && c.Col < b.size
}

// At returns the cell at c. Out of range positions read as water.
func (b *Board) At(c Coord) Cell {
	if !b.InBounds(c) {
		return Cell{}
	}
	return b.cells[c.Row][c.Col]
}

// Clear resets every cell to water in place.
func (b *Board) Clear() {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			b.cells[r][c] = Cell{}
		}
	}
}

func (b *Board) fill(p Placement, id int) {
	for c := range p.Cells() {
		b.cells[c.Row][c.Col] = Cell{State: ShipSegment, ship: int8(id), length: int8(p.Length)}
	}
}

func (b *Board) mark(c Coord, state CellState) {
	b.cells[c.Row][c.Col].State = state
}
