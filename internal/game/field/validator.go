package field

import "fmt"

// CheckPlacement reports why p cannot be placed as ship `owner`, or nil if
// it can. A cell may already belong to `owner` itself; any other ship on or
// next to (diagonals included) a cell the ship would occupy is rejected.
func CheckPlacement(b *Board, p Placement, owner int) error {
	if !p.Fits(b.size) {
		return fmt.Errorf("%w: %d-cell ship at (%d, %d)", ErrOutOfBounds, p.Length, p.Origin.Row+1, p.Origin.Col+1)
	}

	for c := range p.Cells() {
		if cell := b.cells[c.Row][c.Col]; !cell.IsWater() && !ownedBy(cell, owner) {
			return fmt.Errorf("%w at (%d, %d)", ErrOverlap, c.Row+1, c.Col+1)
		}

		for nb := range c.Neighbours(b.size) {
			if id, ok := shipAt(b.cells[nb.Row][nb.Col]); ok && id != owner {
				return fmt.Errorf("%w at (%d, %d)", ErrTouching, nb.Row+1, nb.Col+1)
			}
		}
	}

	return nil
}

func IsLegal(b *Board, p Placement, owner int) bool {
	return CheckPlacement(b, p, owner) == nil
}

func ownedBy(c Cell, owner int) bool {
	id, ok := c.Ship()
	return ok && id == owner
}

// shipAt treats hit segments as ships too.
func shipAt(c Cell) (int, bool) {
	if id, ok := c.Ship(); ok {
		return id, true
	}
	return c.Wreck()
}
