package field

import "fmt"

type Shot struct {
	Result ShotResult
	// Ship is the id of the hit ship, -1 otherwise.
	Ship int
	// Sunk is set only on the shot that took the ship's last segment.
	Sunk bool
}

func CheckTarget(b *Board, at Coord) error {
	if !b.InBounds(at) {
		return fmt.Errorf("%w: target (%d, %d)", ErrOutOfBounds, at.Row+1, at.Col+1)
	}
	return nil
}

// Shoot resolves a single shot. Water becomes a miss, a ship segment becomes
// a hit and costs its ship one remaining hit. Already resolved or
// out of range cells are left untouched.
func Shoot(b *Board, f *Fleet, at Coord) Shot {
	if !b.InBounds(at) {
		return Shot{Result: AlreadyTargeted, Ship: -1}
	}

	cell := b.cells[at.Row][at.Col]

	switch cell.State {
	case Water:
		b.mark(at, MissMark)
		return Shot{Result: Miss, Ship: -1}
	case ShipSegment:
		b.mark(at, HitMark)

		id := int(cell.ship)
		shot := Shot{Result: Hit, Ship: id}

		if ship, ok := f.Ship(id); ok && ship.Remaining > 0 {
			ship.Remaining--
			shot.Sunk = ship.Remaining == 0
		}

		return shot
	default:
		return Shot{Result: AlreadyTargeted, Ship: -1}
	}
}
