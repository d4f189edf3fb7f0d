package field

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

var (
	ErrBoardSize   = errors.New("invalid board size")
	ErrShipLength  = errors.New("invalid ship length")
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOverlap     = errors.New("ships overlap")
	ErrTouching    = errors.New("ships touch")
)

type ShotResult int

const (
	Miss ShotResult = iota
	Hit
	AlreadyTargeted
)

func (r ShotResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case AlreadyTargeted:
		return "already"
	default:
		panic("invalid shot result")
	}
}

// Definitive reports whether the shot consumed a turn.
func (r ShotResult) Definitive() bool {
	return r == Miss || r == Hit
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o *Orientation) FromString(str string) error {
	switch str {
	case "h":
		*o = Horizontal
	case "v":
		*o = Vertical
	default:
		return fmt.Errorf("invalid orientation %q", str)
	}
	return nil
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		panic("invalid orientation")
	}
}

// Coord is a 0-based board position.
type Coord struct {
	Row, Col int
}

// Neighbours yields the 8 surrounding positions that lie on an n×n board.
func (c Coord) Neighbours(n int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}

				nb := Coord{c.Row + dr, c.Col + dc}
				if nb.Row < 0 || nb.Col < 0 || nb.Row >= n || nb.Col >= n {
					continue
				}

				if !yield(nb) {
					return
				}
			}
		}
	}
}

type Placement struct {
	Origin      Coord
	Orientation Orientation
	Length      int
}

// Cells yields the positions the ship would occupy, origin first.
func (p Placement) Cells() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := 0; i < p.Length; i++ {
			c := p.Origin
			if p.Orientation == Horizontal {
				c.Col += i
			} else {
				c.Row += i
			}

			if !yield(c) {
				return
			}
		}
	}
}

// Fits reports whether the whole ship stays on an n×n board.
func (p Placement) Fits(n int) bool {
	if p.Origin.Row < 0 || p.Origin.Col < 0 || p.Length <= 0 {
		return false
	}

	if p.Orientation == Horizontal {
		return p.Origin.Row < n && p.Origin.Col+p.Length <= n
	}
	return p.Origin.Col < n && p.Origin.Row+p.Length <= n
}

// Parses placements in the `<length> <h|v> <row> <col>` line format,
// row and col being 1-based. Blank lines and lines starting with '#'
// are skipped; iteration stops at the first malformed line.
func ParsePlacements(src io.Reader) iter.Seq[Placement] {
	return func(yield func(p Placement) bool) {
		lines := bufio.NewScanner(src)

		for lines.Scan() {
			line := strings.TrimSpace(lines.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			var p Placement
			var direction string

			n, err := fmt.Sscanf(line, "%d %s %d %d", &p.Length, &direction, &p.Origin.Row, &p.Origin.Col)
			if err != nil || n != 4 {
				return
			}

			if err := p.Orientation.FromString(direction); err != nil {
				return
			}

			p.Origin.Row--
			p.Origin.Col--

			if !yield(p) {
				return
			}
		}
	}
}

func FormatPlacements(w io.Writer, placements iter.Seq[Placement]) error {
	for p := range placements {
		_, err := fmt.Fprintf(w, "%d %s %d %d\n", p.Length, p.Orientation, p.Origin.Row+1, p.Origin.Col+1)
		if err != nil {
			return err
		}
	}
	return nil
}
