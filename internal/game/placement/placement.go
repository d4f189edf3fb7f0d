// Package placement lays out a fleet on a board, either by random search,
// by asking a player for every ship, or by replaying a ready-made layout.
package placement

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand"

	"github.com/mrsobakin/battleships/internal/game/field"
)

// DefaultMaxAttempts is the number of failed random samples for a single
// ship after which the whole board is cleared and placement starts over.
const DefaultMaxAttempts = 10

var (
	ErrTooManyRestarts = errors.New("too many placement restarts")
	ErrLayout          = errors.New("invalid layout")
)

type Mode int

const (
	Random Mode = iota
	Manual
)

func (m Mode) String() string {
	switch m {
	case Random:
		return "random"
	case Manual:
		return "manual"
	default:
		panic("invalid placement mode")
	}
}

// Source supplies ship positions in manual mode.
type Source interface {
	// Returns a 0-based cell on a board of the given size.
	Coordinate(size int) (field.Coord, error)
	Orientation() (field.Orientation, error)
}

type Display interface {
	RenderBoards(own, opponent *field.Board, revealAll bool)

	// Called when a manually entered position is illegal, before the
	// source is asked again.
	PlacementRejected(p field.Placement, err error)
}

type Generator struct {
	Catalog *field.Catalog
	Rand    *rand.Rand
	Logger  *slog.Logger

	// Zero means DefaultMaxAttempts.
	MaxAttempts int
	// Number of times the board may be cleared and filled again.
	// Zero means unbounded.
	MaxRestarts int

	// Called right before the board is cleared for another try, with the
	// id of the ship that could not be placed and the number of failed
	// samples for it.
	OnRestart func(ship, attempts int)
}

func (g *Generator) maxAttempts() int {
	if g.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.MaxAttempts
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

func (g *Generator) checkLengths(lengths []int) error {
	for _, l := range lengths {
		if _, err := g.Catalog.Class(l); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) sample(n, length int) field.Placement {
	p := field.Placement{
		Orientation: field.Orientation(g.Rand.Intn(2)),
		Length:      length,
	}

	if p.Orientation == field.Horizontal {
		p.Origin.Row = g.Rand.Intn(n)
		p.Origin.Col = g.Rand.Intn(n - length + 1)
	} else {
		p.Origin.Row = g.Rand.Intn(n - length + 1)
		p.Origin.Col = g.Rand.Intn(n)
	}

	return p
}

// Random fills b with ships of the given lengths at uniformly sampled
// legal positions. A ship that fails MaxAttempts samples in a row causes
// the board to be cleared and the whole fleet to be placed again.
func (g *Generator) Random(b *field.Board, lengths []int) (*field.Fleet, error) {
	if err := g.checkLengths(lengths); err != nil {
		return nil, err
	}

	n := b.Size()
	for _, l := range lengths {
		if l > n {
			return nil, fmt.Errorf("%w: %d-cell ship on %dx%d board", field.ErrOutOfBounds, l, n, n)
		}
	}

	fleet := &field.Fleet{}
	maxAttempts := g.maxAttempts()
	restarts := 0

restart:
	for {
		field.Reset(b, fleet)

		for id, length := range lengths {
			attempts := 0

			for {
				if attempts >= maxAttempts {
					if g.MaxRestarts > 0 && restarts >= g.MaxRestarts {
						field.Reset(b, fleet)
						return nil, fmt.Errorf("%w: gave up after %d", ErrTooManyRestarts, restarts)
					}

					if g.OnRestart != nil {
						g.OnRestart(id, attempts)
					}

					restarts++
					g.logger().Debug("placement restarted", "ship", id, "restarts", restarts)

					continue restart
				}

				attempts++
				p := g.sample(n, length)
				if !field.IsLegal(b, p, id) {
					continue
				}

				if _, err := field.Place(b, fleet, g.Catalog, p); err != nil {
					return nil, err
				}
				break
			}
		}

		return fleet, nil
	}
}

// Manual asks src for every ship until a legal position is given. There is
// no retry limit. The board is rendered after each placed ship.
func (g *Generator) Manual(b *field.Board, lengths []int, src Source, display Display) (*field.Fleet, error) {
	if err := g.checkLengths(lengths); err != nil {
		return nil, err
	}

	fleet := &field.Fleet{}
	field.Reset(b, fleet)

	for id, length := range lengths {
		for {
			origin, err := src.Coordinate(b.Size())
			if err != nil {
				return nil, fmt.Errorf("ship %d: %w", id, err)
			}

			orientation, err := src.Orientation()
			if err != nil {
				return nil, fmt.Errorf("ship %d: %w", id, err)
			}

			p := field.Placement{Origin: origin, Orientation: orientation, Length: length}
			if err := field.CheckPlacement(b, p, id); err != nil {
				g.logger().Debug("manual placement rejected", "ship", id, "err", err)
				if display != nil {
					display.PlacementRejected(p, err)
				}
				continue
			}

			if _, err := field.Place(b, fleet, g.Catalog, p); err != nil {
				return nil, err
			}
			break
		}

		if display != nil {
			display.RenderBoards(b, b, true)
		}
	}

	return fleet, nil
}

// Replay places a ready-made layout. Placements must come in fleet order
// with matching lengths; any illegal, missing or extra ship is reported
// as ErrLayout.
func (g *Generator) Replay(b *field.Board, lengths []int, placements iter.Seq[field.Placement]) (*field.Fleet, error) {
	if err := g.checkLengths(lengths); err != nil {
		return nil, err
	}

	fleet := &field.Fleet{}
	field.Reset(b, fleet)

	id := 0
	for p := range placements {
		if id >= len(lengths) {
			field.Reset(b, fleet)
			return nil, fmt.Errorf("%w: more than %d ships", ErrLayout, len(lengths))
		}

		if p.Length != lengths[id] {
			field.Reset(b, fleet)
			return nil, fmt.Errorf("%w: ship %d: expected length %d, got %d", ErrLayout, id+1, lengths[id], p.Length)
		}

		if _, err := field.Place(b, fleet, g.Catalog, p); err != nil {
			field.Reset(b, fleet)
			return nil, fmt.Errorf("%w: ship %d: %w", ErrLayout, id+1, err)
		}

		id++
	}

	if id != len(lengths) {
		field.Reset(b, fleet)
		return nil, fmt.Errorf("%w: %d of %d ships", ErrLayout, id, len(lengths))
	}

	return fleet, nil
}
