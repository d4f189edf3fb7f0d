// Package match runs a single two-seat game from fleet placement to the
// final verdict.
package match

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
	"github.com/mrsobakin/battleships/internal/stats"
)

var errWrongState = errors.New("wrong match state")

type Config struct {
	Size    int
	Players [2]game.Player

	// Used for fleet placement and for picking the first seat.
	Rand    *rand.Rand
	Catalog *field.Catalog

	// Stats the match starts counting from.
	Stats stats.Pair

	// A seat with a layout gets it replayed instead of being asked
	// how to place its fleet.
	Layouts [2]iter.Seq[field.Placement]

	View   View
	Logger *slog.Logger

	// Shows every ship on both boards when rendering.
	Reveal bool
	// Passed to the placement generator; zero means unbounded.
	MaxRestarts int
}

type Match struct {
	ID uuid.UUID

	size    int
	players [2]game.Player
	rng     *rand.Rand
	catalog *field.Catalog
	view    View
	logger  *slog.Logger
	reveal  bool
	layouts [2]iter.Seq[field.Placement]

	maxRestarts int

	state    State
	boards   [2]*field.Board
	fleets   [2]*field.Fleet
	stats    stats.Pair
	hits     [2]int
	hitTotal int
	current  game.Seat
	turns    int
	winner   game.Seat
}

// New allocates both boards. An unsupported size is reported with
// field.ErrBoardSize.
func New(cfg Config) (*Match, error) {
	m := &Match{
		ID:          uuid.New(),
		size:        cfg.Size,
		players:     cfg.Players,
		rng:         cfg.Rand,
		catalog:     cfg.Catalog,
		view:        cfg.View,
		logger:      cfg.Logger,
		reveal:      cfg.Reveal,
		layouts:     cfg.Layouts,
		maxRestarts: cfg.MaxRestarts,
		stats:       cfg.Stats,
	}

	for i, p := range m.players {
		if p == nil {
			return nil, fmt.Errorf("%s is not set", game.Seat(i))
		}
	}

	for i := range m.boards {
		b, err := field.NewBoard(cfg.Size)
		if err != nil {
			return nil, err
		}
		m.boards[i] = b
	}

	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if m.catalog == nil {
		m.catalog = field.DefaultCatalog()
	}
	if m.view == nil {
		m.view = nopView{}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.logger = m.logger.With("match", m.ID.String())

	return m, nil
}

func (m *Match) State() State {
	return m.state
}

func (m *Match) Current() game.Seat {
	return m.current
}

// Round is the number announced for the current turn.
func (m *Match) Round() int {
	return (m.turns + 1) / 2
}

func (m *Match) Board(seat game.Seat) *field.Board {
	return m.boards[seat]
}

func (m *Match) Fleet(seat game.Seat) *field.Fleet {
	return m.fleets[seat]
}

// Stats returns the counters accumulated so far, starting from Config.Stats.
func (m *Match) Stats() stats.Pair {
	return m.stats
}

func (m *Match) generator() *placement.Generator {
	return &placement.Generator{
		Catalog:     m.catalog,
		Rand:        m.rng,
		Logger:      m.logger,
		MaxRestarts: m.maxRestarts,
	}
}

func (m *Match) placeFleet(seat game.Seat, lengths []int) error {
	player := m.players[seat]

	if layout := m.layouts[seat]; layout != nil {
		fleet, err := m.generator().Replay(m.boards[seat], lengths, layout)
		if err != nil {
			return fmt.Errorf("%s placement: %w", seat, err)
		}

		m.fleets[seat] = fleet
		m.logger.Debug("fleet placed", "seat", seat.Number(), "mode", "replay", "ships", fleet.Len())
		return nil
	}

	mode, err := player.PlacementMode()
	if err != nil {
		return fmt.Errorf("%s placement mode: %w", seat, err)
	}

	var fleet *field.Fleet
	switch mode {
	case placement.Random:
		fleet, err = m.generator().Random(m.boards[seat], lengths)
	case placement.Manual:
		fleet, err = m.generator().Manual(m.boards[seat], lengths, player, m.view)
	}
	if err != nil {
		return fmt.Errorf("%s placement: %w", seat, err)
	}

	m.fleets[seat] = fleet
	m.logger.Debug("fleet placed", "seat", seat.Number(), "mode", mode.String(), "ships", fleet.Len())

	return nil
}

// Setup places both fleets and picks the seat that shoots first.
func (m *Match) Setup() error {
	if m.state != Setup {
		return fmt.Errorf("%w: setup in %s", errWrongState, m.state)
	}

	lengths := field.FleetFor(m.size)
	m.hitTotal = field.HitTotal(lengths)

	for _, seat := range []game.Seat{game.SeatOne, game.SeatTwo} {
		if err := m.placeFleet(seat, lengths); err != nil {
			return err
		}
	}

	m.current = game.Seat(m.rng.Intn(2))
	m.state = Playing
	m.view.Event(MatchStarted{First: m.current})

	return nil
}

// aim asks the current seat for targets until one resolves to a hit or a
// miss. Already targeted cells are asked again without any penalty.
func (m *Match) aim(shooter game.Seat) (field.Coord, field.Shot, error) {
	victim := shooter.Other()
	player := m.players[shooter]

	for {
		at, err := player.Target(m.size)
		if err != nil {
			return at, field.Shot{}, fmt.Errorf("%s target: %w", shooter, err)
		}

		shot := field.Shoot(m.boards[victim], m.fleets[victim], at)
		if shot.Result.Definitive() {
			return at, shot, nil
		}
	}
}

// Turn plays a single shot of the current seat.
func (m *Match) Turn() error {
	if m.state != Playing {
		return fmt.Errorf("%w: turn in %s", errWrongState, m.state)
	}

	m.turns++
	if m.turns%2 == 1 {
		m.view.Event(RoundStarted{Round: m.Round()})
	}

	shooter := m.current
	victim := shooter.Other()
	player := m.players[shooter]

	m.view.Event(TurnStarted{Seat: shooter, Human: player.Human()})

	at, shot, err := m.aim(shooter)
	if err != nil {
		return err
	}

	m.stats[shooter].RecordShot(shot.Result)
	if shot.Result == field.Hit {
		m.hits[shooter]++
	}

	m.logger.Debug("shot", "seat", shooter.Number(), "row", at.Row, "col", at.Col, "result", shot.Result.String())
	m.view.Event(ShotResolved{Seat: shooter, At: at, Result: shot.Result})

	if shot.Sunk {
		ship, _ := m.fleets[victim].Ship(shot.Ship)
		m.view.Event(ShipSunk{Owner: victim, Class: ship.Class})
	}

	if m.hits[shooter] == m.hitTotal {
		m.finish(shooter)
		return nil
	}

	if player.Human() {
		m.view.RenderBoards(m.boards[shooter], m.boards[victim], m.reveal)
	}

	m.current = victim
	return nil
}

func (m *Match) finish(winner game.Seat) {
	m.winner = winner
	m.stats.Finish(int(winner))
	m.state = Finished

	m.view.Event(MatchWon{Winner: winner})
	m.logger.Info("match finished", "winner", winner.Number(), "turns", m.turns, "rounds", m.Round())
}

// Play runs turns until one seat has hit every enemy ship segment.
func (m *Match) Play() (Verdict, error) {
	for m.state == Playing {
		if err := m.Turn(); err != nil {
			return Verdict{}, err
		}
	}

	return m.Verdict()
}

func (m *Match) Verdict() (Verdict, error) {
	if m.state != Finished {
		return Verdict{}, fmt.Errorf("%w: verdict in %s", errWrongState, m.state)
	}

	return Verdict{
		ID:        m.ID,
		BoardSize: m.size,
		Winner:    m.winner,
		Loser:     m.winner.Other(),
		Rounds:    m.Round(),
		Turns:     m.turns,
		Stats:     m.stats,
	}, nil
}

// Run plays the whole match: Setup, then Play.
func (m *Match) Run() (Verdict, error) {
	if err := m.Setup(); err != nil {
		return Verdict{}, err
	}
	return m.Play()
}
