package match

import (
	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
)

// View is everything the match shows to the people at the table.
type View interface {
	placement.Display

	Event(e Event)
}

type Event interface {
	event()
}

type MatchStarted struct {
	First game.Seat
}

// RoundStarted is emitted before every odd turn.
type RoundStarted struct {
	Round int
}

type TurnStarted struct {
	Seat  game.Seat
	Human bool
}

type ShotResolved struct {
	Seat   game.Seat
	At     field.Coord
	Result field.ShotResult
}

// ShipSunk reports that Owner lost its last segment of a ship.
type ShipSunk struct {
	Owner game.Seat
	Class field.ShipClass
}

type MatchWon struct {
	Winner game.Seat
}

func (MatchStarted) event() {}
func (RoundStarted) event() {}
func (TurnStarted) event()  {}
func (ShotResolved) event() {}
func (ShipSunk) event()     {}
func (MatchWon) event()     {}

type nopView struct{}

func (nopView) RenderBoards(own, opponent *field.Board, revealAll bool) {}
func (nopView) PlacementRejected(field.Placement, error)                {}
func (nopView) Event(Event)                                             {}
