package game

import (
	"errors"

	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
)

var ErrScriptExhausted = errors.New("script exhausted")

// Scripted replays fixed ship positions and targets in order. It places
// its fleet manually when Layout is set and at random otherwise.
type Scripted struct {
	IsHuman bool
	Layout  []field.Placement
	Targets []field.Coord

	layoutPos int
	targetPos int
}

func (s *Scripted) Human() bool {
	return s.IsHuman
}

func (s *Scripted) PlacementMode() (placement.Mode, error) {
	if len(s.Layout) > 0 {
		return placement.Manual, nil
	}
	return placement.Random, nil
}

func (s *Scripted) Coordinate(int) (field.Coord, error) {
	if s.layoutPos >= len(s.Layout) {
		return field.Coord{}, ErrScriptExhausted
	}
	return s.Layout[s.layoutPos].Origin, nil
}

func (s *Scripted) Orientation() (field.Orientation, error) {
	if s.layoutPos >= len(s.Layout) {
		return 0, ErrScriptExhausted
	}
	o := s.Layout[s.layoutPos].Orientation
	s.layoutPos++
	return o, nil
}

func (s *Scripted) Target(int) (field.Coord, error) {
	if s.targetPos >= len(s.Targets) {
		return field.Coord{}, ErrScriptExhausted
	}
	c := s.Targets[s.targetPos]
	s.targetPos++
	return c, nil
}

// Shots returns how many targets were handed out so far.
func (s *Scripted) Shots() int {
	return s.targetPos
}
