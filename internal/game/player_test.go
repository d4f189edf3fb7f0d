package game_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
)

func TestSeat(t *testing.T) {
	assert.Equal(t, game.SeatTwo, game.SeatOne.Other())
	assert.Equal(t, game.SeatOne, game.SeatTwo.Other())
	assert.Equal(t, "player 1", game.SeatOne.String())
	assert.Equal(t, 2, game.SeatTwo.Number())
}

func TestComputer(t *testing.T) {
	c := game.NewComputer(rand.New(rand.NewSource(1)))

	mode, err := c.PlacementMode()
	require.NoError(t, err)
	assert.Equal(t, placement.Random, mode)
	assert.False(t, c.Human())

	seen := make(map[field.Coord]bool)
	for range 2000 {
		target, err := c.Target(5)
		require.NoError(t, err)
		require.True(t, target.Row >= 0 && target.Row < 5 && target.Col >= 0 && target.Col < 5, "target %v", target)
		seen[target] = true
	}

	assert.Len(t, seen, 25, "every cell is eventually targeted")
}

func TestScripted(t *testing.T) {
	s := &game.Scripted{
		Layout:  []field.Placement{{Origin: field.Coord{Row: 1, Col: 2}, Orientation: field.Vertical}},
		Targets: []field.Coord{{Row: 0, Col: 0}},
	}

	mode, err := s.PlacementMode()
	require.NoError(t, err)
	assert.Equal(t, placement.Manual, mode)

	c, err := s.Coordinate(5)
	require.NoError(t, err)
	assert.Equal(t, field.Coord{Row: 1, Col: 2}, c)

	o, err := s.Orientation()
	require.NoError(t, err)
	assert.Equal(t, field.Vertical, o)

	_, err = s.Coordinate(5)
	assert.ErrorIs(t, err, game.ErrScriptExhausted)

	target, err := s.Target(5)
	require.NoError(t, err)
	assert.Equal(t, field.Coord{}, target)

	_, err = s.Target(5)
	assert.ErrorIs(t, err, game.ErrScriptExhausted)
	assert.Equal(t, 1, s.Shots())
}
