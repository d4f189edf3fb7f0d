package match

import (
	"github.com/google/uuid"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/stats"
)

type State int

const (
	Setup State = iota
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		panic("invalid state")
	}
}

type Verdict struct {
	ID        uuid.UUID  `json:"id"`
	BoardSize int        `json:"board_size"`
	Winner    game.Seat  `json:"winner"`
	Loser     game.Seat  `json:"loser"`
	Rounds    int        `json:"rounds"`
	Turns     int        `json:"turns"`
	Stats     stats.Pair `json:"stats"`
}
